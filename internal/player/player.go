// Package player runs speech playback and audio export in the
// background and tracks the playback state.
package player

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/dgallion1/paperdesk/internal/chunker"
	"github.com/dgallion1/paperdesk/internal/speech"
	"github.com/dgallion1/paperdesk/internal/task"
)

// State is the playback state. There is no paused state.
type State int

const (
	Idle State = iota
	Playing
	Stopped
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Playing:
		return "playing"
	case Stopped:
		return "stopped"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

const (
	MinRate       = 80
	MaxRate       = 300
	DefaultRate   = 200
	MinVolume     = 0.0
	MaxVolume     = 1.0
	DefaultVolume = 1.0
)

var (
	ErrBusy              = errors.New("player is busy exporting audio")
	ErrNoText            = errors.New("no text to play")
	ErrUnsupportedFormat = errors.New("unsupported audio format: use .wav or .mp3")
	ErrPauseUnsupported  = errors.New("pause/resume is not supported: stop and play again to restart from the current text")
)

// FallbackError reports an MP3 export that could not be transcoded. The
// audio was kept as a WAV file at WAVPath.
type FallbackError struct {
	WAVPath string
	Err     error
}

func (e *FallbackError) Error() string {
	return fmt.Sprintf("mp3 conversion failed (%v); audio saved as WAV at %s", e.Err, e.WAVPath)
}

func (e *FallbackError) Unwrap() error { return e.Err }

// Options configure a Player.
type Options struct {
	Rate         int
	Volume       *float64 // nil uses DefaultVolume; zero mutes
	SegmentWords int
	TempDir      string // for intermediate WAV files; os.TempDir() if empty
}

// Player owns the speech engine. Its methods are safe to call from any
// goroutine.
type Player struct {
	engine     speech.Engine
	transcoder speech.Transcoder
	runner     *task.Runner
	log        *slog.Logger
	chunkCfg   chunker.Config
	tempDir    string

	mu      sync.Mutex
	rate    int
	volume  float64
	state   State
	current *task.Task
	export  *task.Task
	pending map[*task.Task]struct{} // submitted tasks whose callback has not returned
}

// New creates a player. transcoder may be nil, in which case MP3 exports
// fall back to WAV.
func New(engine speech.Engine, transcoder speech.Transcoder, runner *task.Runner, log *slog.Logger, opts Options) *Player {
	p := &Player{
		engine:     engine,
		transcoder: transcoder,
		runner:     runner,
		log:        log,
		chunkCfg:   chunker.Config{MaxWords: opts.SegmentWords},
		tempDir:    opts.TempDir,
		rate:       DefaultRate,
		volume:     DefaultVolume,
		pending:    make(map[*task.Task]struct{}),
	}
	if opts.Rate != 0 {
		p.rate = clampRate(opts.Rate)
	}
	if opts.Volume != nil {
		p.volume = clampVolume(*opts.Volume)
	}
	return p
}

func clampRate(r int) int {
	return max(MinRate, min(MaxRate, r))
}

func clampVolume(v float64) float64 {
	if math.IsNaN(v) {
		return DefaultVolume
	}
	return math.Max(MinVolume, math.Min(MaxVolume, v))
}

// SetRate stores the speaking rate, clamped to [MinRate, MaxRate]. It
// applies from the next Play or Save.
func (p *Player) SetRate(r int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.rate = clampRate(r)
	return p.rate
}

// SetVolume stores the volume, clamped to [0, 1].
func (p *Player) SetVolume(v float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clampVolume(v)
	return p.volume
}

func (p *Player) Rate() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.rate
}

func (p *Player) Volume() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.volume
}

func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Exporting reports whether a Save is in progress.
func (p *Player) Exporting() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.export != nil
}

func (p *Player) params() speech.Params {
	return speech.Params{Rate: p.rate, Volume: p.volume}
}

// Play speaks text in the background. A playback already in progress is
// stopped first. onDone receives nil on natural completion,
// context.Canceled after Stop, or the engine error.
func (p *Player) Play(text string, onDone func(error)) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrNoText
	}
	segments := chunker.Segments(text, p.chunkCfg)

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.export != nil {
		return ErrBusy
	}

	prev := p.current
	if prev != nil {
		prev.Cancel()
	}
	params := p.params()

	p.current = p.runner.Submit(task.KindPlayback, func(ctx context.Context, t *task.Task) error {
		if prev != nil {
			select {
			case <-prev.Done():
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		for i, seg := range segments {
			if err := ctx.Err(); err != nil {
				return err
			}
			t.SetPhase(fmt.Sprintf("segment %d/%d", i+1, len(segments)))
			if err := p.engine.Speak(ctx, seg, params); err != nil {
				return err
			}
		}
		return nil
	}, func(t *task.Task) {
		defer p.release(t)
		p.finishPlayback(t)
		if onDone != nil {
			onDone(t.Err())
		}
	})
	p.pending[p.current] = struct{}{}
	p.state = Playing
	p.log.Debug("playback started", "task_id", p.current.ID, "segments", len(segments), "rate", params.Rate)
	return nil
}

func (p *Player) finishPlayback(t *task.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != t {
		// Superseded by a newer Play or cleared by Stop.
		return
	}
	p.current = nil
	p.state = Idle
}

// Stop cancels in-flight playback. It is idempotent and does not wait
// for the engine to exit.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.current != nil {
		p.current.Cancel()
		p.current = nil
	}
	if p.state == Playing {
		p.state = Stopped
	}
}

// Pause is not supported by the engine.
func (p *Player) Pause() error {
	return ErrPauseUnsupported
}

// Save exports text to outPath in the background. The format follows the
// extension: .wav is synthesized directly, .mp3 through a temporary WAV.
// onDone receives the path actually written and the error, which is a
// *FallbackError when only the WAV could be kept.
func (p *Player) Save(text, outPath string, onDone func(path string, err error)) error {
	ext := strings.ToLower(filepath.Ext(outPath))
	if ext != ".wav" && ext != ".mp3" {
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, ext)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrNoText
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.export != nil || p.current != nil {
		return ErrBusy
	}
	params := p.params()

	p.export = p.runner.Submit(task.KindExport, func(ctx context.Context, t *task.Task) error {
		if ext == ".wav" {
			t.SetPhase("synthesizing")
			if err := p.engine.Synthesize(ctx, text, outPath, params); err != nil {
				return err
			}
			t.SetOutput(outPath)
			return nil
		}
		return p.saveMP3(ctx, t, text, outPath, params)
	}, func(t *task.Task) {
		defer p.release(t)
		p.mu.Lock()
		if p.export == t {
			p.export = nil
		}
		p.mu.Unlock()
		if onDone != nil {
			onDone(t.OutputPath(), t.Err())
		}
	})
	p.pending[p.export] = struct{}{}
	p.log.Debug("export started", "task_id", p.export.ID, "path", outPath)
	return nil
}

func (p *Player) saveMP3(ctx context.Context, t *task.Task, text, outPath string, params speech.Params) error {
	tmp, err := os.CreateTemp(p.tempDir, "paperdesk-*.wav")
	if err != nil {
		return fmt.Errorf("create temp wav: %w", err)
	}
	wavPath := tmp.Name()
	tmp.Close()

	t.SetPhase("synthesizing")
	if err := p.engine.Synthesize(ctx, text, wavPath, params); err != nil {
		os.Remove(wavPath)
		return err
	}

	t.SetPhase("transcoding")
	if p.transcoder == nil {
		t.SetOutput(wavPath)
		return &FallbackError{WAVPath: wavPath, Err: errors.New("no transcoder configured")}
	}
	if err := p.transcoder.Transcode(ctx, wavPath, outPath); err != nil {
		t.SetOutput(wavPath)
		return &FallbackError{WAVPath: wavPath, Err: err}
	}
	os.Remove(wavPath)
	t.SetOutput(outPath)
	return nil
}

// CancelExport cancels an export in progress, if any.
func (p *Player) CancelExport() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.export != nil {
		p.export.Cancel()
	}
}

func (p *Player) release(t *task.Task) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.pending, t)
}

// Wait blocks until no playback or export task is running.
func (p *Player) Wait() {
	for {
		p.mu.Lock()
		pending := make([]*task.Task, 0, len(p.pending))
		for t := range p.pending {
			pending = append(pending, t)
		}
		p.mu.Unlock()

		if len(pending) == 0 {
			return
		}
		for _, t := range pending {
			<-t.Done()
		}
	}
}

// Close stops playback, cancels any export and waits for both.
func (p *Player) Close() {
	p.Stop()
	p.CancelExport()
	p.Wait()
}
