package cli

import (
	"context"
	"log/slog"
	"time"

	"github.com/dgallion1/paperdesk/internal/config"
	"github.com/dgallion1/paperdesk/internal/document"
	"github.com/dgallion1/paperdesk/internal/logging"
	"github.com/dgallion1/paperdesk/internal/parser"
	"github.com/dgallion1/paperdesk/internal/player"
	"github.com/dgallion1/paperdesk/internal/speech"
	"github.com/dgallion1/paperdesk/internal/task"
)

// cleanupInterval is how often finished tasks are evicted.
const cleanupInterval = time.Minute

// newSpeech builds the speech engine and transcoder. Tests replace it.
var newSpeech = func(cfg config.SpeechConfig) (speech.Engine, speech.Transcoder) {
	engine := speech.NewESpeak(cfg.Binary, cfg.Voice)
	if cfg.Transcoder == "" {
		return engine, nil
	}
	return engine, speech.NewFFmpeg(cfg.Transcoder)
}

// app holds the services a command needs.
type app struct {
	cfg      *config.Config
	log      *slog.Logger
	runner   *task.Runner
	player   *player.Player
	closeLog func() error
}

func newApp(ctx context.Context) (*app, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log, closeLog, err := logging.OpenFile(cfg.Logging.File, cfg.Logging.Level, cfg.Logging.Format)
	if err != nil {
		return nil, err
	}

	runner := task.NewRunner(cfg.Tasks.TTL, log.With("component", "tasks"))
	runner.Start(ctx, cleanupInterval)

	engine, transcoder := newSpeech(cfg.Speech)
	volume := cfg.Speech.DefaultVolume
	p := player.New(engine, transcoder, runner, log.With("component", "player"), player.Options{
		Rate:         cfg.Speech.DefaultRate,
		Volume:       &volume,
		SegmentWords: cfg.Speech.SegmentWords,
	})

	return &app{cfg: cfg, log: log, runner: runner, player: p, closeLog: closeLog}, nil
}

// open parses a document with the configured extraction options.
func (a *app) open(path string) (*document.Document, error) {
	return parser.ParseFile(path, parser.Options{FallbackPdftotext: a.cfg.PDF.FallbackPdftotext})
}

func (a *app) close() {
	a.player.Close()
	a.runner.Stop()
	_ = a.closeLog()
}
