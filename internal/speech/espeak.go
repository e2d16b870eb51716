package speech

import (
	"context"
	"math"
	"strconv"
	"strings"
	"time"
)

// ESpeak speaks through the espeak-ng program.
type ESpeak struct {
	Binary      string        // program name or path, "espeak-ng" by default
	Voice       string        // optional voice name passed with -v
	GracePeriod time.Duration // interrupt-to-kill delay on cancel
}

// NewESpeak returns an engine for binary with the given voice.
func NewESpeak(binary, voice string) *ESpeak {
	if binary == "" {
		binary = "espeak-ng"
	}
	return &ESpeak{Binary: binary, Voice: voice, GracePeriod: DefaultGracePeriod}
}

// Speak reads text from stdin and plays it.
func (e *ESpeak) Speak(ctx context.Context, text string, p Params) error {
	cmd := command(ctx, e.GracePeriod, e.Binary, append(e.args(p), "--stdin")...)
	cmd.Stdin = strings.NewReader(text)
	return run(ctx, cmd)
}

// Synthesize writes text to wavPath instead of the audio device.
func (e *ESpeak) Synthesize(ctx context.Context, text, wavPath string, p Params) error {
	cmd := command(ctx, e.GracePeriod, e.Binary, append(e.args(p), "-w", wavPath, "--stdin")...)
	cmd.Stdin = strings.NewReader(text)
	return run(ctx, cmd)
}

func (e *ESpeak) args(p Params) []string {
	args := []string{
		"-s", strconv.Itoa(p.Rate),
		"-a", strconv.Itoa(Amplitude(p.Volume)),
	}
	if e.Voice != "" {
		args = append(args, "-v", e.Voice)
	}
	return args
}

// Amplitude maps a 0..1 volume to espeak's 0..200 amplitude scale, where
// 100 is the program's normal loudness.
func Amplitude(volume float64) int {
	if math.IsNaN(volume) || volume < 0 {
		volume = 0
	}
	return min(200, int(math.Round(volume*100)))
}
