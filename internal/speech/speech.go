// Package speech drives external text-to-speech and audio transcoding
// programs.
package speech

import (
	"context"
	"errors"
)

// Params are applied when an utterance starts.
type Params struct {
	Rate   int     // words per minute
	Volume float64 // 0.0 to 1.0
}

// Engine turns text into audio.
type Engine interface {
	// Speak plays text on the default audio device and returns when
	// playback ends or ctx is cancelled.
	Speak(ctx context.Context, text string, p Params) error
	// Synthesize writes text as a WAV file at wavPath.
	Synthesize(ctx context.Context, text, wavPath string, p Params) error
}

// Transcoder converts an audio file to the format implied by dst's
// extension.
type Transcoder interface {
	Transcode(ctx context.Context, src, dst string) error
}

// ErrNotInstalled is returned when the backing program is not on PATH.
var ErrNotInstalled = errors.New("program not installed")
