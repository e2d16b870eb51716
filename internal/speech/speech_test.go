package speech

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
	"time"
)

func TestAmplitude(t *testing.T) {
	tests := []struct {
		volume float64
		want   int
	}{
		{0, 0},
		{0.5, 50},
		{1.0, 100},
		{-1, 0},
		{5, 200},
	}
	for _, tt := range tests {
		if got := Amplitude(tt.volume); got != tt.want {
			t.Errorf("Amplitude(%v) = %d, want %d", tt.volume, got, tt.want)
		}
	}
}

func TestESpeak_Args(t *testing.T) {
	e := NewESpeak("", "en-us")
	if e.Binary != "espeak-ng" {
		t.Errorf("expected default binary, got %q", e.Binary)
	}
	got := strings.Join(e.args(Params{Rate: 180, Volume: 0.8}), " ")
	want := "-s 180 -a 80 -v en-us"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestESpeak_MissingBinary(t *testing.T) {
	e := NewESpeak(filepath.Join(t.TempDir(), "no-such-espeak"), "")
	err := e.Speak(context.Background(), "hi", Params{Rate: 200, Volume: 1})
	if err == nil {
		t.Fatal("expected error for missing binary")
	}
}

// writeScript creates an executable shell script standing in for a
// speech program.
func writeScript(t *testing.T, body string) string {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("shell scripts not supported")
	}
	path := filepath.Join(t.TempDir(), "fake-tts")
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"+body+"\n"), 0o755); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestESpeak_SynthesizeWritesFile(t *testing.T) {
	// Copies stdin to the path following -w.
	script := writeScript(t, `while [ "$#" -gt 0 ]; do
  if [ "$1" = "-w" ]; then out="$2"; fi
  shift
done
cat > "$out"`)

	e := NewESpeak(script, "")
	out := filepath.Join(t.TempDir(), "out.wav")
	if err := e.Synthesize(context.Background(), "hello", out, Params{Rate: 200, Volume: 1}); err != nil {
		t.Fatalf("synthesize: %v", err)
	}
	data, err := os.ReadFile(out)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("expected text on stdin, got %q", data)
	}
}

func TestESpeak_FailureIncludesStderr(t *testing.T) {
	script := writeScript(t, `echo "no audio device" >&2; exit 3`)
	e := NewESpeak(script, "")
	err := e.Speak(context.Background(), "hi", Params{Rate: 200, Volume: 1})
	if err == nil || !strings.Contains(err.Error(), "no audio device") {
		t.Errorf("expected stderr in error, got %v", err)
	}
}

func TestESpeak_CancelInterrupts(t *testing.T) {
	script := writeScript(t, `sleep 30`)
	e := NewESpeak(script, "")
	e.GracePeriod = 100 * time.Millisecond

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	start := time.Now()
	err := e.Speak(ctx, "hi", Params{Rate: 200, Volume: 1})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("expected deadline exceeded, got %v", err)
	}
	if elapsed := time.Since(start); elapsed > 5*time.Second {
		t.Errorf("cancel took too long: %v", elapsed)
	}
}

func TestFFmpeg_Args(t *testing.T) {
	script := writeScript(t, `echo "$@" > "$(dirname "$0")/args"`)
	f := NewFFmpeg(script)
	if err := f.Transcode(context.Background(), "in.wav", "out.mp3"); err != nil {
		t.Fatalf("transcode: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(filepath.Dir(script), "args"))
	if err != nil {
		t.Fatal(err)
	}
	if got := strings.TrimSpace(string(data)); got != "-y -loglevel error -i in.wav out.mp3" {
		t.Errorf("unexpected args %q", got)
	}
}
