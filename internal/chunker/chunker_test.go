package chunker

import (
	"strings"
	"testing"
	"time"
)

func TestSegments_ShortTextIsOneSegment(t *testing.T) {
	segs := Segments("Hello there. How are you?", Config{MaxWords: 60})
	if len(segs) != 1 {
		t.Fatalf("expected 1 segment, got %d", len(segs))
	}
	if segs[0] != "Hello there. How are you?" {
		t.Errorf("unexpected segment %q", segs[0])
	}
}

func TestSegments_ParagraphsKept(t *testing.T) {
	segs := Segments("First.\n\n\n\nSecond.\r\n\r\nThird.", Config{MaxWords: 60})
	want := []string{"First.", "Second.", "Third."}
	if len(segs) != len(want) {
		t.Fatalf("expected %d segments, got %d: %q", len(want), len(segs), segs)
	}
	for i := range want {
		if segs[i] != want[i] {
			t.Errorf("segment %d: expected %q, got %q", i, want[i], segs[i])
		}
	}
}

func TestSegments_LongParagraphSplitOnSentences(t *testing.T) {
	text := strings.Repeat("The quick brown fox jumps over the lazy dog. ", 30)
	segs := Segments(text, Config{MaxWords: 20})

	if len(segs) != 15 {
		t.Fatalf("expected 15 segments, got %d", len(segs))
	}
	total := 0
	for i, s := range segs {
		n := CountWords(s)
		if n > 20 {
			t.Errorf("segment %d has %d words, above limit", i, n)
		}
		if !strings.HasSuffix(s, ".") {
			t.Errorf("segment %d does not end on a sentence: %q", i, s)
		}
		total += n
	}
	if total != 270 {
		t.Errorf("expected all 270 words preserved, got %d", total)
	}
}

func TestSegments_RunOnSentenceSplitOnWords(t *testing.T) {
	text := strings.TrimSpace(strings.Repeat("word ", 25))
	segs := Segments(text, Config{MaxWords: 10})
	if len(segs) != 3 {
		t.Fatalf("expected 3 segments, got %d", len(segs))
	}
	if CountWords(segs[2]) != 5 {
		t.Errorf("expected 5 words in last segment, got %d", CountWords(segs[2]))
	}
}

func TestSegments_Blank(t *testing.T) {
	if segs := Segments("  \n\n\t ", DefaultConfig()); len(segs) != 0 {
		t.Errorf("expected no segments, got %q", segs)
	}
}

func TestSegments_ZeroConfigUsesDefault(t *testing.T) {
	if segs := Segments("a b c", Config{}); len(segs) != 1 {
		t.Errorf("expected 1 segment, got %d", len(segs))
	}
}

func TestSpeakingTime(t *testing.T) {
	text := strings.Repeat("word ", 200)
	if got := SpeakingTime(text, 200); got != time.Minute {
		t.Errorf("expected 1m, got %v", got)
	}
	if got := SpeakingTime(text, 0); got != 0 {
		t.Errorf("expected 0 for zero rate, got %v", got)
	}
}
