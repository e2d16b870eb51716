package chunker

import (
	"strings"
	"time"
)

// CountWords returns the number of whitespace-separated words in text.
func CountWords(text string) int {
	return len(strings.Fields(text))
}

// SpeakingTime estimates how long text takes to read at rate words per
// minute. A non-positive rate yields zero.
func SpeakingTime(text string, rate int) time.Duration {
	if rate <= 0 {
		return 0
	}
	words := CountWords(text)
	return time.Duration(float64(words) / float64(rate) * float64(time.Minute))
}
