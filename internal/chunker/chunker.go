// Package chunker splits page text into segments that are handed to the
// speech engine one at a time, so that playback can be interrupted
// between segments.
package chunker

import (
	"strings"
)

// Config controls chunking behavior.
type Config struct {
	MaxWords int // Upper bound on words per segment.
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{MaxWords: 60}
}

// Segments breaks text into speakable segments of at most cfg.MaxWords
// words. Paragraph boundaries are kept; long paragraphs are split on
// sentence ends, and sentences that are still too long on word
// boundaries. Whitespace-only input yields no segments.
func Segments(text string, cfg Config) []string {
	if cfg.MaxWords <= 0 {
		cfg.MaxWords = DefaultConfig().MaxWords
	}

	var result []string
	for _, para := range splitByParagraphs(text) {
		if CountWords(para) <= cfg.MaxWords {
			result = append(result, para)
			continue
		}
		result = append(result, splitBySentences(para, cfg.MaxWords)...)
	}
	return result
}

// splitByParagraphs splits on double-newlines.
func splitByParagraphs(text string) []string {
	parts := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n\n")
	var result []string
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			result = append(result, p)
		}
	}
	return result
}

// splitBySentences packs whole sentences into segments of at most
// maxWords words.
func splitBySentences(text string, maxWords int) []string {
	var result []string
	var current strings.Builder
	currentWords := 0

	flush := func() {
		if currentWords > 0 {
			result = append(result, current.String())
			current.Reset()
			currentWords = 0
		}
	}

	for _, sent := range splitSentences(text) {
		sentWords := CountWords(sent)

		if sentWords > maxWords {
			flush()
			result = append(result, splitByWords(sent, maxWords)...)
			continue
		}
		if currentWords+sentWords > maxWords {
			flush()
		}
		if current.Len() > 0 {
			current.WriteString(" ")
		}
		current.WriteString(sent)
		currentWords += sentWords
	}
	flush()

	return result
}

// splitSentences does basic sentence splitting.
func splitSentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}

	return sentences
}

func splitByWords(text string, maxWords int) []string {
	words := strings.Fields(text)
	var result []string
	for len(words) > 0 {
		n := min(maxWords, len(words))
		result = append(result, strings.Join(words[:n], " "))
		words = words[n:]
	}
	return result
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t'
}
