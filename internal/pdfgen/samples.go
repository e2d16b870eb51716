package pdfgen

import (
	"path/filepath"
	"strings"
)

// Sample is a fixed document used to exercise the reader.
type Sample struct {
	File       string
	Title      string
	Paragraphs []string
}

// Samples are the two demo documents written by cmd/samplepdf.
var Samples = []Sample{
	{
		File:  "sample1.pdf",
		Title: "Sample PDF 1",
		Paragraphs: []string{
			strings.Repeat("This is sample PDF 1. ", 6),
			strings.Repeat("Page two text. ", 10),
		},
	},
	{
		File:  "sample2.pdf",
		Title: "Sample PDF 2",
		Paragraphs: []string{
			strings.Repeat("This is sample PDF 2. ", 8),
			"",
		},
	},
}

// WriteSamples generates every sample into dir and returns the paths
// written. It stops at the first failure.
func WriteSamples(dir string) ([]string, error) {
	var written []string
	for _, s := range Samples {
		path := filepath.Join(dir, s.File)
		if err := Generate(path, s.Title, s.Paragraphs); err != nil {
			return written, err
		}
		written = append(written, path)
	}
	return written, nil
}
