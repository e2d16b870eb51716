package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dgallion1/paperdesk/internal/document"
)

// Parser converts raw document bytes into pages of text.
type Parser interface {
	Parse(r io.Reader, filename string) (*document.Document, error)
}

// pathParser is implemented by parsers whose backing library wants a
// file on disk; ParseFile hands them the path instead of a stream.
type pathParser interface {
	ParsePath(path string) (*document.Document, error)
}

// Options tune parser behaviour.
type Options struct {
	// FallbackPdftotext retries PDFs with poppler's pdftotext when the
	// pure-Go reader fails.
	FallbackPdftotext bool
}

// SupportedExtensions lists file extensions that can be read aloud.
var SupportedExtensions = map[string]bool{
	".pdf":      true,
	".txt":      true,
	".md":       true,
	".markdown": true,
	".html":     true,
	".htm":      true,
	".docx":     true,
}

// ErrUnsupported is returned for files with an unknown extension.
var ErrUnsupported = errors.New("unsupported file extension")

// DocumentError reports a file that could not be opened or parsed.
type DocumentError struct {
	Path string
	Err  error
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("open document %s: %v", e.Path, e.Err)
}

func (e *DocumentError) Unwrap() error { return e.Err }

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string, opts Options) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{FallbackPdftotext: opts.FallbackPdftotext}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// ParseFile opens path and parses it with the parser for its extension.
// Every failure is wrapped in a *DocumentError.
func ParseFile(path string, opts Options) (*document.Document, error) {
	p, err := ForFile(path, opts)
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}

	var doc *document.Document
	if pp, ok := p.(pathParser); ok {
		if _, err := os.Stat(path); err != nil {
			return nil, &DocumentError{Path: path, Err: err}
		}
		doc, err = pp.ParsePath(path)
	} else {
		f, openErr := os.Open(path)
		if openErr != nil {
			return nil, &DocumentError{Path: path, Err: openErr}
		}
		doc, err = p.Parse(f, filepath.Base(path))
		f.Close()
	}
	if err != nil {
		return nil, &DocumentError{Path: path, Err: err}
	}
	return doc, nil
}

// Extract returns the text of every page of the document at path, in
// order. Blank pages are returned as empty strings.
func Extract(path string) ([]string, error) {
	doc, err := ParseFile(path, Options{})
	if err != nil {
		return nil, err
	}
	return doc.Texts(), nil
}

func baseTitle(filename string) string {
	base := filepath.Base(filename)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
