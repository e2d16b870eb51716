package document

import "strings"

// Document is the text of a source file split into pages.
type Document struct {
	Title string  // Document title (from metadata or filename)
	Pages []*Page // Pages or sections in source order
}

// Page is one page of a PDF, or one heading-delimited section of a
// format without pages.
type Page struct {
	Number int    // 1-based source page/section number
	Title  string // Section heading (empty for PDF pages)
	Text   string // Trimmed text content; empty for blank pages
}

// Texts returns the page texts in order, blank pages included.
func (d *Document) Texts() []string {
	if d == nil {
		return nil
	}
	out := make([]string, len(d.Pages))
	for i, p := range d.Pages {
		out[i] = p.Text
	}
	return out
}

// NonEmpty drops pages that contain only whitespace.
func NonEmpty(pages []string) []string {
	var out []string
	for _, p := range pages {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return out
}

// Join concatenates pages separated by a blank line.
func Join(pages []string) string {
	return strings.Join(pages, "\n\n")
}
