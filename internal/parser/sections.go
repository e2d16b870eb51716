package parser

import (
	"strings"

	"github.com/dgallion1/paperdesk/internal/document"
)

// sectionBuilder turns a stream of headings and paragraphs into flat
// pages, one per heading. Text before the first heading becomes its own
// untitled page.
type sectionBuilder struct {
	pages []*document.Page
	title string
	text  strings.Builder
}

func (b *sectionBuilder) heading(title string) {
	b.flush()
	b.title = strings.TrimSpace(title)
}

func (b *sectionBuilder) paragraph(t string) {
	t = strings.TrimSpace(t)
	if t == "" {
		return
	}
	if b.text.Len() > 0 {
		b.text.WriteString("\n\n")
	}
	b.text.WriteString(t)
}

func (b *sectionBuilder) flush() {
	body := strings.TrimSpace(b.text.String())
	b.text.Reset()
	if b.title == "" && body == "" {
		return
	}

	// The heading is part of the page text so it gets read aloud.
	text := body
	if b.title != "" {
		text = b.title
		if body != "" {
			text += "\n\n" + body
		}
	}
	b.pages = append(b.pages, &document.Page{
		Number: len(b.pages) + 1,
		Title:  b.title,
		Text:   text,
	})
	b.title = ""
}

func (b *sectionBuilder) done() []*document.Page {
	b.flush()
	return b.pages
}
