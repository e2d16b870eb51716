// Package session holds the document currently open in the reader and
// the page the user is on.
package session

import (
	"fmt"

	"github.com/dgallion1/paperdesk/internal/document"
)

// Session is owned by the UI goroutine and is not safe for concurrent
// use.
type Session struct {
	title   string
	pages   []string
	current int
}

func New() *Session {
	return &Session{}
}

// Load replaces the session with doc's non-blank pages and moves to the
// first one. It returns the number of pages kept.
func (s *Session) Load(doc *document.Document) int {
	s.title = doc.Title
	return s.LoadPages(doc.Texts())
}

// LoadPages is Load without a title.
func (s *Session) LoadPages(pages []string) int {
	s.pages = document.NonEmpty(pages)
	s.current = 0
	return len(s.pages)
}

// Reset clears the session.
func (s *Session) Reset() {
	s.title = ""
	s.pages = nil
	s.current = 0
}

func (s *Session) Title() string { return s.title }

func (s *Session) Len() int { return len(s.pages) }

// Index is the 0-based current page, meaningful only when Len() > 0.
func (s *Session) Index() int { return s.current }

// Current returns the current page text, or "" when nothing is loaded.
func (s *Session) Current() string {
	if len(s.pages) == 0 {
		return ""
	}
	return s.pages[s.current]
}

// Edit replaces the text of the current page.
func (s *Session) Edit(text string) {
	if len(s.pages) == 0 {
		return
	}
	s.pages[s.current] = text
}

// Next moves forward one page. It reports false at the last page.
func (s *Session) Next() bool {
	return s.Goto(s.current + 1)
}

// Prev moves back one page. It reports false at the first page.
func (s *Session) Prev() bool {
	return s.Goto(s.current - 1)
}

// Goto moves to page i (0-based) if it exists.
func (s *Session) Goto(i int) bool {
	if i < 0 || i >= len(s.pages) {
		return false
	}
	s.current = i
	return true
}

// Label is the status-line page indicator, 1-based.
func (s *Session) Label() string {
	if len(s.pages) == 0 {
		return "Page: 0 / 0"
	}
	return fmt.Sprintf("Page: %d / %d", s.current+1, len(s.pages))
}

// Pages returns a copy of the page texts.
func (s *Session) Pages() []string {
	return append([]string(nil), s.pages...)
}

// All is the text exported for the whole document: the pages joined by
// blank lines. Pages emptied by an edit are skipped.
func (s *Session) All() string {
	return document.Join(document.NonEmpty(s.pages))
}
