package session

import (
	"testing"

	"github.com/dgallion1/paperdesk/internal/document"
)

func loaded() *Session {
	s := New()
	s.Load(&document.Document{
		Title: "Book",
		Pages: []*document.Page{
			{Number: 1, Text: "one"},
			{Number: 2, Text: "   "},
			{Number: 3, Text: "three"},
			{Number: 4, Text: "four"},
		},
	})
	return s
}

func TestSession_LoadFiltersBlankPages(t *testing.T) {
	s := loaded()
	if s.Len() != 3 {
		t.Fatalf("expected 3 pages, got %d", s.Len())
	}
	if s.Title() != "Book" {
		t.Errorf("expected title Book, got %q", s.Title())
	}
	if s.Current() != "one" {
		t.Errorf("expected first page, got %q", s.Current())
	}
	if s.Label() != "Page: 1 / 3" {
		t.Errorf("unexpected label %q", s.Label())
	}
}

func TestSession_Navigation(t *testing.T) {
	s := loaded()

	if s.Prev() {
		t.Error("expected Prev to fail on first page")
	}
	if !s.Next() || s.Current() != "three" {
		t.Errorf("expected to move to %q, got %q", "three", s.Current())
	}
	if !s.Next() || s.Current() != "four" {
		t.Errorf("expected to move to %q, got %q", "four", s.Current())
	}
	if s.Next() {
		t.Error("expected Next to fail on last page")
	}
	if s.Index() != 2 {
		t.Errorf("expected index 2, got %d", s.Index())
	}
	if s.Label() != "Page: 3 / 3" {
		t.Errorf("unexpected label %q", s.Label())
	}
	if s.Goto(7) {
		t.Error("expected Goto out of range to fail")
	}
}

func TestSession_EmptyDocument(t *testing.T) {
	s := New()
	if n := s.LoadPages([]string{"", " \n"}); n != 0 {
		t.Fatalf("expected 0 pages, got %d", n)
	}
	if s.Current() != "" {
		t.Errorf("expected empty current, got %q", s.Current())
	}
	if s.Next() || s.Prev() {
		t.Error("expected navigation to fail on empty session")
	}
	if s.Label() != "Page: 0 / 0" {
		t.Errorf("unexpected label %q", s.Label())
	}
	s.Edit("ignored")
	if s.All() != "" {
		t.Errorf("expected empty export text, got %q", s.All())
	}
}

func TestSession_EditAndAll(t *testing.T) {
	s := loaded()
	s.Next()
	s.Edit("THREE")
	if s.Current() != "THREE" {
		t.Errorf("expected edited page, got %q", s.Current())
	}
	if got := s.All(); got != "one\n\nTHREE\n\nfour" {
		t.Errorf("unexpected export text %q", got)
	}
}

func TestSession_AllSkipsClearedPages(t *testing.T) {
	s := loaded()
	s.Next()
	s.Edit("  \n")
	if s.Len() != 3 {
		t.Errorf("expected the cleared page to stay navigable, got %d pages", s.Len())
	}
	if got := s.All(); got != "one\n\nfour" {
		t.Errorf("unexpected export text %q", got)
	}
}

func TestSession_LoadResetsPosition(t *testing.T) {
	s := loaded()
	s.Next()
	s.LoadPages([]string{"a", "b"})
	if s.Index() != 0 || s.Current() != "a" {
		t.Errorf("expected reset to first page, got %d %q", s.Index(), s.Current())
	}
	s.Reset()
	if s.Len() != 0 || s.Title() != "" {
		t.Error("expected cleared session")
	}
}

func TestSession_PagesIsCopy(t *testing.T) {
	s := loaded()
	pages := s.Pages()
	pages[0] = "changed"
	if s.Current() != "one" {
		t.Error("expected Pages to return a copy")
	}
}
