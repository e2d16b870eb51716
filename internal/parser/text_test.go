package parser

import (
	"strings"
	"testing"
)

func TestTextParser_ParagraphsShareAPage(t *testing.T) {
	input := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "notes.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "notes" {
		t.Errorf("expected title %q, got %q", "notes", doc.Title)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	want := "First paragraph line one.\nFirst paragraph line two.\n\nSecond paragraph.\n\nThird paragraph."
	if doc.Pages[0].Text != want {
		t.Errorf("expected %q, got %q", want, doc.Pages[0].Text)
	}
	if doc.Pages[0].Number != 1 {
		t.Errorf("expected page number 1, got %d", doc.Pages[0].Number)
	}
}

func TestTextParser_EmptyInput(t *testing.T) {
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if doc.Title != "empty" {
		t.Errorf("expected title %q, got %q", "empty", doc.Title)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
}

func TestTextParser_FormFeedSplitsPages(t *testing.T) {
	input := "Page one.\n\fPage two.\n\f\fPage four."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ff.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	got := doc.Texts()
	want := []string{"Page one.", "Page two.", "", "Page four."}
	if len(got) != len(want) {
		t.Fatalf("expected %d pages, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("page %d: expected %q, got %q", i+1, want[i], got[i])
		}
	}
}

func TestTextParser_LongTextGroupedIntoPages(t *testing.T) {
	para := strings.TrimSpace(strings.Repeat("word ", WordsPerTextPage))
	input := para + "\n\n" + para + "\n\nshort tail"
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "long.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 3 {
		t.Fatalf("expected 3 pages, got %d", len(doc.Pages))
	}
	if doc.Pages[2].Text != "short tail" {
		t.Errorf("expected tail page, got %q", doc.Pages[2].Text)
	}
}

func TestTextParser_WhitespaceOnlyLines(t *testing.T) {
	// Lines with only whitespace should be treated as blank.
	input := "Para one.\n   \nPara two."
	p := &TextParser{}
	doc, err := p.Parse(strings.NewReader(input), "ws.txt")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page, got %d", len(doc.Pages))
	}
	if doc.Pages[0].Text != "Para one.\n\nPara two." {
		t.Errorf("unexpected text %q", doc.Pages[0].Text)
	}
}
