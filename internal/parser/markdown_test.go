package parser

import (
	"strings"
	"testing"
)

func TestMarkdownParser_HeadingsStartPages(t *testing.T) {
	input := `# Title

Intro text.

## Section A

Section A content.

### Subsection A1

Subsection A1 content.

## Section B

Section B content.
`
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "doc.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if doc.Title != "Title" {
		t.Errorf("expected title %q, got %q", "Title", doc.Title)
	}
	if len(doc.Pages) != 4 {
		t.Fatalf("expected 4 pages, got %d", len(doc.Pages))
	}

	wantTitles := []string{"Title", "Section A", "Subsection A1", "Section B"}
	for i, w := range wantTitles {
		if doc.Pages[i].Title != w {
			t.Errorf("page %d: expected title %q, got %q", i+1, w, doc.Pages[i].Title)
		}
		if doc.Pages[i].Number != i+1 {
			t.Errorf("page %d: expected number %d, got %d", i+1, i+1, doc.Pages[i].Number)
		}
	}
	if doc.Pages[1].Text != "Section A\n\nSection A content." {
		t.Errorf("unexpected section text %q", doc.Pages[1].Text)
	}
}

func TestMarkdownParser_NoHeadings(t *testing.T) {
	input := `Just some plain text.

Another paragraph here.`

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "plain.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(doc.Pages) != 1 {
		t.Fatalf("expected 1 page for headingless markdown, got %d", len(doc.Pages))
	}
	want := "Just some plain text.\n\nAnother paragraph here."
	if doc.Pages[0].Text != want {
		t.Errorf("expected %q, got %q", want, doc.Pages[0].Text)
	}
}

func TestMarkdownParser_CodeBlocksAndLists(t *testing.T) {
	input := "# API Reference\n\nSome intro.\n\n## Endpoints\n\n- users\n- groups\n\n```\nGET /api/users\n```\n\nMore text after code.\n"

	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(input), "api.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 2 {
		t.Fatalf("expected 2 pages, got %d", len(doc.Pages))
	}

	endpoints := doc.Pages[1].Text
	for _, want := range []string{"users", "groups", "GET /api/users", "More text after code."} {
		if !strings.Contains(endpoints, want) {
			t.Errorf("expected %q in %q", want, endpoints)
		}
	}
	if strings.Count(endpoints, "More text after code.") != 1 {
		t.Errorf("paragraph text duplicated: %q", endpoints)
	}
}

func TestMarkdownParser_EmptyInput(t *testing.T) {
	p := &MarkdownParser{}
	doc, err := p.Parse(strings.NewReader(""), "empty.md")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(doc.Pages) != 0 {
		t.Errorf("expected 0 pages for empty input, got %d", len(doc.Pages))
	}
}

func TestMarkdownParser_TitleFromFilename(t *testing.T) {
	tests := []struct {
		filename string
		want     string
	}{
		{"readme.md", "readme"},
		{"notes.markdown", "notes"},
		{"dir/plain.md", "plain"},
	}
	p := &MarkdownParser{}
	for _, tt := range tests {
		doc, err := p.Parse(strings.NewReader("text"), tt.filename)
		if err != nil {
			t.Fatalf("unexpected error for %s: %v", tt.filename, err)
		}
		if doc.Title != tt.want {
			t.Errorf("filename=%q: expected title %q, got %q", tt.filename, tt.want, doc.Title)
		}
	}
}
