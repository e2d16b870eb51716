package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/paperdesk/internal/document"
)

// WordsPerTextPage is the size at which plain text paragraphs are
// grouped into a new page.
const WordsPerTextPage = 400

// TextParser handles plain text files. Form feeds separate pages;
// without them paragraphs are grouped into pages of roughly
// WordsPerTextPage words.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) (*document.Document, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	doc := &document.Document{Title: baseTitle(filename)}

	var page strings.Builder
	var current strings.Builder
	words := 0

	flushPara := func() {
		if current.Len() == 0 {
			return
		}
		if page.Len() > 0 {
			page.WriteString("\n\n")
		}
		page.WriteString(current.String())
		words += len(strings.Fields(current.String()))
		current.Reset()
	}
	flushPage := func(force bool) {
		if page.Len() == 0 && !force {
			return
		}
		doc.Pages = append(doc.Pages, &document.Page{
			Number: len(doc.Pages) + 1,
			Text:   strings.TrimSpace(page.String()),
		})
		page.Reset()
		words = 0
	}

	for scanner.Scan() {
		line := scanner.Text()
		for {
			i := strings.IndexByte(line, '\f')
			if i < 0 {
				break
			}
			if before := strings.TrimSpace(line[:i]); before != "" {
				if current.Len() > 0 {
					current.WriteString("\n")
				}
				current.WriteString(before)
			}
			flushPara()
			flushPage(true)
			line = line[i+1:]
		}
		if strings.TrimSpace(line) == "" {
			flushPara()
			if words >= WordsPerTextPage {
				flushPage(false)
			}
			continue
		}
		if current.Len() > 0 {
			current.WriteString("\n")
		}
		current.WriteString(line)
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	flushPara()
	flushPage(false)

	return doc, nil
}
