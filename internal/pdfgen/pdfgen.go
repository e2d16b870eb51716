// Package pdfgen writes simple text PDFs: a title line followed by
// wrapped paragraphs.
package pdfgen

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

const (
	fontFamily   = "Helvetica"
	fontSize     = 12
	bottomMargin = 15
	titleHeight  = 10
	titleGap     = 6
	lineHeight   = 8
	paraGap      = 2
)

// Generate writes a PDF with the given title and paragraphs to path.
func Generate(path, title string, paragraphs []string) error {
	pdf := build(title, paragraphs)
	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write pdf %s: %w", path, err)
	}
	return nil
}

// Render writes the PDF to w.
func Render(w io.Writer, title string, paragraphs []string) error {
	pdf := build(title, paragraphs)
	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("render pdf: %w", err)
	}
	return nil
}

func build(title string, paragraphs []string) *fpdf.Fpdf {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, bottomMargin)
	pdf.AddPage()
	pdf.SetFont(fontFamily, "", fontSize)

	// Core fonts are cp1252; translate UTF-8 input.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.CellFormat(0, titleHeight, tr(title), "", 1, "", false, 0, "")
	pdf.Ln(titleGap)
	for _, p := range paragraphs {
		pdf.MultiCell(0, lineHeight, tr(p), "", "", false)
		pdf.Ln(paraGap)
	}
	return pdf
}
