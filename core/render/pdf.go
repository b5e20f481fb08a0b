package render

// PDF renderer.
// Lays the records out as a printable question sheet using gofpdf.
// Bengali text needs a UTF-8 TrueType font (FontPath); without one the
// core Helvetica font is used and unsupported glyphs degrade.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/qbformat/core"
)

const utf8FontFamily = "qbsheet"

// PDFRenderer renders a batch as a PDF question sheet.
type PDFRenderer struct {
	FontPath string
}

// NewPDFRenderer creates a PDFRenderer. fontPath may be empty.
func NewPDFRenderer(fontPath string) *PDFRenderer {
	return &PDFRenderer{FontPath: fontPath}
}

// Render converts the batch into PDF bytes.
func (r *PDFRenderer) Render(batch core.Batch) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)

	family := "Helvetica"
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	if r.FontPath != "" {
		pdf.AddUTF8Font(utf8FontFamily, "", r.FontPath)
		family = utf8FontFamily
		tr = func(s string) string { return s }
	}
	// The UTF-8 font is registered for the regular style only.
	style := func(s string) string {
		if family == utf8FontFamily {
			return ""
		}
		return s
	}

	pdf.AddPage()

	// Title.
	pdf.SetFont(family, style("B"), 16)
	pdf.MultiCell(0, 8, tr(batch.Label()), "", "L", false)

	pdf.SetFont(family, style("I"), 9)
	pdf.SetTextColor(100, 100, 100)
	meta := fmt.Sprintf("%d items", len(batch.Records))
	if !batch.ConvertedAt.IsZero() {
		meta += " | converted " + batch.ConvertedAt.Format("2006-01-02 15:04")
	}
	pdf.MultiCell(0, 5, tr(meta), "", "L", false)
	pdf.SetTextColor(0, 0, 0)
	pdf.Ln(4)

	for i, rec := range batch.Records {
		pdf.SetFont(family, style("B"), 12)
		pdf.MultiCell(0, 6, tr(fmt.Sprintf("%d. %s", i+1, rec.Chapter)), "", "L", false)
		pdf.Ln(1)

		if rec.Stimulus != "" {
			pdf.SetFont(family, style("I"), 10)
			pdf.SetFillColor(245, 245, 245)
			pdf.MultiCell(0, 5, tr(rec.Stimulus), "", "L", true)
			pdf.Ln(2)
		}

		for _, s := range rec.Slots() {
			if s.Question == "" && s.Answer == "" {
				continue
			}
			pdf.SetFont(family, "", 10)
			pdf.MultiCell(0, 5, tr(s.Name+") "+s.Question), "", "L", false)
			if strings.TrimSpace(s.Answer) != "" {
				pdf.SetTextColor(60, 60, 60)
				pdf.MultiCell(0, 5, tr("    Answer: "+s.Answer), "", "L", false)
				pdf.SetTextColor(0, 0, 0)
			}
		}
		pdf.Ln(4)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}
