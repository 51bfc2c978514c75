package report

import (
	"bytes"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/use-agent/sitebrief/models"
)

// Renderer turns report markdown into a binary document. Used only in
// final mode; preview mode returns the markdown directly.
type Renderer interface {
	Render(markdown string) ([]byte, error)
}

// PDFRenderer renders markdown to a simple A4 PDF: headings bold and
// sized by level, bullets indented, everything else body text. Byte-level
// layout fidelity is not a goal.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render produces the PDF bytes for the markdown report.
func (r *PDFRenderer) Render(markdown string) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(true, 15)
	pdf.AddPage()

	// Core fonts are cp1252; translate what we can, drop the rest.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimRight(line, " ")
		switch {
		case strings.HasPrefix(line, "# "):
			pdf.SetFont("Helvetica", "B", 18)
			pdf.MultiCell(0, 9, tr(strings.TrimPrefix(line, "# ")), "", "L", false)
			pdf.Ln(2)
		case strings.HasPrefix(line, "## "):
			pdf.SetFont("Helvetica", "B", 14)
			pdf.MultiCell(0, 7, tr(strings.TrimPrefix(line, "## ")), "", "L", false)
			pdf.Ln(1)
		case strings.HasPrefix(line, "### "):
			pdf.SetFont("Helvetica", "B", 12)
			pdf.MultiCell(0, 6, tr(strings.TrimPrefix(line, "### ")), "", "L", false)
		case strings.HasPrefix(line, "- ") || strings.HasPrefix(line, "* "):
			pdf.SetFont("Helvetica", "", 11)
			pdf.SetX(pdf.GetX() + 5)
			pdf.MultiCell(0, 5.5, tr("• "+line[2:]), "", "L", false)
			pdf.SetX(pdf.GetX() - 5)
		case line == "":
			pdf.Ln(3)
		default:
			pdf.SetFont("Helvetica", "", 11)
			pdf.MultiCell(0, 5.5, tr(line), "", "L", false)
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, models.NewReportError(models.ErrCodeRenderFailure, "PDF rendering failed", err)
	}
	return buf.Bytes(), nil
}
