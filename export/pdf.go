// Package export renders the stripped plain-text form of a policy document
// as a paginated, fixed-layout PDF. It walks the document line by line,
// keying layout off the structural markers the strip pass preserves.
package export

import (
	"io"
	"strings"

	"github.com/go-pdf/fpdf"
)

// Letter pages with one-inch margins, in points.
const (
	pageWidth    = 612.0
	pageHeight   = 792.0
	margin       = 72.0
	contentWidth = pageWidth - 2*margin

	titleSize      = 20.0
	sectionSize    = 16.0
	subsectionSize = 13.0
	bodySize       = 12.0

	bodyLead     = 18.0
	headingLead  = 24.0
	blankAdvance = 12.0
	listIndent   = 18.0
)

const fontFamily = "Helvetica"

// PDF writes paginated PDF output for a plain policy document. The input is
// expected to contain no dialect syntax and no emphasis markers; institution
// names are the proofing pass's job, not re-checked here.
func PDF(plain string, w io.Writer) error {
	pdf := fpdf.New("P", "pt", "Letter", "")
	pdf.SetMargins(margin, margin, margin)
	// Page breaks are driven by the cursor walk below.
	pdf.SetAutoPageBreak(false, margin)
	pdf.AddPage()

	// Core fonts are cp1252; model output can carry curly quotes and the
	// bullet glyph, so translate before drawing.
	r := &renderer{pdf: pdf, tr: pdf.UnicodeTranslatorFromDescriptor(""), y: margin}
	for _, line := range strings.Split(plain, "\n") {
		r.drawLine(line)
	}
	return pdf.Output(w)
}

type renderer struct {
	pdf *fpdf.Fpdf
	tr  func(string) string
	y   float64
}

func (r *renderer) drawLine(line string) {
	kind, marker, content := classify(line)
	switch kind {
	case kindBlank:
		r.y += blankAdvance
		r.pageBreakIfNeeded()
	case kindTitle:
		r.pdf.SetFont(fontFamily, "B", titleSize)
		x := margin + (contentWidth-r.measure(content))/2
		if x < margin {
			x = margin
		}
		r.text(x, content, headingLead+6)
	case kindSection:
		r.pdf.SetFont(fontFamily, "B", sectionSize)
		r.text(margin, content, headingLead)
	case kindSubsection:
		r.pdf.SetFont(fontFamily, "B", subsectionSize)
		r.text(margin, content, headingLead-4)
	case kindBullet, kindNumbered:
		r.pdf.SetFont(fontFamily, "", bodySize)
		r.pdf.Text(margin, r.y+bodySize, r.tr(marker))
		r.wrapped(content, margin+listIndent, contentWidth-listIndent)
	default:
		r.pdf.SetFont(fontFamily, "", bodySize)
		r.wrapped(content, margin, contentWidth)
	}
}

// text draws one already-fitting line at x and advances the cursor.
func (r *renderer) text(x float64, s string, lead float64) {
	r.pdf.Text(x, r.y+lead*0.75, r.tr(s))
	r.y += lead
	r.pageBreakIfNeeded()
}

// wrapped word-wraps content into the available width, checking for a page
// break after every drawn line, mid-wrap included.
func (r *renderer) wrapped(content string, x, width float64) {
	lines := wrap(content, width, r.measure)
	if len(lines) == 0 {
		r.y += bodyLead
		r.pageBreakIfNeeded()
		return
	}
	for _, line := range lines {
		r.pdf.Text(x, r.y+bodySize, r.tr(line))
		r.y += bodyLead
		r.pageBreakIfNeeded()
	}
}

func (r *renderer) measure(s string) float64 {
	return r.pdf.GetStringWidth(r.tr(s))
}

func (r *renderer) pageBreakIfNeeded() {
	if r.y > pageHeight-margin {
		r.pdf.AddPage()
		r.y = margin
	}
}
