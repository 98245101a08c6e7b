// Package export renders summary documents to PDF and Excel files and hands
// them to a sharing target.
package export

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
	"github.com/piwi3910/timbercalc/internal/report"
	qrcode "github.com/skip2/go-qrcode"
)

// Page layout constants (A4 portrait in mm).
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	marginLeft   = 12.0
	marginRight  = 12.0
	marginTop    = 12.0
	marginBottom = 15.0
	rowHeight    = 6.0
	qrSize       = 28.0
	contentWidth = pageWidth - marginLeft - marginRight
)

// qrPayload is the machine-readable summary encoded in the document QR code.
type qrPayload struct {
	ID           string `json:"id"`
	Module       string `json:"module"`
	Date         string `json:"date"`
	Entries      int    `json:"entries"`
	Pieces       int    `json:"pieces"`
	TotalMeasure string `json:"total_measure"`
	Unit         string `json:"unit"`
	TotalAmount  string `json:"total_amount"`
}

// pdfWriter carries the state of one PDF rendering pass.
type pdfWriter struct {
	pdf     *fpdf.Fpdf
	tr      func(string) string
	doc     report.Document
	company string
	cols    []column
	y       float64
}

// ExportPDF renders doc to a PDF file at path.
func ExportPDF(path string, doc report.Document, company string) error {
	w, err := newPDFWriter(doc, company)
	if err != nil {
		return err
	}
	return w.pdf.OutputFileAndClose(path)
}

// RenderPDF renders doc as PDF into out.
func RenderPDF(out io.Writer, doc report.Document, company string) error {
	w, err := newPDFWriter(doc, company)
	if err != nil {
		return err
	}
	return w.pdf.Output(out)
}

func newPDFWriter(doc report.Document, company string) (*pdfWriter, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)
	pdf.SetTitle(doc.Title, true)

	w := &pdfWriter{
		pdf:     pdf,
		tr:      pdf.UnicodeTranslatorFromDescriptor(""),
		doc:     doc,
		company: company,
		cols:    columnsFor(doc.Module),
	}

	pdf.AddPage()
	w.renderHeader()
	w.renderTableHeader()
	for _, sec := range doc.Sections {
		w.renderSection(sec)
	}
	if doc.Empty() {
		w.renderNote("No entries")
	}
	if err := w.renderGrandTotal(); err != nil {
		return nil, err
	}
	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return w, nil
}

// renderHeader draws the title block at the top of the first page.
func (w *pdfWriter) renderHeader() {
	pdf := w.pdf
	w.y = marginTop

	if w.company != "" {
		pdf.SetFont("Helvetica", "B", 16)
		pdf.SetXY(marginLeft, w.y)
		pdf.CellFormat(contentWidth, 8, w.tr(w.company), "", 0, "C", false, 0, "")
		w.y += 9
	}

	pdf.SetFont("Helvetica", "B", 13)
	pdf.SetXY(marginLeft, w.y)
	pdf.CellFormat(contentWidth, 7, w.tr(w.doc.Title), "", 0, "C", false, 0, "")
	w.y += 9

	pdf.SetFont("Helvetica", "", 9)
	left := ""
	if w.doc.CustomerName != "" {
		left = "Customer / Product: " + w.doc.CustomerName
	}
	pdf.SetXY(marginLeft, w.y)
	pdf.CellFormat(contentWidth/2, 5, w.tr(left), "", 0, "L", false, 0, "")

	right := ""
	if !w.doc.Date.IsZero() {
		right = "Date: " + w.doc.Date.Format("02 Jan 2006")
	}
	if w.doc.ID != "" {
		right += "   Ref: " + w.doc.ID
	}
	pdf.CellFormat(contentWidth/2, 5, right, "", 0, "R", false, 0, "")
	w.y += 7

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.4)
	pdf.Line(marginLeft, w.y, pageWidth-marginRight, w.y)
	w.y += 3
}

// renderTableHeader draws the column headers at the current position.
func (w *pdfWriter) renderTableHeader() {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetDrawColor(120, 120, 120)
	pdf.SetLineWidth(0.2)
	x := marginLeft
	for _, c := range w.cols {
		pdf.SetXY(x, w.y)
		pdf.CellFormat(c.width, rowHeight, c.header, "1", 0, "C", true, 0, "")
		x += c.width
	}
	w.y += rowHeight
}

// ensureSpace starts a new page with repeated column headers when fewer than
// h millimetres are left.
func (w *pdfWriter) ensureSpace(h float64) {
	if w.y+h <= pageHeight-marginBottom {
		return
	}
	w.pdf.AddPage()
	w.y = marginTop
	w.renderTableHeader()
}

func (w *pdfWriter) renderSection(sec report.Section) {
	if sec.Label != "" {
		w.ensureSpace(rowHeight * 2)
		w.renderBand(sec.Label, 200, 220, 200, "B")
	}
	for _, g := range sec.Groups {
		if g.Label != "" || sec.Label != "" {
			label := g.Label
			if label == "" {
				label = "(no size)"
			}
			w.ensureSpace(rowHeight * 2)
			w.renderBand("Size: "+label, 240, 240, 225, "I")
		}
		for i, r := range g.Rows {
			w.ensureSpace(rowHeight)
			w.renderRow(r, i%2 == 1)
		}
		if g.Label != "" {
			w.ensureSpace(rowHeight)
			w.renderSubtotal(totalsLine("Subtotal "+g.Label, g.Subtotal, w.doc.Module.Unit()))
		}
	}
	if sec.Label != "" {
		w.ensureSpace(rowHeight)
		w.renderSubtotal(totalsLine(sec.Label+" total", sec.Subtotal, w.doc.Module.Unit()))
	}
}

// renderBand draws a full-width shaded label row for a grade or size group.
func (w *pdfWriter) renderBand(text string, r, g, b int, style string) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", style, 9)
	pdf.SetFillColor(r, g, b)
	pdf.SetXY(marginLeft, w.y)
	pdf.CellFormat(contentWidth, rowHeight, w.tr(text), "1", 0, "L", true, 0, "")
	w.y += rowHeight
}

func (w *pdfWriter) renderRow(r report.Row, shaded bool) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "", 8)
	if shaded {
		pdf.SetFillColor(247, 247, 247)
	} else {
		pdf.SetFillColor(255, 255, 255)
	}
	x := marginLeft
	for _, c := range w.cols {
		text := w.tr(c.value(r))
		// Truncate text that would overflow the cell
		for len(text) > 0 && pdf.GetStringWidth(text) > c.width-1.5 {
			text = text[:len(text)-1]
		}
		if !r.Entry.Priced() && c.header == "Rate" {
			pdf.SetTextColor(160, 80, 0)
		}
		pdf.SetXY(x, w.y)
		pdf.CellFormat(c.width, rowHeight, text, "1", 0, c.align, true, 0, "")
		pdf.SetTextColor(0, 0, 0)
		x += c.width
	}
	w.y += rowHeight
}

func (w *pdfWriter) renderSubtotal(text string) {
	pdf := w.pdf
	pdf.SetFont("Helvetica", "B", 8)
	pdf.SetFillColor(250, 250, 235)
	pdf.SetXY(marginLeft, w.y)
	pdf.CellFormat(contentWidth, rowHeight, w.tr(text), "1", 0, "R", true, 0, "")
	w.y += rowHeight
}

func (w *pdfWriter) renderNote(text string) {
	w.pdf.SetFont("Helvetica", "I", 9)
	w.pdf.SetXY(marginLeft, w.y)
	w.pdf.CellFormat(contentWidth, rowHeight, text, "1", 0, "C", false, 0, "")
	w.y += rowHeight
}

// renderGrandTotal draws the grand total block and the summary QR code.
func (w *pdfWriter) renderGrandTotal() error {
	pdf := w.pdf
	t := w.doc.GrandTotal
	unit := w.doc.Module.Unit()

	w.ensureSpace(qrSize + 18)
	w.y += 4
	top := w.y

	items := []struct {
		label string
		value string
	}{
		{"Entries", fmt.Sprintf("%d", t.Entries)},
		{"Total pieces", fmt.Sprintf("%d", t.Count)},
		{"Total " + unit, t.TotalMeasure.StringFixed(2)},
		{"Total amount", t.TotalAmount.StringFixed(2)},
	}
	if t.Unpriced > 0 {
		items = append(items, struct {
			label string
			value string
		}{"Not priced", fmt.Sprintf("%d entries", t.Unpriced)})
	}

	pdf.SetFont("Helvetica", "B", 11)
	pdf.SetXY(marginLeft, w.y)
	pdf.CellFormat(80, 7, "Grand Total", "", 0, "L", false, 0, "")
	w.y += 8
	for _, item := range items {
		pdf.SetFont("Helvetica", "", 10)
		pdf.SetXY(marginLeft+5, w.y)
		pdf.CellFormat(40, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "R", false, 0, "")
		w.y += 6
	}

	payload, err := json.Marshal(qrPayload{
		ID:           w.doc.ID,
		Module:       string(w.doc.Module),
		Date:         w.doc.Date.Format("2006-01-02"),
		Entries:      t.Entries,
		Pieces:       t.Count,
		TotalMeasure: t.TotalMeasure.StringFixed(2),
		Unit:         unit,
		TotalAmount:  t.TotalAmount.StringFixed(2),
	})
	if err != nil {
		return fmt.Errorf("failed to marshal summary: %w", err)
	}
	png, err := qrcode.Encode(string(payload), qrcode.Medium, 256)
	if err != nil {
		return fmt.Errorf("failed to generate QR code: %w", err)
	}
	pdf.RegisterImageOptionsReader("summary_qr", fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(png))
	pdf.ImageOptions("summary_qr", pageWidth-marginRight-qrSize, top, qrSize, qrSize, false,
		fpdf.ImageOptions{ImageType: "PNG"}, 0, "")

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom+4)
	pdf.CellFormat(contentWidth, 4, "Generated by TimberCalc", "", 0, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)
	return nil
}
