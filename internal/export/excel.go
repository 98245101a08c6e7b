package export

import (
	"bytes"
	"fmt"
	"os"

	"github.com/piwi3910/timbercalc/internal/report"
	"github.com/xuri/excelize/v2"
)

// GenerateExcel renders doc as an Excel workbook and returns the file bytes.
// The sheet mirrors the PDF layout: grade and size bands, rows, subtotals and
// a grand total block.
func GenerateExcel(doc report.Document, company string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := doc.Module.FileStem()
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		return nil, fmt.Errorf("set sheet name: %w", err)
	}

	cols := columnsFor(doc.Module)
	lastCol, err := excelize.ColumnNumberToName(len(cols))
	if err != nil {
		return nil, fmt.Errorf("column name: %w", err)
	}
	for i, c := range cols {
		name, _ := excelize.ColumnNumberToName(i + 1)
		if err := f.SetColWidth(sheet, name, name, c.width/2+2); err != nil {
			return nil, fmt.Errorf("set col width %s: %w", name, err)
		}
	}

	styles, err := newExcelStyles(f)
	if err != nil {
		return nil, err
	}

	row := 1
	cell := func(col, r int) string {
		name, _ := excelize.CoordinatesToCellName(col, r)
		return name
	}
	band := func(text string, style int) error {
		if err := f.SetCellValue(sheet, cell(1, row), text); err != nil {
			return err
		}
		if err := f.MergeCell(sheet, cell(1, row), fmt.Sprintf("%s%d", lastCol, row)); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell(1, row), fmt.Sprintf("%s%d", lastCol, row), style); err != nil {
			return err
		}
		row++
		return nil
	}

	if company != "" {
		if err := band(company, styles.title); err != nil {
			return nil, fmt.Errorf("write company: %w", err)
		}
	}
	if err := band(doc.Title, styles.title); err != nil {
		return nil, fmt.Errorf("write title: %w", err)
	}
	meta := ""
	if doc.CustomerName != "" {
		meta = "Customer / Product: " + doc.CustomerName + "   "
	}
	if !doc.Date.IsZero() {
		meta += "Date: " + doc.Date.Format("02 Jan 2006") + "   "
	}
	if doc.ID != "" {
		meta += "Ref: " + doc.ID
	}
	if err := band(meta, styles.plain); err != nil {
		return nil, fmt.Errorf("write metadata: %w", err)
	}
	row++

	for i, c := range cols {
		if err := f.SetCellValue(sheet, cell(i+1, row), c.header); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}
	if err := f.SetCellStyle(sheet, cell(1, row), fmt.Sprintf("%s%d", lastCol, row), styles.header); err != nil {
		return nil, fmt.Errorf("style header: %w", err)
	}
	row++

	unit := doc.Module.Unit()
	for _, sec := range doc.Sections {
		if sec.Label != "" {
			if err := band(sec.Label, styles.grade); err != nil {
				return nil, fmt.Errorf("write grade: %w", err)
			}
		}
		for _, g := range sec.Groups {
			if g.Label != "" {
				if err := band("Size: "+g.Label, styles.size); err != nil {
					return nil, fmt.Errorf("write size: %w", err)
				}
			}
			for _, r := range g.Rows {
				for i, c := range cols {
					if err := f.SetCellValue(sheet, cell(i+1, row), c.value(r)); err != nil {
						return nil, fmt.Errorf("write row %d: %w", r.SerialNo, err)
					}
				}
				row++
			}
			if g.Label != "" {
				if err := band(totalsLine("Subtotal "+g.Label, g.Subtotal, unit), styles.subtotal); err != nil {
					return nil, fmt.Errorf("write subtotal: %w", err)
				}
			}
		}
		if sec.Label != "" {
			if err := band(totalsLine(sec.Label+" total", sec.Subtotal, unit), styles.subtotal); err != nil {
				return nil, fmt.Errorf("write grade total: %w", err)
			}
		}
	}

	row++
	if err := band(totalsLine("Grand total", doc.GrandTotal, unit), styles.grand); err != nil {
		return nil, fmt.Errorf("write grand total: %w", err)
	}
	if doc.GrandTotal.Unpriced > 0 {
		if err := band(fmt.Sprintf("%d entries not priced", doc.GrandTotal.Unpriced), styles.plain); err != nil {
			return nil, fmt.Errorf("write unpriced note: %w", err)
		}
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("write workbook: %w", err)
	}
	return buf.Bytes(), nil
}

// ExportExcel renders doc to an .xlsx file at path.
func ExportExcel(path string, doc report.Document, company string) error {
	data, err := GenerateExcel(doc, company)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

type excelStyles struct {
	title, plain, header, grade, size, subtotal, grand int
}

func newExcelStyles(f *excelize.File) (excelStyles, error) {
	var s excelStyles
	defs := []struct {
		dst   *int
		style *excelize.Style
	}{
		{&s.title, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 14},
			Alignment: &excelize.Alignment{Horizontal: "center"},
		}},
		{&s.plain, &excelize.Style{Font: &excelize.Font{Size: 10}}},
		{&s.header, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Color: "#FFFFFF", Size: 10},
			Fill:      excelize.Fill{Type: "pattern", Color: []string{"#333333"}, Pattern: 1},
			Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		}},
		{&s.grade, &excelize.Style{
			Font: &excelize.Font{Bold: true, Size: 11},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#C8DCC8"}, Pattern: 1},
		}},
		{&s.size, &excelize.Style{
			Font: &excelize.Font{Italic: true, Size: 10},
			Fill: excelize.Fill{Type: "pattern", Color: []string{"#F0F0E1"}, Pattern: 1},
		}},
		{&s.subtotal, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 10},
			Alignment: &excelize.Alignment{Horizontal: "right"},
		}},
		{&s.grand, &excelize.Style{
			Font:      &excelize.Font{Bold: true, Size: 12},
			Alignment: &excelize.Alignment{Horizontal: "right"},
			Border: []excelize.Border{
				{Type: "top", Color: "#000000", Style: 2},
			},
		}},
	}
	for _, d := range defs {
		id, err := f.NewStyle(d.style)
		if err != nil {
			return excelStyles{}, fmt.Errorf("create style: %w", err)
		}
		*d.dst = id
	}
	return s, nil
}
