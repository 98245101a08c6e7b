package export

import (
	"strconv"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/report"
)

// notPriced is printed in the rate column of entries without a rate.
const notPriced = "Not priced"

// column describes one table column shared by the PDF and Excel renderers.
type column struct {
	header string
	width  float64 // mm in PDF; Excel uses width/2 as character width
	align  string  // fpdf alignment: "L", "C" or "R"
	value  func(r report.Row) string
}

var (
	colSerial = column{"S.No", 10, "C", func(r report.Row) string { return strconv.Itoa(r.SerialNo) }}
	colQty    = column{"Qty", 12, "R", func(r report.Row) string { return strconv.Itoa(r.Entry.Fields.Quantity) }}
	colLength = column{"L (ft)", 16, "R", func(r report.Row) string { return r.Entry.Fields.LengthFt.String() }}
	colRate   = column{"Rate", 20, "R", func(r report.Row) string { return formatRate(r.Entry) }}
	colAmount = column{"Amount", 22, "R", func(r report.Row) string { return formatAmount(r.Entry) }}
)

// columnsFor returns the table layout of a module. Widths add up to the
// printable width of an A4 portrait page.
func columnsFor(module model.Module) []column {
	switch module {
	case model.ModuleRoundLog:
		return []column{
			colSerial,
			{"Description", 44, "L", func(r report.Row) string { return r.Entry.Fields.Description }},
			withWidth(colLength, 18),
			{"Girth (in)", 18, "R", func(r report.Row) string { return r.Entry.Fields.GirthIn.String() }},
			withWidth(colQty, 14),
			{"CFT/pc", 20, "R", func(r report.Row) string { return r.Entry.Measure.StringFixed(3) }},
			{"Total CFT", 20, "R", func(r report.Row) string { return r.Entry.TotalMeasure.StringFixed(2) }},
			colRate,
			colAmount,
		}
	case model.ModuleBeading:
		return []column{
			colSerial,
			{"Description", 40, "L", func(r report.Row) string { return r.Entry.Fields.Description }},
			withWidth(colLength, 18),
			withWidth(colQty, 14),
			{"Bundle", 16, "R", func(r report.Row) string { return strconv.Itoa(r.Entry.Fields.BundleSize()) }},
			{"Pieces", 16, "R", func(r report.Row) string { return strconv.Itoa(r.Entry.Pieces()) }},
			{"Total RFT", 22, "R", func(r report.Row) string { return r.Entry.TotalMeasure.StringFixed(2) }},
			withWidth(colRate, 24),
			withWidth(colAmount, 26),
		}
	default:
		return []column{
			colSerial,
			{"Description", 36, "L", func(r report.Row) string { return r.Entry.Fields.Description }},
			colLength,
			{"W (in)", 16, "R", func(r report.Row) string { return r.Entry.Fields.WidthIn.String() }},
			{"T (in)", 16, "R", func(r report.Row) string { return r.Entry.Fields.ThicknessIn.String() }},
			colQty,
			{"CFT/pc", 18, "R", func(r report.Row) string { return r.Entry.Measure.StringFixed(3) }},
			{"Total CFT", 20, "R", func(r report.Row) string { return r.Entry.TotalMeasure.StringFixed(2) }},
			colRate,
			colAmount,
		}
	}
}

func withWidth(c column, w float64) column {
	c.width = w
	return c
}

func formatRate(e model.Entry) string {
	if !e.Priced() {
		return notPriced
	}
	return e.Fields.Rate.Decimal.StringFixed(2)
}

func formatAmount(e model.Entry) string {
	if !e.Priced() {
		return "-"
	}
	return e.Amount.StringFixed(2)
}

// totalsLine renders a subtotal or grand total as a single line of text.
func totalsLine(label string, t model.Totals, unit string) string {
	return label + ": " + strconv.Itoa(t.Count) + " pcs | " +
		t.TotalMeasure.StringFixed(2) + " " + unit + " | Amount " + t.TotalAmount.StringFixed(2)
}
