package ui

import (
	"fmt"
	"io"
	"strings"

	"github.com/piwi3910/timbercalc/internal/engine"
	"github.com/piwi3910/timbercalc/internal/model"
)

const rule = 78

func printEntries(w io.Writer, module model.Module, entries []model.Entry) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", rule))
	fmt.Fprintf(w, "  %s ENTRIES\n", strings.ToUpper(module.String()))
	fmt.Fprintln(w, strings.Repeat("=", rule))
	if len(entries) == 0 {
		fmt.Fprintln(w, "  No entries yet.")
		fmt.Fprintln(w, strings.Repeat("=", rule))
		return
	}
	unit := module.Unit()
	fmt.Fprintf(w, "  %-4s %-18s %-24s %6s %10s %10s %10s\n", "ID", "ITEM", "DIMENSIONS", "PCS", unit, "RATE", "AMOUNT")
	fmt.Fprintln(w, strings.Repeat("-", rule))
	for _, e := range entries {
		fmt.Fprintf(w, "  %-4d %-18s %-24s %6d %10s %10s %10s\n",
			e.ID, truncate(itemLabel(e), 18), truncate(e.Dimensions(), 24), e.Pieces(),
			e.TotalMeasure.StringFixed(2), rateText(e), amountText(e))
	}
	fmt.Fprintln(w, strings.Repeat("=", rule))
}

func printTotals(w io.Writer, module model.Module, t model.Totals) {
	fmt.Fprintf(w, "Totals: %d entries, %d pcs, %s %s, amount %s",
		t.Entries, t.Count, t.TotalMeasure.StringFixed(2), module.Unit(), t.TotalAmount.StringFixed(2))
	if t.Unpriced > 0 {
		fmt.Fprintf(w, " (%d not priced)", t.Unpriced)
	}
	fmt.Fprintln(w)
}

func printRates(w io.Writer, rates *engine.RateMemory) {
	if rates.Len() == 0 {
		fmt.Fprintln(w, "No remembered rates.")
		return
	}
	fmt.Fprintln(w, "Remembered rates:")
	for _, k := range rates.Keys() {
		rate, _ := rates.Recall(k)
		fmt.Fprintf(w, "  %-30s %s\n", k, rate.StringFixed(2))
	}
}

func printForm(w io.Writer, module model.Module, f model.Fields) {
	var parts []string
	for _, fd := range formFields(module) {
		if v := current(fd, f); v != "" {
			parts = append(parts, fd.key+"="+v)
		}
	}
	fmt.Fprintf(w, "Next: %s\n", strings.Join(parts, " "))
}

// PrintLanding writes a landing price breakdown in the order it is computed.
func PrintLanding(w io.Writer, b model.LandingBreakdown) {
	in := b.Input
	line := func(label, value string) {
		fmt.Fprintf(w, "  %-32s %15s\n", label, value)
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("=", 50))
	fmt.Fprintln(w, "  LANDING PRICE")
	fmt.Fprintln(w, strings.Repeat("=", 50))
	line("Cost", in.Cost.StringFixed(2))
	line("Tax %", in.TaxPercent.String())
	line("Freight", in.Freight.StringFixed(2))
	line("Top amount", in.TopAmount.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	line("Input tax credit", b.InputTaxCredit.StringFixed(2))
	line("Purchase bill amount", b.PurchaseBillAmount.StringFixed(2))
	line("Total input amount", b.TotalInputAmount.StringFixed(2))
	line("Less top (X)", b.X.StringFixed(2))
	line("With 10% profit (Z)", b.Z.StringFixed(2))
	line("Sale bill amount", b.SaleBillAmount.StringFixed(2))
	line("Output tax liability", b.OutputTaxLiability.StringFixed(2))
	line("Tax difference", b.TaxDifferenceAmount.StringFixed(2))
	fmt.Fprintln(w, strings.Repeat("-", 50))
	line("TOTAL LANDING AMOUNT", b.TotalLandingAmount.StringFixed(2))
	if b.HasPerUnit {
		line(fmt.Sprintf("Per unit landing (qty %d)", in.Quantity), b.PerUnitLandingAmount.StringFixed(2))
		line("Per unit sale bill", b.PerUnitSaleBillAmount.StringFixed(2))
	}
	fmt.Fprintln(w, strings.Repeat("=", 50))
}

func itemLabel(e model.Entry) string {
	if e.Module == model.ModuleBeading {
		label := e.Fields.SizeLabel
		if e.Fields.Grade != "" {
			label += " " + e.Fields.Grade
		}
		if label != "" {
			return label
		}
	}
	return e.Fields.Description
}

func rateText(e model.Entry) string {
	if !e.Priced() {
		return "-"
	}
	return e.Fields.Rate.Decimal.StringFixed(2)
}

func amountText(e model.Entry) string {
	if !e.Priced() {
		return "not priced"
	}
	return e.Amount.StringFixed(2)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "~"
}
