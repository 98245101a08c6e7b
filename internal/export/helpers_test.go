package export

import (
	"testing"
	"time"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/piwi3910/timbercalc/internal/report"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func beadingDoc(t *testing.T, customer string) report.Document {
	t.Helper()
	fields := []model.Fields{
		{SizeLabel: "2x1", Grade: "1st Grade", LengthFt: dec("12"), Quantity: 3, Bundle: 2, Rate: decimal.NewNullDecimal(dec("5"))},
		{SizeLabel: "1x1", Grade: "2nd Grade", LengthFt: dec("10"), Quantity: 4},
		{SizeLabel: "2x1", Grade: "", LengthFt: dec("8"), Quantity: 1, Rate: decimal.NewNullDecimal(dec("4.5"))},
	}
	var entries []model.Entry
	for i, f := range fields {
		e, err := model.NewEntry(int64(i+1), model.ModuleBeading, f)
		require.NoError(t, err)
		entries = append(entries, e)
	}
	return report.Build(model.ModuleBeading, entries, report.Options{
		ID:           "ab12cd34",
		CustomerName: customer,
		Date:         time.Date(2026, 10, 18, 0, 0, 0, 0, time.UTC),
	})
}

func sawnDoc(t *testing.T) report.Document {
	t.Helper()
	e, err := model.NewEntry(1, model.ModuleSawnWood, model.Fields{
		Description: "Teak plank",
		LengthFt:    dec("10"), WidthIn: dec("12"), ThicknessIn: dec("2"),
		Quantity: 5, Rate: decimal.NewNullDecimal(dec("100")),
	})
	require.NoError(t, err)
	return report.Build(model.ModuleSawnWood, []model.Entry{e}, report.Options{ID: "0000aaaa"})
}
