package model

import "github.com/shopspring/decimal"

// Totals is a running summary over a set of entries.
type Totals struct {
	Entries      int             `json:"entries"`       // Number of entry lines
	Count        int             `json:"count"`         // Pieces: quantity (x bundle for beading)
	TotalMeasure decimal.Decimal `json:"total_measure"` // CFT or RFT
	TotalAmount  decimal.Decimal `json:"total_amount"`
	Unpriced     int             `json:"unpriced"` // Entry lines without a rate
}

// Add returns the element-wise sum of two totals.
func (t Totals) Add(o Totals) Totals {
	return Totals{
		Entries:      t.Entries + o.Entries,
		Count:        t.Count + o.Count,
		TotalMeasure: t.TotalMeasure.Add(o.TotalMeasure),
		TotalAmount:  t.TotalAmount.Add(o.TotalAmount),
		Unpriced:     t.Unpriced + o.Unpriced,
	}
}

// AddEntry returns t with a single entry accumulated into it.
func (t Totals) AddEntry(e Entry) Totals {
	t.Entries++
	t.Count += e.Pieces()
	t.TotalMeasure = t.TotalMeasure.Add(e.TotalMeasure)
	t.TotalAmount = t.TotalAmount.Add(e.Amount)
	if !e.Priced() {
		t.Unpriced++
	}
	return t
}

// IsZero reports whether nothing has been accumulated.
func (t Totals) IsZero() bool {
	return t.Entries == 0 && t.Count == 0 && t.TotalMeasure.IsZero() && t.TotalAmount.IsZero()
}
