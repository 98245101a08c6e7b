package engine

import "github.com/piwi3910/timbercalc/internal/model"

// Totals computes count, total measure and total amount over entries from
// scratch. Unpriced entries count toward pieces and measure but add nothing
// to the amount. An empty slice yields all-zero totals.
func Totals(entries []model.Entry) model.Totals {
	var t model.Totals
	for _, e := range entries {
		t = t.AddEntry(e)
	}
	return t
}
