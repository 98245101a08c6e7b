package engine

import (
	"sort"
	"strings"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/shopspring/decimal"
)

// RateKey identifies a remembered rate. The zero key is the single global
// slot used by the sawn wood and round log modules.
type RateKey struct {
	SizeLabel string
	Grade     string
}

func (k RateKey) String() string {
	if k == (RateKey{}) {
		return "(all)"
	}
	if k.Grade == "" {
		return k.SizeLabel
	}
	return k.SizeLabel + " / " + k.Grade
}

// KeyFor returns the rate key an entry's fields map to in the given module.
func KeyFor(module model.Module, f model.Fields) RateKey {
	if module != model.ModuleBeading {
		return RateKey{}
	}
	return RateKey{
		SizeLabel: strings.TrimSpace(f.SizeLabel),
		Grade:     strings.TrimSpace(f.Grade),
	}
}

// RateMemory remembers the last rate used per key so a new blank entry can
// be pre-filled. It only grows or overwrites.
type RateMemory struct {
	rates map[RateKey]decimal.Decimal
}

// NewRateMemory creates an empty rate memory.
func NewRateMemory() *RateMemory {
	return &RateMemory{rates: make(map[RateKey]decimal.Decimal)}
}

// Remember stores rate for key, replacing any previous value.
func (m *RateMemory) Remember(key RateKey, rate decimal.Decimal) {
	m.rates[key] = rate
}

// Recall returns the remembered rate for key.
func (m *RateMemory) Recall(key RateKey) (decimal.Decimal, bool) {
	rate, ok := m.rates[key]
	return rate, ok
}

// Len returns the number of remembered keys.
func (m *RateMemory) Len() int {
	return len(m.rates)
}

// Keys returns the remembered keys sorted by size label then grade.
func (m *RateMemory) Keys() []RateKey {
	keys := make([]RateKey, 0, len(m.rates))
	for k := range m.rates {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].SizeLabel != keys[j].SizeLabel {
			return keys[i].SizeLabel < keys[j].SizeLabel
		}
		return keys[i].Grade < keys[j].Grade
	})
	return keys
}
