package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Fields holds the raw, user-entered values of an entry. Which fields are
// meaningful depends on the module:
//
//	Sawn Wood:     LengthFt, WidthIn, ThicknessIn
//	Round Log:     LengthFt, GirthIn
//	Beading/Patti: SizeLabel, Grade, LengthFt, Bundle
//
// Quantity, Rate and Description apply to every module.
type Fields struct {
	LengthFt    decimal.Decimal     `json:"length_ft"`
	WidthIn     decimal.Decimal     `json:"width_in"`
	ThicknessIn decimal.Decimal     `json:"thickness_in"`
	GirthIn     decimal.Decimal     `json:"girth_in"`
	SizeLabel   string              `json:"size_label,omitempty"` // Free text, e.g. "2x1 in"
	Grade       string              `json:"grade,omitempty"`      // Empty means unspecified
	Bundle      int                 `json:"bundle,omitempty"`     // Pieces per bundle, 0 = 1
	Quantity    int                 `json:"quantity"`
	Rate        decimal.NullDecimal `json:"rate"` // Invalid means "not priced"
	Description string              `json:"description,omitempty"`
}

// BundleSize returns the effective pieces per bundle.
func (f Fields) BundleSize() int {
	if f.Bundle == 0 {
		return 1
	}
	return f.Bundle
}

// WithRate returns a copy of f with the given rate set.
func (f Fields) WithRate(rate decimal.Decimal) Fields {
	f.Rate = decimal.NewNullDecimal(rate)
	return f
}

// Entry is one committed line of a calculation module. Derived values are
// computed by NewEntry from Fields and are never set directly.
type Entry struct {
	ID           int64           `json:"id"`
	Module       Module          `json:"module"`
	Fields       Fields          `json:"fields"`
	Measure      decimal.Decimal `json:"measure"`       // Per piece: CFT, or RFT for beading
	TotalMeasure decimal.Decimal `json:"total_measure"` // Measure across all pieces
	Amount       decimal.Decimal `json:"amount"`        // TotalMeasure x rate, zero when not priced
}

// NewEntry validates fields for the module and builds an entry with all
// derived values computed from scratch. Validation stops at the first
// violated constraint and returns it as an *InvalidEntryError.
func NewEntry(id int64, module Module, fields Fields) (Entry, error) {
	fields.SizeLabel = strings.TrimSpace(fields.SizeLabel)
	fields.Grade = strings.TrimSpace(fields.Grade)
	fields.Description = strings.TrimSpace(fields.Description)

	if err := Validate(module, fields); err != nil {
		return Entry{}, err
	}

	e := Entry{ID: id, Module: module, Fields: fields}
	qty := decimal.NewFromInt(int64(fields.Quantity))

	switch module {
	case ModuleSawnWood:
		e.Measure = SawnWoodCFT(fields.LengthFt, fields.WidthIn, fields.ThicknessIn)
		e.TotalMeasure = e.Measure.Mul(qty)
	case ModuleRoundLog:
		e.Measure = RoundLogCFT(fields.LengthFt, fields.GirthIn)
		e.TotalMeasure = e.Measure.Mul(qty)
	case ModuleBeading:
		e.Measure = fields.LengthFt
		e.TotalMeasure = BeadingTotalLength(fields.LengthFt, fields.Quantity, fields.BundleSize())
	}
	e.Amount = EntryAmount(e.TotalMeasure, fields.Rate)
	return e, nil
}

// Validate checks fields against the module's constraints in field order and
// returns the first failure.
func Validate(module Module, f Fields) error {
	if !module.Valid() {
		return invalid("module", fmt.Sprintf("Unknown module %q", string(module)))
	}

	if !f.LengthFt.IsPositive() {
		return invalid("length", "Length must be greater than 0")
	}
	switch module {
	case ModuleSawnWood:
		if !f.WidthIn.IsPositive() {
			return invalid("width", "Width must be greater than 0")
		}
		if !f.ThicknessIn.IsPositive() {
			return invalid("thickness", "Thickness must be greater than 0")
		}
	case ModuleRoundLog:
		if !f.GirthIn.IsPositive() {
			return invalid("girth", "Girth must be greater than 0")
		}
	}

	if f.Quantity <= 0 {
		return invalid("quantity", "Quantity must be a whole number greater than 0")
	}
	if module == ModuleBeading && f.Bundle < 0 {
		return invalid("bundle", "Bundle must be greater than 0")
	}
	if f.Rate.Valid && f.Rate.Decimal.IsNegative() {
		return invalid("rate", "Rate cannot be negative")
	}
	return nil
}

// Priced reports whether the entry carries a rate. An unpriced entry has a
// zero amount but is distinct from a priced entry whose amount is zero.
func (e Entry) Priced() bool {
	return e.Fields.Rate.Valid
}

// Pieces returns the number of physical pieces the entry represents.
func (e Entry) Pieces() int {
	if e.Module == ModuleBeading {
		return e.Fields.Quantity * e.Fields.BundleSize()
	}
	return e.Fields.Quantity
}

// Dimensions returns a compact human-readable description of the raw fields.
func (e Entry) Dimensions() string {
	f := e.Fields
	switch e.Module {
	case ModuleSawnWood:
		return fmt.Sprintf("%s ft x %s in x %s in", f.LengthFt, f.WidthIn, f.ThicknessIn)
	case ModuleRoundLog:
		return fmt.Sprintf("%s ft, girth %s in", f.LengthFt, f.GirthIn)
	case ModuleBeading:
		if f.BundleSize() > 1 {
			return fmt.Sprintf("%s ft x %d/bundle", f.LengthFt, f.BundleSize())
		}
		return fmt.Sprintf("%s ft", f.LengthFt)
	default:
		return ""
	}
}
