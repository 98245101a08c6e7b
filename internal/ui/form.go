// Package ui is the terminal front end: a line-oriented form over an
// engine.Workspace with slash commands for editing, totals and export.
package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/shopspring/decimal"
)

// field describes one form input.
type field struct {
	key    string   // Canonical key used in "key=value" arguments
	alias  []string // Accepted short forms
	prompt string
}

var (
	fieldDesc      = field{"desc", []string{"d", "description"}, "Description"}
	fieldLength    = field{"length", []string{"l", "len"}, "Length (ft)"}
	fieldWidth     = field{"width", []string{"w"}, "Width (in)"}
	fieldThickness = field{"thickness", []string{"t", "thick"}, "Thickness (in)"}
	fieldGirth     = field{"girth", []string{"g"}, "Girth (in)"}
	fieldSize      = field{"size", []string{"s"}, "Size"}
	fieldGrade     = field{"grade", []string{"gr"}, "Grade"}
	fieldQty       = field{"qty", []string{"q", "quantity"}, "Quantity"}
	fieldBundle    = field{"bundle", []string{"b"}, "Bundle"}
	fieldRate      = field{"rate", []string{"r", "price"}, "Rate"}
)

// formFields returns the inputs of a module in form order.
func formFields(module model.Module) []field {
	switch module {
	case model.ModuleRoundLog:
		return []field{fieldDesc, fieldLength, fieldGirth, fieldQty, fieldRate}
	case model.ModuleBeading:
		return []field{fieldSize, fieldGrade, fieldDesc, fieldLength, fieldQty, fieldBundle, fieldRate}
	default:
		return []field{fieldDesc, fieldLength, fieldWidth, fieldThickness, fieldQty, fieldRate}
	}
}

func lookupField(module model.Module, key string) (field, bool) {
	key = strings.ToLower(key)
	for _, f := range formFields(module) {
		if f.key == key {
			return f, true
		}
		for _, a := range f.alias {
			if a == key {
				return f, true
			}
		}
	}
	return field{}, false
}

// current returns the display value of f in fields.
func current(f field, fields model.Fields) string {
	switch f.key {
	case fieldDesc.key:
		return fields.Description
	case fieldLength.key:
		return decimalText(fields.LengthFt)
	case fieldWidth.key:
		return decimalText(fields.WidthIn)
	case fieldThickness.key:
		return decimalText(fields.ThicknessIn)
	case fieldGirth.key:
		return decimalText(fields.GirthIn)
	case fieldSize.key:
		return fields.SizeLabel
	case fieldGrade.key:
		return fields.Grade
	case fieldQty.key:
		if fields.Quantity == 0 {
			return ""
		}
		return strconv.Itoa(fields.Quantity)
	case fieldBundle.key:
		if fields.Bundle == 0 {
			return ""
		}
		return strconv.Itoa(fields.Bundle)
	case fieldRate.key:
		if !fields.Rate.Valid {
			return ""
		}
		return fields.Rate.Decimal.String()
	}
	return ""
}

func decimalText(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

// set parses value into the field f of fields. A rate of "-" or "none"
// clears it.
func set(fields *model.Fields, f field, value string) error {
	value = strings.TrimSpace(value)
	switch f.key {
	case fieldDesc.key:
		fields.Description = value
		return nil
	case fieldSize.key:
		fields.SizeLabel = value
		return nil
	case fieldGrade.key:
		fields.Grade = value
		return nil
	case fieldQty.key, fieldBundle.key:
		n := 0
		if value != "" {
			v, err := strconv.Atoi(value)
			if err != nil {
				return fmt.Errorf("%s must be a whole number", f.prompt)
			}
			n = v
		}
		if f.key == fieldQty.key {
			fields.Quantity = n
		} else {
			fields.Bundle = n
		}
		return nil
	case fieldRate.key:
		switch strings.ToLower(value) {
		case "", "-", "none":
			fields.Rate = decimal.NullDecimal{}
			return nil
		}
		d, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s must be a number", f.prompt)
		}
		fields.Rate = decimal.NewNullDecimal(d)
		return nil
	}

	d := decimal.Zero
	if value != "" {
		v, err := decimal.NewFromString(value)
		if err != nil {
			return fmt.Errorf("%s must be a number", f.prompt)
		}
		d = v
	}
	switch f.key {
	case fieldLength.key:
		fields.LengthFt = d
	case fieldWidth.key:
		fields.WidthIn = d
	case fieldThickness.key:
		fields.ThicknessIn = d
	case fieldGirth.key:
		fields.GirthIn = d
	}
	return nil
}

// ParseAssignments applies "key=value" arguments to base and returns the
// result. The second return value reports whether a rate was given
// explicitly.
func ParseAssignments(module model.Module, base model.Fields, args []string) (model.Fields, bool, error) {
	fields := base
	rateSet := false
	for _, arg := range args {
		key, value, ok := strings.Cut(arg, "=")
		if !ok {
			return model.Fields{}, false, fmt.Errorf("expected key=value, got %q", arg)
		}
		f, ok := lookupField(module, key)
		if !ok {
			return model.Fields{}, false, fmt.Errorf("unknown field %q for %s", key, module)
		}
		if err := set(&fields, f, value); err != nil {
			return model.Fields{}, false, err
		}
		if f.key == fieldRate.key {
			rateSet = true
		}
	}
	return fields, rateSet, nil
}

// SplitArgs splits a command line on spaces, keeping double-quoted text
// together with the quotes removed.
func SplitArgs(line string) []string {
	var (
		args    []string
		b       strings.Builder
		quoted  bool
		pending bool
	)
	for _, r := range line {
		switch {
		case r == '"':
			quoted = !quoted
			pending = true
		case r == ' ' || r == '\t':
			if quoted {
				b.WriteRune(r)
				continue
			}
			if pending {
				args = append(args, b.String())
				b.Reset()
				pending = false
			}
		default:
			b.WriteRune(r)
			pending = true
		}
	}
	if pending {
		args = append(args, b.String())
	}
	return args
}
