package engine

import (
	"github.com/piwi3910/timbercalc/internal/model"
	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func rate(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(dec(s))
}

func sawn(length, width, thickness string, qty int) model.Fields {
	return model.Fields{LengthFt: dec(length), WidthIn: dec(width), ThicknessIn: dec(thickness), Quantity: qty}
}

func beading(size, grade, length string, qty int) model.Fields {
	return model.Fields{SizeLabel: size, Grade: grade, LengthFt: dec(length), Quantity: qty}
}
