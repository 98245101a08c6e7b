package report

import (
	"regexp"

	"github.com/shopspring/decimal"
)

var numberToken = regexp.MustCompile(`\d+(?:\.\d+)?`)

// SizeDims are the first two numbers found in a size label.
type SizeDims struct {
	Primary   decimal.Decimal
	Secondary decimal.Decimal
}

// ParseSize extracts the first two numeric tokens from a free-text size
// label, ignoring units and other text. Missing tokens are zero.
//
//	"2x1 in"       -> (2, 1)
//	"1.5 X 0.75"   -> (1.5, 0.75)
//	"4 inch patti" -> (4, 0)
func ParseSize(label string) SizeDims {
	var d SizeDims
	tokens := numberToken.FindAllString(label, 2)
	if len(tokens) > 0 {
		d.Primary, _ = decimal.NewFromString(tokens[0])
	}
	if len(tokens) > 1 {
		d.Secondary, _ = decimal.NewFromString(tokens[1])
	}
	return d
}

// Compare orders by primary then secondary dimension.
func (d SizeDims) Compare(o SizeDims) int {
	if c := d.Primary.Cmp(o.Primary); c != 0 {
		return c
	}
	return d.Secondary.Cmp(o.Secondary)
}
