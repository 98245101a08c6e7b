package model

import "github.com/shopspring/decimal"

// Business constants. These are literal trade constants, not derived values.
var (
	// cubicInchesPerBoardCFT converts ft x in x in to cubic feet (12 x 12).
	cubicInchesPerBoardCFT = decimal.NewFromInt(144)

	// hoppusDivisor combines the quarter-girth factor (4² = 16) with the
	// square-inch to square-foot conversion (144): 16 x 144 = 2304.
	hoppusDivisor = decimal.NewFromInt(2304)

	// minimumProfitMarkup is the fixed 10% markup applied to landed cost.
	minimumProfitMarkup = decimal.RequireFromString("1.10")

	hundred = decimal.NewFromInt(100)
)

// SawnWoodCFT returns the cubic feet of one rectangular board.
// Length is in feet, width and thickness in inches.
func SawnWoodCFT(lengthFt, widthIn, thicknessIn decimal.Decimal) decimal.Decimal {
	return lengthFt.Mul(widthIn).Mul(thicknessIn).Div(cubicInchesPerBoardCFT)
}

// RoundLogCFT returns the Hoppus (quarter-girth) volume of one log in cubic feet.
// Length is in feet, girth in inches.
func RoundLogCFT(lengthFt, girthIn decimal.Decimal) decimal.Decimal {
	return girthIn.Mul(girthIn).Mul(lengthFt).Div(hoppusDivisor)
}

// BeadingTotalLength returns the running feet of a beading/patti line.
// A bundle of zero is treated as a single piece per bundle.
func BeadingTotalLength(lengthFt decimal.Decimal, quantity, bundle int) decimal.Decimal {
	if bundle == 0 {
		bundle = 1
	}
	return lengthFt.Mul(decimal.NewFromInt(int64(quantity))).Mul(decimal.NewFromInt(int64(bundle)))
}

// EntryAmount prices a total measure. A missing rate yields zero.
func EntryAmount(totalMeasure decimal.Decimal, rate decimal.NullDecimal) decimal.Decimal {
	if !rate.Valid {
		return decimal.Zero
	}
	return totalMeasure.Mul(rate.Decimal)
}
