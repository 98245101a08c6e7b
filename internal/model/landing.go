package model

import "github.com/shopspring/decimal"

// LandingInput holds the purchase-side figures for a landing price calculation.
type LandingInput struct {
	Cost       decimal.Decimal `json:"cost"`        // Purchase cost before tax
	TaxPercent decimal.Decimal `json:"tax_percent"` // GST rate, e.g. 18 for 18%
	Freight    decimal.Decimal `json:"freight"`
	TopAmount  decimal.Decimal `json:"top_amount"` // Loading/top charges paid outside the bill
	Quantity   int             `json:"quantity"`   // Optional, enables per-unit figures
}

// LandingBreakdown exposes every intermediate value of the landing price chain
// because reports print the full breakdown, not just the total.
type LandingBreakdown struct {
	Input LandingInput `json:"input"`

	InputTaxCredit      decimal.Decimal `json:"input_tax_credit"`
	PurchaseBillAmount  decimal.Decimal `json:"purchase_bill_amount"`
	TotalInputAmount    decimal.Decimal `json:"total_input_amount"`
	X                   decimal.Decimal `json:"x"` // Total input less top amount
	Z                   decimal.Decimal `json:"z"` // X with the minimum profit markup
	SaleBillAmount      decimal.Decimal `json:"sale_bill_amount"`
	OutputTaxLiability  decimal.Decimal `json:"output_tax_liability"`
	TaxDifferenceAmount decimal.Decimal `json:"tax_difference_amount"`
	TotalLandingAmount  decimal.Decimal `json:"total_landing_amount"`

	HasPerUnit            bool            `json:"has_per_unit"`
	PerUnitLandingAmount  decimal.Decimal `json:"per_unit_landing_amount"`
	PerUnitSaleBillAmount decimal.Decimal `json:"per_unit_sale_bill_amount"`
}

// ValidateLandingInput returns the first invalid landing field, if any.
func ValidateLandingInput(in LandingInput) error {
	switch {
	case in.Cost.IsNegative():
		return invalid("cost", "Cost cannot be negative")
	case in.TaxPercent.IsNegative():
		return invalid("tax_percent", "Tax percent cannot be negative")
	case in.Freight.IsNegative():
		return invalid("freight", "Freight cannot be negative")
	case in.TopAmount.IsNegative():
		return invalid("top_amount", "Top amount cannot be negative")
	case in.Quantity < 0:
		return invalid("quantity", "Quantity cannot be negative")
	}
	return nil
}

// CalculateLandingPrice runs the landing price chain. Each step depends on the
// previous one, so the order below is significant.
func CalculateLandingPrice(in LandingInput) LandingBreakdown {
	b := LandingBreakdown{Input: in}

	b.InputTaxCredit = in.Cost.Mul(in.TaxPercent).Div(hundred)
	b.PurchaseBillAmount = in.Cost.Add(b.InputTaxCredit)
	b.TotalInputAmount = b.PurchaseBillAmount.Add(in.Freight).Add(in.TopAmount)
	b.X = b.TotalInputAmount.Sub(in.TopAmount)
	b.Z = b.X.Mul(minimumProfitMarkup)

	// Back out the pre-tax sale price from the tax-inclusive target.
	b.SaleBillAmount = b.Z.Div(decimal.NewFromInt(1).Add(in.TaxPercent.Div(hundred)))
	b.OutputTaxLiability = b.SaleBillAmount.Mul(in.TaxPercent).Div(hundred)
	b.TaxDifferenceAmount = b.OutputTaxLiability.Sub(b.InputTaxCredit)
	b.TotalLandingAmount = b.TotalInputAmount.Add(b.TaxDifferenceAmount)

	if in.Quantity > 0 {
		qty := decimal.NewFromInt(int64(in.Quantity))
		b.HasPerUnit = true
		b.PerUnitLandingAmount = b.TotalLandingAmount.Div(qty)
		b.PerUnitSaleBillAmount = b.SaleBillAmount.Div(qty)
	}
	return b
}
