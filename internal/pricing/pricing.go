// Package pricing computes the order total from the base price, the chosen
// delivery option and the optional insurance add-on. Arithmetic stays in
// exact decimals; rounding happens only at the presentation boundary.
package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"jamjam-delivery/internal/apperr"
	"jamjam-delivery/internal/domain"
)

var (
	two  = decimal.NewFromInt(2)
	one  = decimal.NewFromInt(1)
	half = decimal.New(5, -1)
)

// Multiplier returns the price multiplier for a delivery option:
// express x2, standard x1, economy x0.5.
func Multiplier(option domain.DeliveryOption) (decimal.Decimal, error) {
	switch option {
	case domain.OptionExpress:
		return two, nil
	case domain.OptionStandard:
		return one, nil
	case domain.OptionEconomy:
		return half, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: unknown delivery option %q", apperr.ErrValidation, option)
	}
}

// BaseFromAssignments sums the per-segment rate of every assigned rider.
func BaseFromAssignments(assignments []domain.RiderAssignment) decimal.Decimal {
	sum := decimal.Zero
	for _, a := range assignments {
		sum = sum.Add(a.Rider.PricePerSegment)
	}
	return sum
}

// Total computes base*multiplier + insurance. A negative insurance cost is
// rejected; zero means no insurance.
func Total(base decimal.Decimal, option domain.DeliveryOption, insurance decimal.Decimal) (decimal.Decimal, error) {
	if base.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative base price", apperr.ErrValidation)
	}
	if insurance.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: negative insurance cost", apperr.ErrValidation)
	}
	mult, err := Multiplier(option)
	if err != nil {
		return decimal.Zero, err
	}
	return base.Mul(mult).Add(insurance), nil
}

// Display formats an amount for presentation with two decimal places.
func Display(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}
