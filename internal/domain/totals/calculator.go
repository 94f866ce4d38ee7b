// Package totals derives document amounts from line items.
//
// Every function here is pure: the same input always yields the same output and nothing is
// read from or written to the outside world. All arithmetic runs on shopspring decimals and
// every derived value is rounded half-up to two places.
package totals

import (
	"fmt"
	"strings"

	"findoc_service/internal/domain/entities"

	"github.com/shopspring/decimal"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
)

// Input is the calculator input for one document.
type Input struct {
	Items          []entities.LineItemInput
	TaxPercentage  decimal.Decimal
	DiscountAmount decimal.Decimal
	// ItemsField names the item list in validation errors ("cost_breakdown", "line_items").
	ItemsField string
}

// Result is the fully recomputed document breakdown.
type Result struct {
	Items []entities.LineItem
	entities.Totals
}

// Round2 rounds half-up to two decimal places. Inputs are never negative here, so
// decimal's half-away-from-zero rounding is half-up.
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// Calculate validates the input and recomputes every derived amount from scratch.
func Calculate(in Input) (Result, error) {
	field := in.ItemsField
	if field == "" {
		field = "items"
	}

	v := &entities.ValidationError{}
	if len(in.Items) == 0 {
		v.Add(field, "at least one line item is required")
	}
	if in.TaxPercentage.IsNegative() || in.TaxPercentage.GreaterThan(hundred) {
		v.Add("tax_percentage", "must be between 0 and 100")
	}
	if in.DiscountAmount.IsNegative() {
		v.Add("discount_amount", "must be zero or positive")
	}

	items := make([]entities.LineItem, 0, len(in.Items))
	subtotal := decimal.Zero
	for i, it := range in.Items {
		prefix := fmt.Sprintf("%s[%d]", field, i)
		qty := one
		if it.Quantity != nil {
			qty = *it.Quantity
		}
		ok := true
		if strings.TrimSpace(it.Name) == "" {
			v.Add(prefix+".name", "is required")
			ok = false
		}
		if !qty.IsPositive() {
			v.Add(prefix+".quantity", "must be greater than 0")
			ok = false
		}
		if it.Rate.IsNegative() {
			v.Add(prefix+".rate", "must be zero or positive")
			ok = false
		}
		if !ok {
			continue
		}
		amount := Round2(qty.Mul(it.Rate))
		subtotal = subtotal.Add(amount)
		items = append(items, entities.LineItem{
			Name:        strings.TrimSpace(it.Name),
			Description: strings.TrimSpace(it.Description),
			Quantity:    qty,
			Rate:        it.Rate,
			Amount:      amount,
		})
	}
	if err := v.Err(); err != nil {
		return Result{}, err
	}

	subtotal = Round2(subtotal)
	tax := Round2(subtotal.Mul(in.TaxPercentage).Div(hundred))
	gross := subtotal.Add(tax)
	// The discount is applied as given; only the total is rounded.
	discount := in.DiscountAmount
	if discount.GreaterThan(gross) {
		discount = gross
	}
	total := Round2(decimal.Max(decimal.Zero, gross.Sub(discount)))

	return Result{
		Items: items,
		Totals: entities.Totals{
			Subtotal:       subtotal,
			TaxPercentage:  in.TaxPercentage,
			TaxAmount:      tax,
			DiscountAmount: discount,
			TotalAmount:    total,
		},
	}, nil
}

// BalanceDue returns round2(max(0, total - paid)).
func BalanceDue(total, paid decimal.Decimal) decimal.Decimal {
	return Round2(decimal.Max(decimal.Zero, total.Sub(paid)))
}
