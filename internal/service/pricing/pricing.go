// Package pricing computes order totals. It is pure: no I/O, no clock, no
// storage, which keeps the money math independently testable.
package pricing

import (
	"github.com/clearmart/oms/order/internal/service/errs"
)

// Line is one priced order line.
type Line struct {
	UnitPriceCents int64
	Quantity       int
}

// Totals is the monetary breakdown of an order, in integer cents. Keeping
// money in cents avoids any intermediate rounding.
type Totals struct {
	SubtotalCents int64
	ShippingCents int64
	TaxCents      int64
	DiscountCents int64
	TotalCents    int64
}

// Compute derives order totals from the line items and the external
// adjustments. Total = subtotal + shipping + tax - discount; a negative
// result is a DISCOUNT_EXCEEDS_TOTAL error, never a clamped value.
func Compute(lines []Line, shippingCents, taxCents, discountCents int64) (Totals, error) {
	if len(lines) == 0 {
		return Totals{}, errs.New(errs.CodeValidation, "order must contain at least one item")
	}
	if shippingCents < 0 || taxCents < 0 || discountCents < 0 {
		return Totals{}, errs.New(errs.CodeValidation, "shipping, tax and discount must be non-negative")
	}

	var subtotal int64
	for i, l := range lines {
		if l.Quantity <= 0 {
			return Totals{}, errs.New(errs.CodeValidation, "item %d: quantity must be positive", i)
		}
		if l.UnitPriceCents < 0 {
			return Totals{}, errs.New(errs.CodeValidation, "item %d: unit price must be non-negative", i)
		}
		subtotal += l.UnitPriceCents * int64(l.Quantity)
	}

	total := subtotal + shippingCents + taxCents - discountCents
	if total < 0 {
		return Totals{}, errs.New(
			errs.CodeDiscountExceedsTotal,
			"discount %d exceeds order total %d",
			discountCents, subtotal+shippingCents+taxCents,
		)
	}

	return Totals{
		SubtotalCents: subtotal,
		ShippingCents: shippingCents,
		TaxCents:      taxCents,
		DiscountCents: discountCents,
		TotalCents:    total,
	}, nil
}

// LineTotalCents is the snapshot total for a single line.
func LineTotalCents(unitPriceCents int64, quantity int) int64 {
	return unitPriceCents * int64(quantity)
}
