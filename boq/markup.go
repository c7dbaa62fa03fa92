package boq

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPercentage is returned when an overhead, profit, discount
// or VAT percentage is negative or non-finite. Invalid input is
// rejected outright rather than clamped -- clamping would hide
// upstream data-entry bugs.
var ErrInvalidPercentage = errors.New("invalid percentage")

// ComputeMarkup applies the item-level percentages to a base cost in
// fixed order: overhead and profit on the base cost, discount on the
// marked-up subtotal, VAT on the discounted subtotal. The order is
// load-bearing; swapping discount and VAT changes the result.
//
// vatOverride, when > 0, replaces the percentage-derived VAT amount
// exactly.
//
// A zero base cost short-circuits to an all-zero Markup: markup on
// nothing is nothing, and skipping the chain keeps zero-cost
// placeholder items from ever producing stray amounts.
func ComputeMarkup(baseCost, overheadPct, profitPct, discountPct, vatPct, vatOverride float64) (Markup, error) {
	if err := validatePercentages(overheadPct, profitPct, discountPct, vatPct); err != nil {
		return Markup{}, err
	}

	if baseCost == 0 {
		return Markup{}, nil
	}

	overhead := baseCost * overheadPct / 100
	profit := baseCost * profitPct / 100
	subtotal := baseCost + overhead + profit
	discount := subtotal * discountPct / 100
	afterDiscount := subtotal - discount

	vat := afterDiscount * vatPct / 100
	if vatOverride > 0 {
		vat = vatOverride
	}

	return Markup{
		BaseCost:      baseCost,
		Overhead:      overhead,
		Profit:        profit,
		Subtotal:      subtotal,
		Discount:      discount,
		AfterDiscount: afterDiscount,
		VAT:           vat,
		FinalPrice:    afterDiscount + vat,
	}, nil
}

// validatePercentages rejects negative or non-finite values before
// any amount is computed, so a failed call never leaves a partially
// populated Markup.
func validatePercentages(overheadPct, profitPct, discountPct, vatPct float64) error {
	checks := []struct {
		name  string
		value float64
	}{
		{"overhead", overheadPct},
		{"profit", profitPct},
		{"discount", discountPct},
		{"vat", vatPct},
	}
	for _, c := range checks {
		if c.value < 0 || math.IsNaN(c.value) || math.IsInf(c.value, 0) {
			return fmt.Errorf("%w: %s = %v", ErrInvalidPercentage, c.name, c.value)
		}
	}
	return nil
}
