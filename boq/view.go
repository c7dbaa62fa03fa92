package boq

import (
	"errors"
	"fmt"
)

// ComputeItem runs the full composition chain for one line item:
// cost aggregation followed by markup calculation.
func ComputeItem(item LineItem) (ComputedItem, error) {
	costs := AggregateCosts(item)
	markup, err := ComputeMarkup(costs.BaseCost, item.OverheadPct, item.ProfitPct, item.DiscountPct, item.VATPct, item.VATAmountOverride)
	if err != nil {
		return ComputedItem{}, err
	}

	return ComputedItem{
		Description:   item.Description,
		Quantity:      item.Quantity,
		Unit:          item.Unit,
		MaterialTotal: costs.MaterialTotal,
		LabourTotal:   costs.LabourTotal,
		Markup:        markup,
		Materials:     item.Materials,
		Labour:        item.Labour,
	}, nil
}

// ComposeInternal computes the internal presentation of an estimation:
// every item's breakdown with markup as explicit figures, plus project
// totals.
//
// An invalid item (negative percentage) does not abort the rest of the
// estimation: it is kept in place as a zeroed entry, excluded from the
// totals, and its error -- wrapped with the item index -- is joined
// into the returned error. Callers get the full picture in one pass.
func ComposeInternal(est Estimation) (View, error) {
	items, err := computeItems(est.Items)

	return View{
		Kind:   ViewInternal,
		Items:  items,
		Totals: Summarize(items, est.VATAmountOverride),
	}, err
}

// ComposeClient computes the client presentation: the same totals as
// the internal view, but each item's material and labour lines carry
// the distributed overhead+profit markup so the documents never show
// markup explicitly.
func ComposeClient(est Estimation) (View, error) {
	items, err := computeItems(est.Items)

	for i := range items {
		costs := CostBreakdown{
			MaterialTotal: items[i].MaterialTotal,
			LabourTotal:   items[i].LabourTotal,
			BaseCost:      items[i].Markup.BaseCost,
		}
		items[i].Materials, items[i].Labour = DistributeMarkup(items[i].Materials, items[i].Labour, costs, items[i].Markup)
	}

	return View{
		Kind:   ViewClient,
		Items:  items,
		Totals: Summarize(items, est.VATAmountOverride),
	}, err
}

// computeItems computes every item in input order, collecting per-item
// errors instead of stopping at the first one. Failed items come back
// zeroed so downstream ordering stays stable.
func computeItems(items []LineItem) ([]ComputedItem, error) {
	computed := make([]ComputedItem, len(items))
	var errs []error

	for i, item := range items {
		ci, err := ComputeItem(item)
		if err != nil {
			errs = append(errs, fmt.Errorf("item %d (%s): %w", i+1, item.Description, err))
			continue
		}
		computed[i] = ci
	}

	return computed, errors.Join(errs...)
}
