package boq

// Summarize folds all items' computed amounts into project-level
// totals and derives the weighted-average percentages shown on
// summary documents. The averages are display-only; per-item
// percentages stay authoritative for every computed amount.
//
// vatOverride, when > 0, replaces the summed per-item VAT with one
// flat figure (the estimation-level counterpart of the per-item
// override) and the grand total is rebuilt on top of it.
func Summarize(items []ComputedItem, vatOverride float64) ProjectTotals {
	var t ProjectTotals

	for _, it := range items {
		t.MaterialCost += it.MaterialTotal
		t.LabourCost += it.LabourTotal
		t.BaseCost += it.Markup.BaseCost
		t.Overhead += it.Markup.Overhead
		t.Profit += it.Markup.Profit
		t.Discount += it.Markup.Discount
		t.AfterDiscount += it.Markup.AfterDiscount
		t.VAT += it.Markup.VAT
		t.GrandTotal += it.Markup.FinalPrice
	}

	if vatOverride > 0 {
		t.VAT = vatOverride
		t.GrandTotal = t.AfterDiscount + vatOverride
	}

	if t.BaseCost > 0 {
		t.AvgOverheadPct = t.Overhead / t.BaseCost * 100
		t.AvgProfitPct = t.Profit / t.BaseCost * 100
	}
	if subtotal := t.BaseCost + t.Overhead + t.Profit; subtotal > 0 {
		t.AvgDiscountPct = t.Discount / subtotal * 100
	}
	if t.AfterDiscount > 0 {
		t.AvgVATPct = t.VAT / t.AfterDiscount * 100
	}

	return t
}
