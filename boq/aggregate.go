package boq

// AggregateCosts sums an item's material and labour lines into its
// pre-markup base cost. Empty or nil line slices yield zero totals.
func AggregateCosts(item LineItem) CostBreakdown {
	var materialTotal float64
	for _, m := range item.Materials {
		materialTotal += materialAmount(m)
	}

	var labourTotal float64
	for _, l := range item.Labour {
		labourTotal += labourAmount(l)
	}

	return CostBreakdown{
		MaterialTotal: materialTotal,
		LabourTotal:   labourTotal,
		BaseCost:      materialTotal + labourTotal,
	}
}

// materialAmount prefers the stored amount, falling back to
// quantity x rate when the record carries no pre-computed value.
func materialAmount(m MaterialLine) float64 {
	if m.Amount > 0 {
		return m.Amount
	}
	return m.Quantity * m.Rate
}

// labourAmount prefers the pre-computed total cost, falling back to
// quantity x rate. Labour records come in both shapes upstream.
func labourAmount(l LabourLine) float64 {
	if l.TotalCost > 0 {
		return l.TotalCost
	}
	return l.Quantity * l.Rate
}
