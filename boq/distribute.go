package boq

// DistributeMarkup allocates an item's overhead+profit markup across
// its material and labour lines, producing the adjusted per-line
// amounts and unit rates of the client view. Discount and VAT are not
// folded into line rates; they are netted at the document level, so
// the adjusted lines sum to the pre-discount subtotal
// (baseCost + overhead + profit).
//
// The allocation is two-level: the item markup is split between the
// material pool and the labour pool proportional to each pool's share
// of the base cost, then within each pool proportional to each line's
// share of the pool total.
//
// A zero base cost returns the lines unchanged -- there is nothing to
// distribute (markup is proportional to base cost, so it is zero too).
func DistributeMarkup(materials []MaterialLine, labour []LabourLine, costs CostBreakdown, markup Markup) ([]MaterialLine, []LabourLine) {
	adjMaterials := make([]MaterialLine, len(materials))
	copy(adjMaterials, materials)
	adjLabour := make([]LabourLine, len(labour))
	copy(adjLabour, labour)

	if costs.BaseCost == 0 {
		return adjMaterials, adjLabour
	}

	totalMarkup := markup.Overhead + markup.Profit

	materialPool := totalMarkup * costs.MaterialTotal / costs.BaseCost
	labourPool := totalMarkup * costs.LabourTotal / costs.BaseCost

	for i := range adjMaterials {
		amount := materialAmount(adjMaterials[i])
		var ratio float64
		if costs.MaterialTotal > 0 {
			ratio = amount / costs.MaterialTotal
		}
		adjusted := amount + ratio*materialPool
		adjMaterials[i].Amount = adjusted
		if adjMaterials[i].Quantity > 0 {
			adjMaterials[i].Rate = adjusted / adjMaterials[i].Quantity
		}
		// Zero quantity keeps the original rate; recomputing would
		// divide by zero for placeholder lines awaiting pricing.
	}

	for i := range adjLabour {
		amount := labourAmount(adjLabour[i])
		var ratio float64
		if costs.LabourTotal > 0 {
			ratio = amount / costs.LabourTotal
		}
		adjusted := amount + ratio*labourPool
		adjLabour[i].TotalCost = adjusted
		if adjLabour[i].Quantity > 0 {
			adjLabour[i].Rate = adjusted / adjLabour[i].Quantity
		}
	}

	return adjMaterials, adjLabour
}
