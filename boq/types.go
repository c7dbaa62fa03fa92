// Package boq computes cost composition for Bill of Quantities
// estimations: base cost aggregation, overhead/profit/discount/VAT
// markup, pro-rata markup distribution for client-facing documents,
// and project-level totals. It is a pure tree-in/tree-out transform
// with no I/O; persistence and rendering live elsewhere.
package boq

// MaterialLine is one material row of a line item. Amount is the
// authoritative pre-markup amount; the system boundary derives it from
// Quantity*Rate when the stored value is missing.
type MaterialLine struct {
	Name     string  `json:"name"`
	Quantity float64 `json:"quantity"`
	Unit     string  `json:"unit"`
	Rate     float64 `json:"rate"`
	Amount   float64 `json:"amount"`
}

// LabourLine is one labour row of a line item. TotalCost is preferred
// when present (> 0); otherwise the amount is Quantity*Rate. Upstream
// data is heterogeneous here -- some records carry only a rate per
// hour, some carry a pre-computed total.
type LabourLine struct {
	Type      string  `json:"type"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit"`
	Rate      float64 `json:"rate"`
	TotalCost float64 `json:"total_cost"`
}

// LineItem is one BOQ row together with its constituent material and
// labour lines and its item-level percentages. Inputs are never
// mutated; all computed values are returned in ComputedItem.
type LineItem struct {
	Description       string         `json:"description"`
	Quantity          float64        `json:"quantity"`
	Unit              string         `json:"unit"`
	Rate              float64        `json:"rate"`
	Materials         []MaterialLine `json:"materials"`
	Labour            []LabourLine   `json:"labour"`
	OverheadPct       float64        `json:"overhead_percent"`
	ProfitPct         float64        `json:"profit_percent"`
	DiscountPct       float64        `json:"discount_percent"`
	VATPct            float64        `json:"vat_percent"`
	VATAmountOverride float64        `json:"vat_amount_override"`
}

// Estimation is the full input tree for one BOQ. VATAmountOverride,
// when > 0, replaces the summed per-item VAT in the project totals
// with one flat figure.
type Estimation struct {
	ProjectName       string     `json:"project_name"`
	ClientName        string     `json:"client_name"`
	Location          string     `json:"location"`
	Title             string     `json:"title"`
	ReferenceNumber   string     `json:"reference_number"`
	Items             []LineItem `json:"items"`
	VATAmountOverride float64    `json:"vat_amount_override"`
}

// CostBreakdown holds the summed pre-markup costs of one line item.
type CostBreakdown struct {
	MaterialTotal float64 `json:"material_total"`
	LabourTotal   float64 `json:"labour_total"`
	BaseCost      float64 `json:"base_cost"`
}

// Markup holds every intermediate amount of the composition chain for
// one line item. FinalPrice = BaseCost + Overhead + Profit - Discount
// + VAT, with the discount taken off the marked-up subtotal and VAT
// added on the discounted subtotal.
type Markup struct {
	BaseCost      float64 `json:"base_cost"`
	Overhead      float64 `json:"overhead"`
	Profit        float64 `json:"profit"`
	Subtotal      float64 `json:"subtotal"`
	Discount      float64 `json:"discount"`
	AfterDiscount float64 `json:"after_discount"`
	VAT           float64 `json:"vat"`
	FinalPrice    float64 `json:"final_price"`
}

// ComputedItem is the engine output for one line item. In the
// Internal view Materials and Labour are the original input lines; in
// the Client view their amounts and rates already include the
// distributed overhead+profit markup.
type ComputedItem struct {
	Description   string         `json:"description"`
	Quantity      float64        `json:"quantity"`
	Unit          string         `json:"unit"`
	MaterialTotal float64        `json:"material_total"`
	LabourTotal   float64        `json:"labour_total"`
	Markup        Markup         `json:"markup"`
	Materials     []MaterialLine `json:"materials"`
	Labour        []LabourLine   `json:"labour"`
}

// ProjectTotals sums every component across all items. The Avg*
// percentages are weighted averages derived purely for display; they
// are never fed back into per-item computation.
type ProjectTotals struct {
	MaterialCost   float64 `json:"material_cost"`
	LabourCost     float64 `json:"labour_cost"`
	BaseCost       float64 `json:"base_cost"`
	Overhead       float64 `json:"overhead"`
	Profit         float64 `json:"profit"`
	Discount       float64 `json:"discount"`
	AfterDiscount  float64 `json:"after_discount"`
	VAT            float64 `json:"vat"`
	GrandTotal     float64 `json:"grand_total"`
	AvgOverheadPct float64 `json:"avg_overhead_percent"`
	AvgProfitPct   float64 `json:"avg_profit_percent"`
	AvgDiscountPct float64 `json:"avg_discount_percent"`
	AvgVATPct      float64 `json:"avg_vat_percent"`
}

// ViewKind selects which presentation a composed View carries.
type ViewKind string

const (
	// ViewInternal shows overhead, profit, discount and VAT as
	// explicit separate figures.
	ViewInternal ViewKind = "internal"
	// ViewClient conceals markup by folding it pro-rata into
	// material and labour unit prices; the totals stay identical to
	// the internal view.
	ViewClient ViewKind = "client"
)

// View is one complete presentation of an estimation: every item's
// computed breakdown in original order plus the project totals.
type View struct {
	Kind   ViewKind       `json:"kind"`
	Items  []ComputedItem `json:"items"`
	Totals ProjectTotals  `json:"totals"`
}
