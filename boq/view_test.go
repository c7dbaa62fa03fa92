package boq

import (
	"errors"
	"math"
	"testing"
)

func sampleEstimation() Estimation {
	return Estimation{
		ProjectName: "Riverside Warehouse",
		ClientName:  "Acme Logistics",
		Title:       "Civil Works Phase 1",
		Items: []LineItem{
			{
				Description: "Brickwork",
				Quantity:    50,
				Unit:        "Sqm",
				Materials: []MaterialLine{
					{Name: "Cement", Quantity: 10, Unit: "Bag", Rate: 60, Amount: 600},
					{Name: "Sand", Quantity: 4, Unit: "Cum", Rate: 100, Amount: 400},
				},
				Labour: []LabourLine{
					{Type: "Mason", Quantity: 20, Unit: "Hour", Rate: 25},
				},
				OverheadPct: 10,
				ProfitPct:   15,
				DiscountPct: 5,
				VATPct:      5,
			},
			{
				Description: "Excavation",
				Quantity:    120,
				Unit:        "Cum",
				Labour: []LabourLine{
					{Type: "Operator", Quantity: 30, Unit: "Hour", Rate: 40, TotalCost: 1200},
				},
				OverheadPct: 8,
				ProfitPct:   12,
				VATPct:      18,
			},
			{
				Description: "Placeholder awaiting pricing",
				Quantity:    1,
				Unit:        "Lot",
				OverheadPct: 10,
				ProfitPct:   15,
			},
		},
	}
}

func TestComposeInternal(t *testing.T) {
	view, err := ComposeInternal(sampleEstimation())
	if err != nil {
		t.Fatalf("ComposeInternal() error = %v", err)
	}

	if view.Kind != ViewInternal {
		t.Errorf("Kind = %q, want %q", view.Kind, ViewInternal)
	}
	if len(view.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(view.Items))
	}

	first := view.Items[0]
	if math.Abs(first.Markup.FinalPrice-1870.3125) > 1e-6 {
		t.Errorf("first item final price = %v, want 1870.3125", first.Markup.FinalPrice)
	}
	// Internal view keeps the original lines.
	if first.Materials[0].Amount != 600 || first.Materials[0].Rate != 60 {
		t.Errorf("internal view must keep original material lines, got %+v", first.Materials[0])
	}

	// Zero-cost placeholder: all zero, still present, still ordered.
	third := view.Items[2]
	if third.Markup != (Markup{}) {
		t.Errorf("placeholder item markup = %+v, want all zero", third.Markup)
	}
	if third.Description != "Placeholder awaiting pricing" {
		t.Errorf("item order not preserved: %q", third.Description)
	}
}

func TestComposeClient_TotalsMatchInternal(t *testing.T) {
	est := sampleEstimation()

	internal, err := ComposeInternal(est)
	if err != nil {
		t.Fatalf("ComposeInternal() error = %v", err)
	}
	client, err := ComposeClient(est)
	if err != nil {
		t.Fatalf("ComposeClient() error = %v", err)
	}

	if math.Abs(internal.Totals.GrandTotal-client.Totals.GrandTotal) > 1e-6 {
		t.Errorf("grand totals diverge: internal %v, client %v",
			internal.Totals.GrandTotal, client.Totals.GrandTotal)
	}

	for i := range internal.Items {
		in := internal.Items[i].Markup.FinalPrice
		cl := client.Items[i].Markup.FinalPrice
		if math.Abs(in-cl) > 1e-6 {
			t.Errorf("item %d final price diverges: internal %v, client %v", i, in, cl)
		}
	}
}

func TestComposeClient_AdjustedLinesCoverSubtotal(t *testing.T) {
	client, err := ComposeClient(sampleEstimation())
	if err != nil {
		t.Fatalf("ComposeClient() error = %v", err)
	}

	for i, it := range client.Items {
		var sum float64
		for _, m := range it.Materials {
			sum += m.Amount
		}
		for _, l := range it.Labour {
			sum += l.TotalCost
		}
		want := it.Markup.BaseCost + it.Markup.Overhead + it.Markup.Profit
		if math.Abs(sum-want) > 1e-6 {
			t.Errorf("item %d: adjusted line sum = %v, want %v", i, sum, want)
		}
	}
}

func TestComposeClient_HidesMarkupInRates(t *testing.T) {
	client, err := ComposeClient(sampleEstimation())
	if err != nil {
		t.Fatalf("ComposeClient() error = %v", err)
	}

	// Cement absorbs its share: 600 -> 750 over 10 bags.
	cement := client.Items[0].Materials[0]
	if math.Abs(cement.Amount-750) > 1e-6 {
		t.Errorf("cement client amount = %v, want 750", cement.Amount)
	}
	if math.Abs(cement.Rate-75) > 1e-6 {
		t.Errorf("cement client rate = %v, want 75", cement.Rate)
	}
}

func TestCompose_InvalidItemDoesNotAbort(t *testing.T) {
	est := sampleEstimation()
	est.Items[1].DiscountPct = -3

	view, err := ComposeInternal(est)
	if !errors.Is(err, ErrInvalidPercentage) {
		t.Fatalf("expected ErrInvalidPercentage, got %v", err)
	}

	// Valid items still computed; the invalid one is zeroed in place.
	if len(view.Items) != 3 {
		t.Fatalf("len(Items) = %d, want 3", len(view.Items))
	}
	if math.Abs(view.Items[0].Markup.FinalPrice-1870.3125) > 1e-6 {
		t.Errorf("valid item not computed: %v", view.Items[0].Markup.FinalPrice)
	}
	if view.Items[1].Markup != (Markup{}) {
		t.Errorf("invalid item must be zeroed, got %+v", view.Items[1].Markup)
	}
	if math.Abs(view.Totals.GrandTotal-view.Items[0].Markup.FinalPrice) > 1e-6 {
		t.Errorf("totals must exclude the invalid item: %v", view.Totals.GrandTotal)
	}
}

func TestCompose_ProjectVATOverride(t *testing.T) {
	est := sampleEstimation()
	est.VATAmountOverride = 100

	internal, err := ComposeInternal(est)
	if err != nil {
		t.Fatalf("ComposeInternal() error = %v", err)
	}
	client, err := ComposeClient(est)
	if err != nil {
		t.Fatalf("ComposeClient() error = %v", err)
	}

	if internal.Totals.VAT != 100 {
		t.Errorf("internal totals VAT = %v, want 100", internal.Totals.VAT)
	}
	if math.Abs(internal.Totals.GrandTotal-client.Totals.GrandTotal) > 1e-6 {
		t.Errorf("grand totals diverge under override: %v vs %v",
			internal.Totals.GrandTotal, client.Totals.GrandTotal)
	}
}

func TestComputeItem_ItemVATOverride(t *testing.T) {
	item := sampleEstimation().Items[0]
	item.VATPct = 20
	item.VATAmountOverride = 100

	got, err := ComputeItem(item)
	if err != nil {
		t.Fatalf("ComputeItem() error = %v", err)
	}
	if got.Markup.VAT != 100 {
		t.Errorf("VAT = %v, want exact override 100", got.Markup.VAT)
	}
}

func TestCompose_EmptyEstimation(t *testing.T) {
	view, err := ComposeClient(Estimation{Title: "Empty"})
	if err != nil {
		t.Fatalf("ComposeClient() error = %v", err)
	}
	if len(view.Items) != 0 {
		t.Errorf("len(Items) = %d, want 0", len(view.Items))
	}
	if view.Totals != (ProjectTotals{}) {
		t.Errorf("totals = %+v, want all zero", view.Totals)
	}
}
