package collections_test

import (
	"testing"

	"boqworks/collections"
	"boqworks/testhelpers"
)

// expectedCollections is the full list of collections that Setup() must create.
var expectedCollections = []string{
	"projects",
	"estimations",
	"line_items",
	"material_lines",
	"labour_lines",
}

func TestSetup_AllCollectionsExist(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	for _, name := range expectedCollections {
		col, err := app.FindCollectionByNameOrId(name)
		if err != nil {
			t.Errorf("collection %q not found after Setup(): %v", name, err)
			continue
		}
		if col.Name != name {
			t.Errorf("expected collection name %q, got %q", name, col.Name)
		}
	}
}

func TestSetup_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	// Running Setup again must not fail or duplicate collections.
	collections.Setup(app)

	for _, name := range expectedCollections {
		if _, err := app.FindCollectionByNameOrId(name); err != nil {
			t.Errorf("collection %q missing after second Setup(): %v", name, err)
		}
	}
}

func TestSetup_LineItemFields(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("line_items not found: %v", err)
	}

	for _, field := range []string{
		"estimation", "sort_order", "description", "qty", "uom", "rate",
		"overhead_percent", "profit_percent", "discount_percent",
		"vat_percent", "vat_amount_override",
	} {
		if col.Fields.GetByName(field) == nil {
			t.Errorf("line_items is missing field %q", field)
		}
	}
}

func TestSetup_CascadeRelations(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	proj := testhelpers.CreateTestProject(t, app, "Cascade Project")
	est := testhelpers.CreateTestEstimation(t, app, proj.Id, "Cascade Estimation")
	item := testhelpers.CreateTestLineItem(t, app, est.Id, "Cascade Item", 10, 15, 0, 5)
	material := testhelpers.CreateTestMaterialLine(t, app, item.Id, "Cement", 10, 60)
	labour := testhelpers.CreateTestLabourLine(t, app, item.Id, "Mason", 20, 25)

	// Deleting the estimation removes the whole subtree.
	if err := app.Delete(est); err != nil {
		t.Fatalf("delete estimation: %v", err)
	}

	if _, err := app.FindRecordById("line_items", item.Id); err == nil {
		t.Error("line item survived estimation delete")
	}
	if _, err := app.FindRecordById("material_lines", material.Id); err == nil {
		t.Error("material line survived estimation delete")
	}
	if _, err := app.FindRecordById("labour_lines", labour.Id); err == nil {
		t.Error("labour line survived estimation delete")
	}
}
