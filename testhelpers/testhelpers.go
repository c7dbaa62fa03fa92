// Package testhelpers provides utilities for testing PocketBase-based applications.
package testhelpers

import (
	"strings"
	"testing"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/collections"
)

// NewTestApp creates a PocketBase instance backed by a temporary directory.
// It bootstraps the app and runs collections.Setup to create all tables.
// The temporary directory is cleaned up automatically when the test finishes.
func NewTestApp(t *testing.T) *pocketbase.PocketBase {
	t.Helper()

	tmpDir := t.TempDir()
	app := pocketbase.NewWithConfig(pocketbase.Config{
		DefaultDataDir: tmpDir,
	})

	if err := app.Bootstrap(); err != nil {
		t.Fatalf("failed to bootstrap test app: %v", err)
	}

	collections.Setup(app)

	return app
}

// CreateTestProject creates a project record with the given name and returns it.
func CreateTestProject(t *testing.T, app *pocketbase.PocketBase, name string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		t.Fatalf("failed to find projects collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("name", name)
	record.Set("status", "active")

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test project: %v", err)
	}

	return record
}

// CreateTestEstimation creates an estimation record linked to a project and returns it.
func CreateTestEstimation(t *testing.T, app *pocketbase.PocketBase, projectID, title string) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		t.Fatalf("failed to find estimations collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("title", title)
	record.Set("project", projectID)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test estimation: %v", err)
	}

	return record
}

// CreateTestLineItem creates a line item with the given percentages and returns it.
func CreateTestLineItem(t *testing.T, app *pocketbase.PocketBase, estimationID, description string, overheadPct, profitPct, discountPct, vatPct float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		t.Fatalf("failed to find line_items collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("estimation", estimationID)
	record.Set("sort_order", 1)
	record.Set("description", description)
	record.Set("qty", 1)
	record.Set("uom", "Lot")
	record.Set("overhead_percent", overheadPct)
	record.Set("profit_percent", profitPct)
	record.Set("discount_percent", discountPct)
	record.Set("vat_percent", vatPct)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test line item: %v", err)
	}

	return record
}

// CreateTestMaterialLine creates a material line under a line item and returns it.
func CreateTestMaterialLine(t *testing.T, app *pocketbase.PocketBase, lineItemID, name string, qty, rate float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("material_lines")
	if err != nil {
		t.Fatalf("failed to find material_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("line_item", lineItemID)
	record.Set("sort_order", 1)
	record.Set("name", name)
	record.Set("qty", qty)
	record.Set("uom", "Nos")
	record.Set("rate", rate)
	record.Set("amount", qty*rate)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test material line: %v", err)
	}

	return record
}

// CreateTestLabourLine creates a labour line under a line item and returns it.
func CreateTestLabourLine(t *testing.T, app *pocketbase.PocketBase, lineItemID, labourType string, qty, ratePerHour float64) *core.Record {
	t.Helper()

	col, err := app.FindCollectionByNameOrId("labour_lines")
	if err != nil {
		t.Fatalf("failed to find labour_lines collection: %v", err)
	}

	record := core.NewRecord(col)
	record.Set("line_item", lineItemID)
	record.Set("sort_order", 1)
	record.Set("type", labourType)
	record.Set("qty", qty)
	record.Set("uom", "Hour")
	record.Set("rate_per_hour", ratePerHour)

	if err := app.Save(record); err != nil {
		t.Fatalf("failed to save test labour line: %v", err)
	}

	return record
}

// AssertBodyContains checks that body contains all specified fragments.
func AssertBodyContains(t *testing.T, body string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(body, frag) {
			t.Errorf("response body missing fragment %q", frag)
		}
	}
}
