package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// ── Definition structs ───────────────────────────────────────────────────

type materialDef struct {
	sortOrder int
	name      string
	qty       float64
	uom       string
	rate      float64
	amount    float64
}

type labourDef struct {
	sortOrder   int
	labourType  string
	qty         float64
	uom         string
	ratePerHour float64
	totalCost   float64
}

type lineItemDef struct {
	sortOrder         int
	description       string
	qty               float64
	uom               string
	rate              float64
	overheadPercent   float64
	profitPercent     float64
	discountPercent   float64
	vatPercent        float64
	vatAmountOverride float64
	materials         []materialDef
	labour            []labourDef
}

type estimationDef struct {
	title             string
	referenceNumber   string
	vatAmountOverride float64
	items             []lineItemDef
}

type projectDef struct {
	name            string
	clientName      string
	location        string
	referenceNumber string
	estimations     []estimationDef
}

// Seed populates all collections with a realistic demo project and
// estimation. It is safe to call on every startup because it returns
// early if any project records already exist.
func Seed(app *pocketbase.PocketBase) error {
	// ── idempotency: skip if projects already exist ──────────────────
	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("seed: could not find projects collection: %w", err)
	}
	existing, err := app.FindAllRecords(projectsCol)
	if err != nil {
		return fmt.Errorf("seed: could not query projects: %w", err)
	}
	if len(existing) > 0 {
		return nil // already seeded
	}

	log.Println("seed: projects collection is empty – inserting seed data …")

	// ── lookup helper collections ────────────────────────────────────
	estimationsCol, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		return fmt.Errorf("seed: could not find estimations collection: %w", err)
	}
	lineItemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return fmt.Errorf("seed: could not find line_items collection: %w", err)
	}
	materialLinesCol, err := app.FindCollectionByNameOrId("material_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find material_lines collection: %w", err)
	}
	labourLinesCol, err := app.FindCollectionByNameOrId("labour_lines")
	if err != nil {
		return fmt.Errorf("seed: could not find labour_lines collection: %w", err)
	}

	for _, p := range seedProjects() {
		projectRecord := core.NewRecord(projectsCol)
		projectRecord.Set("name", p.name)
		projectRecord.Set("client_name", p.clientName)
		projectRecord.Set("location", p.location)
		projectRecord.Set("reference_number", p.referenceNumber)
		projectRecord.Set("status", "active")
		if err := app.Save(projectRecord); err != nil {
			return fmt.Errorf("seed: could not save project %q: %w", p.name, err)
		}

		for _, e := range p.estimations {
			estimationRecord := core.NewRecord(estimationsCol)
			estimationRecord.Set("project", projectRecord.Id)
			estimationRecord.Set("title", e.title)
			estimationRecord.Set("reference_number", e.referenceNumber)
			estimationRecord.Set("vat_amount_override", e.vatAmountOverride)
			if err := app.Save(estimationRecord); err != nil {
				return fmt.Errorf("seed: could not save estimation %q: %w", e.title, err)
			}

			for _, it := range e.items {
				itemRecord := core.NewRecord(lineItemsCol)
				itemRecord.Set("estimation", estimationRecord.Id)
				itemRecord.Set("sort_order", it.sortOrder)
				itemRecord.Set("description", it.description)
				itemRecord.Set("qty", it.qty)
				itemRecord.Set("uom", it.uom)
				itemRecord.Set("rate", it.rate)
				itemRecord.Set("overhead_percent", it.overheadPercent)
				itemRecord.Set("profit_percent", it.profitPercent)
				itemRecord.Set("discount_percent", it.discountPercent)
				itemRecord.Set("vat_percent", it.vatPercent)
				itemRecord.Set("vat_amount_override", it.vatAmountOverride)
				if err := app.Save(itemRecord); err != nil {
					return fmt.Errorf("seed: could not save line item %q: %w", it.description, err)
				}

				for _, m := range it.materials {
					materialRecord := core.NewRecord(materialLinesCol)
					materialRecord.Set("line_item", itemRecord.Id)
					materialRecord.Set("sort_order", m.sortOrder)
					materialRecord.Set("name", m.name)
					materialRecord.Set("qty", m.qty)
					materialRecord.Set("uom", m.uom)
					materialRecord.Set("rate", m.rate)
					materialRecord.Set("amount", m.amount)
					if err := app.Save(materialRecord); err != nil {
						return fmt.Errorf("seed: could not save material line %q: %w", m.name, err)
					}
				}

				for _, l := range it.labour {
					labourRecord := core.NewRecord(labourLinesCol)
					labourRecord.Set("line_item", itemRecord.Id)
					labourRecord.Set("sort_order", l.sortOrder)
					labourRecord.Set("type", l.labourType)
					labourRecord.Set("qty", l.qty)
					labourRecord.Set("uom", l.uom)
					labourRecord.Set("rate_per_hour", l.ratePerHour)
					labourRecord.Set("total_cost", l.totalCost)
					if err := app.Save(labourRecord); err != nil {
						return fmt.Errorf("seed: could not save labour line %q: %w", l.labourType, err)
					}
				}
			}
		}
	}

	log.Println("seed: done.")
	return nil
}

// seedProjects returns the demo data set: one project with a
// two-estimation spread covering markup, discount, VAT override and a
// zero-cost placeholder item.
func seedProjects() []projectDef {
	return []projectDef{
		{
			name:            "Riverside Warehouse Fit-Out",
			clientName:      "Acme Logistics",
			location:        "Rotterdam",
			referenceNumber: "RW-01",
			estimations: []estimationDef{
				{
					title:           "Civil Works Phase 1",
					referenceNumber: "EST-RW-01-25-001",
					items: []lineItemDef{
						{
							sortOrder:       1,
							description:     "Brickwork partition walls",
							qty:             50,
							uom:             "Sqm",
							overheadPercent: 10,
							profitPercent:   15,
							discountPercent: 5,
							vatPercent:      5,
							materials: []materialDef{
								{sortOrder: 1, name: "Cement", qty: 10, uom: "Bag", rate: 60, amount: 600},
								{sortOrder: 2, name: "Sand", qty: 4, uom: "Cum", rate: 100, amount: 400},
							},
							labour: []labourDef{
								{sortOrder: 1, labourType: "Mason", qty: 20, uom: "Hour", ratePerHour: 25},
							},
						},
						{
							sortOrder:       2,
							description:     "Excavation and backfill",
							qty:             120,
							uom:             "Cum",
							overheadPercent: 8,
							profitPercent:   12,
							vatPercent:      20,
							labour: []labourDef{
								{sortOrder: 1, labourType: "Excavator operator", qty: 30, uom: "Hour", ratePerHour: 40, totalCost: 1200},
								{sortOrder: 2, labourType: "Helper", qty: 30, uom: "Hour", ratePerHour: 15},
							},
						},
						{
							sortOrder:       3,
							description:     "Fire doors (pricing pending)",
							qty:             4,
							uom:             "Nos",
							overheadPercent: 10,
							profitPercent:   15,
						},
					},
				},
				{
					title:             "Electrical Works",
					referenceNumber:   "EST-RW-01-25-002",
					vatAmountOverride: 850,
					items: []lineItemDef{
						{
							sortOrder:       1,
							description:     "Cable trays and wiring",
							qty:             200,
							uom:             "Rmt",
							overheadPercent: 12,
							profitPercent:   10,
							vatPercent:      20,
							materials: []materialDef{
								{sortOrder: 1, name: "Cable tray 300mm", qty: 200, uom: "Rmt", rate: 9.5, amount: 1900},
								{sortOrder: 2, name: "Power cable 4x16", qty: 250, uom: "Rmt", rate: 6.4},
							},
							labour: []labourDef{
								{sortOrder: 1, labourType: "Electrician", qty: 60, uom: "Hour", ratePerHour: 32},
							},
						},
					},
				},
			},
		},
	}
}
