// Package services provides the document-facing side of the BOQ
// engine: flattening computed views into renderer-ready rows and
// generating Excel, PDF and CSV documents from them. All three
// renderers consume the same ExportData, so the formats can never
// disagree on totals.
package services

import (
	"fmt"

	"boqworks/boq"
)

// Row levels in the flattened export table.
const (
	LevelItem   = 0 // BOQ line item
	LevelLine   = 1 // material or labour line
	LevelMarkup = 2 // explicit markup component (internal view only)
)

// ExportRow represents a single row in the BOQ export.
type ExportRow struct {
	Level       int
	Index       string // "1", "1.1" etc; empty for markup rows
	Description string
	Qty         float64
	UOM         string
	Rate        float64
	Amount      float64
}

// ExportData holds everything a document renderer needs: header
// metadata, the flattened rows, and the project totals. ShowMarkup
// distinguishes the internal presentation (markup as explicit rows and
// summary lines) from the client one (markup folded into line rates).
type ExportData struct {
	Title           string
	ReferenceNumber string
	ProjectName     string
	ClientName      string
	Location        string
	CreatedDate     string
	ViewLabel       string
	ShowMarkup      bool

	Rows []ExportRow

	MaterialCost   float64
	LabourCost     float64
	BaseCost       float64
	Overhead       float64
	Profit         float64
	Discount       float64
	VAT            float64
	GrandTotal     float64
	AvgOverheadPct float64
	AvgProfitPct   float64
	AvgDiscountPct float64
	AvgVATPct      float64
}

// DocumentMeta carries the estimation header fields into an export.
type DocumentMeta struct {
	Title           string
	ReferenceNumber string
	ProjectName     string
	ClientName      string
	Location        string
	CreatedDate     string
}

// BuildExportData flattens a composed view into export rows. For the
// internal view each item closes with explicit Overhead / Profit /
// Discount / VAT rows; for the client view the material and labour
// lines already carry the distributed markup, so no markup row ever
// appears.
func BuildExportData(view boq.View, meta DocumentMeta) ExportData {
	data := ExportData{
		Title:           meta.Title,
		ReferenceNumber: meta.ReferenceNumber,
		ProjectName:     meta.ProjectName,
		ClientName:      meta.ClientName,
		Location:        meta.Location,
		CreatedDate:     meta.CreatedDate,
		ViewLabel:       viewLabel(view.Kind),
		ShowMarkup:      view.Kind == boq.ViewInternal,

		MaterialCost:   view.Totals.MaterialCost,
		LabourCost:     view.Totals.LabourCost,
		BaseCost:       view.Totals.BaseCost,
		Overhead:       view.Totals.Overhead,
		Profit:         view.Totals.Profit,
		Discount:       view.Totals.Discount,
		VAT:            view.Totals.VAT,
		GrandTotal:     view.Totals.GrandTotal,
		AvgOverheadPct: view.Totals.AvgOverheadPct,
		AvgProfitPct:   view.Totals.AvgProfitPct,
		AvgDiscountPct: view.Totals.AvgDiscountPct,
		AvgVATPct:      view.Totals.AvgVATPct,
	}

	for i, item := range view.Items {
		itemRate := 0.0
		if item.Quantity > 0 {
			itemRate = item.Markup.FinalPrice / item.Quantity
		}
		data.Rows = append(data.Rows, ExportRow{
			Level:       LevelItem,
			Index:       fmt.Sprintf("%d", i+1),
			Description: item.Description,
			Qty:         item.Quantity,
			UOM:         item.Unit,
			Rate:        itemRate,
			Amount:      item.Markup.FinalPrice,
		})

		line := 1
		for _, m := range item.Materials {
			data.Rows = append(data.Rows, ExportRow{
				Level:       LevelLine,
				Index:       fmt.Sprintf("%d.%d", i+1, line),
				Description: m.Name,
				Qty:         m.Quantity,
				UOM:         m.Unit,
				Rate:        m.Rate,
				Amount:      lineAmount(m.Amount, m.Quantity, m.Rate),
			})
			line++
		}
		for _, l := range item.Labour {
			data.Rows = append(data.Rows, ExportRow{
				Level:       LevelLine,
				Index:       fmt.Sprintf("%d.%d", i+1, line),
				Description: l.Type,
				Qty:         l.Quantity,
				UOM:         l.Unit,
				Rate:        l.Rate,
				Amount:      lineAmount(l.TotalCost, l.Quantity, l.Rate),
			})
			line++
		}

		if data.ShowMarkup {
			data.Rows = append(data.Rows, markupRows(item.Markup)...)
		}
	}

	return data
}

// markupRows emits the explicit markup block shown under each item in
// the internal presentation. Zero components are skipped so untouched
// items stay compact.
func markupRows(m boq.Markup) []ExportRow {
	var rows []ExportRow
	add := func(desc string, amount float64) {
		if amount == 0 {
			return
		}
		rows = append(rows, ExportRow{Level: LevelMarkup, Description: desc, Amount: amount})
	}
	add("Overhead", m.Overhead)
	add("Profit Margin", m.Profit)
	add("Less: Discount", m.Discount)
	add("VAT", m.VAT)
	return rows
}

func lineAmount(stored, qty, rate float64) float64 {
	if stored > 0 {
		return stored
	}
	return qty * rate
}

func viewLabel(kind boq.ViewKind) string {
	if kind == boq.ViewClient {
		return "Client Copy"
	}
	return "Internal Copy"
}
