// Package handlers contains the pocketbase route handlers: estimation
// creation, computed-view JSON, document exports and material line
// import.
package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/boq"
	"boqworks/services"
)

// buildEstimation loads an estimation and all nested line items,
// material lines and labour lines into the engine input tree, plus the
// document header metadata. Missing per-line amounts are left at zero;
// the engine derives them from qty x rate.
func buildEstimation(app *pocketbase.PocketBase, estimationID string) (boq.Estimation, services.DocumentMeta, error) {
	estRecord, err := app.FindRecordById("estimations", estimationID)
	if err != nil {
		return boq.Estimation{}, services.DocumentMeta{}, fmt.Errorf("estimation not found: %w", err)
	}

	lineItemsCol, err := app.FindCollectionByNameOrId("line_items")
	if err != nil {
		return boq.Estimation{}, services.DocumentMeta{}, fmt.Errorf("collection not found: %w", err)
	}

	materialLinesCol, err := app.FindCollectionByNameOrId("material_lines")
	if err != nil {
		return boq.Estimation{}, services.DocumentMeta{}, fmt.Errorf("collection not found: %w", err)
	}

	labourLinesCol, err := app.FindCollectionByNameOrId("labour_lines")
	if err != nil {
		return boq.Estimation{}, services.DocumentMeta{}, fmt.Errorf("collection not found: %w", err)
	}

	est := boq.Estimation{
		Title:             estRecord.GetString("title"),
		ReferenceNumber:   estRecord.GetString("reference_number"),
		VATAmountOverride: estRecord.GetFloat("vat_amount_override"),
	}

	if projectID := estRecord.GetString("project"); projectID != "" {
		if project, err := app.FindRecordById("projects", projectID); err == nil {
			est.ProjectName = project.GetString("name")
			est.ClientName = project.GetString("client_name")
			est.Location = project.GetString("location")
		}
	}

	items, err := app.FindRecordsByFilter(lineItemsCol, "estimation = {:estId}", "sort_order", 0, 0, map[string]any{"estId": estimationID})
	if err != nil {
		items = nil
	}

	for _, it := range items {
		lineItem := boq.LineItem{
			Description:       it.GetString("description"),
			Quantity:          it.GetFloat("qty"),
			Unit:              it.GetString("uom"),
			Rate:              it.GetFloat("rate"),
			OverheadPct:       it.GetFloat("overhead_percent"),
			ProfitPct:         it.GetFloat("profit_percent"),
			DiscountPct:       it.GetFloat("discount_percent"),
			VATPct:            it.GetFloat("vat_percent"),
			VATAmountOverride: it.GetFloat("vat_amount_override"),
		}

		materials, err := app.FindRecordsByFilter(materialLinesCol, "line_item = {:itemId}", "sort_order", 0, 0, map[string]any{"itemId": it.Id})
		if err != nil {
			materials = nil
		}
		for _, m := range materials {
			lineItem.Materials = append(lineItem.Materials, boq.MaterialLine{
				Name:     m.GetString("name"),
				Quantity: m.GetFloat("qty"),
				Unit:     m.GetString("uom"),
				Rate:     m.GetFloat("rate"),
				Amount:   m.GetFloat("amount"),
			})
		}

		labour, err := app.FindRecordsByFilter(labourLinesCol, "line_item = {:itemId}", "sort_order", 0, 0, map[string]any{"itemId": it.Id})
		if err != nil {
			labour = nil
		}
		for _, l := range labour {
			lineItem.Labour = append(lineItem.Labour, boq.LabourLine{
				Type:      l.GetString("type"),
				Quantity:  l.GetFloat("qty"),
				Unit:      l.GetString("uom"),
				Rate:      l.GetFloat("rate_per_hour"),
				TotalCost: l.GetFloat("total_cost"),
			})
		}

		est.Items = append(est.Items, lineItem)
	}

	createdDate := "—"
	if dt := estRecord.GetDateTime("created"); !dt.IsZero() {
		createdDate = dt.Time().Format("02 Jan 2006")
	}

	meta := services.DocumentMeta{
		Title:           est.Title,
		ReferenceNumber: est.ReferenceNumber,
		ProjectName:     est.ProjectName,
		ClientName:      est.ClientName,
		Location:        est.Location,
		CreatedDate:     createdDate,
	}

	return est, meta, nil
}

// viewParam resolves the ?view= query parameter. Unknown values fall
// back to the internal presentation.
func viewParam(e *core.RequestEvent) boq.ViewKind {
	if e.Request.URL.Query().Get("view") == string(boq.ViewClient) {
		return boq.ViewClient
	}
	return boq.ViewInternal
}

// composeView builds the requested presentation of an estimation. Item
// level computation errors are logged but do not abort the document;
// the affected items are rendered with zero amounts.
func composeView(est boq.Estimation, kind boq.ViewKind) boq.View {
	var view boq.View
	var err error
	if kind == boq.ViewClient {
		view, err = boq.ComposeClient(est)
	} else {
		view, err = boq.ComposeInternal(est)
	}
	if err != nil {
		log.Printf("compose %s view for %q: %v", kind, est.Title, err)
	}
	return view
}

// sanitizeFilename removes characters that are unsafe for filenames.
func sanitizeFilename(s string) string {
	s = strings.ReplaceAll(s, " ", "-")
	s = strings.ReplaceAll(s, "/", "-")
	s = strings.ReplaceAll(s, "\\", "-")
	s = strings.ReplaceAll(s, ":", "-")
	return s
}

// HandleExportExcel returns a handler that generates and downloads an
// Excel rendition of an estimation.
// Route: GET /estimations/{id}/export/excel?view=internal|client
func HandleExportExcel(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimationID := e.Request.PathValue("id")
		if estimationID == "" {
			return e.String(http.StatusBadRequest, "Missing estimation ID")
		}

		est, meta, err := buildEstimation(app, estimationID)
		if err != nil {
			log.Printf("export_excel: %v", err)
			return e.String(http.StatusNotFound, "Estimation not found")
		}

		view := composeView(est, viewParam(e))
		data := services.BuildExportData(view, meta)

		xlsxBytes, err := services.GenerateExcel(data)
		if err != nil {
			log.Printf("export_excel: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate Excel file")
		}

		filename := fmt.Sprintf("Estimation_%s_%d.xlsx", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(xlsxBytes)
		return nil
	}
}

// HandleExportPDF returns a handler that generates and downloads a PDF
// rendition of an estimation.
// Route: GET /estimations/{id}/export/pdf?view=internal|client
func HandleExportPDF(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimationID := e.Request.PathValue("id")
		if estimationID == "" {
			return e.String(http.StatusBadRequest, "Missing estimation ID")
		}

		est, meta, err := buildEstimation(app, estimationID)
		if err != nil {
			log.Printf("export_pdf: %v", err)
			return e.String(http.StatusNotFound, "Estimation not found")
		}

		view := composeView(est, viewParam(e))
		data := services.BuildExportData(view, meta)

		pdfBytes, err := services.GeneratePDF(data)
		if err != nil {
			log.Printf("export_pdf: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate PDF file")
		}

		filename := fmt.Sprintf("Estimation_%s_%d.pdf", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "application/pdf")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(pdfBytes)
		return nil
	}
}

// HandleExportCSV returns a handler that generates and downloads a CSV
// rendition of an estimation.
// Route: GET /estimations/{id}/export/csv?view=internal|client
func HandleExportCSV(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimationID := e.Request.PathValue("id")
		if estimationID == "" {
			return e.String(http.StatusBadRequest, "Missing estimation ID")
		}

		est, meta, err := buildEstimation(app, estimationID)
		if err != nil {
			log.Printf("export_csv: %v", err)
			return e.String(http.StatusNotFound, "Estimation not found")
		}

		view := composeView(est, viewParam(e))
		data := services.BuildExportData(view, meta)

		csvBytes, err := services.GenerateCSV(data)
		if err != nil {
			log.Printf("export_csv: failed to generate: %v", err)
			return e.String(http.StatusInternalServerError, "Failed to generate CSV file")
		}

		filename := fmt.Sprintf("Estimation_%s_%d.csv", sanitizeFilename(data.Title), time.Now().Year())

		e.Response.Header().Set("Content-Type", "text/csv")
		e.Response.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
		e.Response.Write(csvBytes)
		return nil
	}
}
