package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/services"
)

// HandleMaterialImport returns a handler that receives a CSV or Excel
// upload of material lines for a line item. The file is validated
// first; rows are only inserted when every row is valid and the
// "commit" form field is "true". A validation-only pass returns the
// per-row errors so the client can fix the file and re-upload.
// Route: POST /estimations/{id}/items/{itemId}/materials/import
func HandleMaterialImport(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		lineItemID := e.Request.PathValue("itemId")
		if lineItemID == "" {
			return e.String(http.StatusBadRequest, "Missing line item ID")
		}

		lineItem, err := app.FindRecordById("line_items", lineItemID)
		if err != nil {
			return e.String(http.StatusNotFound, "Line item not found")
		}
		if estimationID := e.Request.PathValue("id"); estimationID != "" && lineItem.GetString("estimation") != estimationID {
			return e.String(http.StatusNotFound, "Line item not found")
		}

		// max 10MB
		if err := e.Request.ParseMultipartForm(10 << 20); err != nil {
			return e.String(http.StatusBadRequest, "File too large or invalid form data")
		}

		file, header, err := e.Request.FormFile("file")
		if err != nil {
			return e.String(http.StatusBadRequest, "Please select a file to upload")
		}
		defer file.Close()

		result, err := services.ValidateLineImport(file, header.Filename)
		if err != nil {
			log.Printf("material_import: %v", err)
			return e.String(http.StatusBadRequest, err.Error())
		}

		commit := e.Request.FormValue("commit") == "true"
		if !commit || result.ErrorRows > 0 {
			return e.JSON(http.StatusOK, map[string]any{
				"committed": false,
				"result":    result,
			})
		}

		materialLinesCol, err := app.FindCollectionByNameOrId("material_lines")
		if err != nil {
			log.Printf("material_import: could not find material_lines collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		// Appended lines continue the existing sort order.
		existing, err := app.FindRecordsByFilter(materialLinesCol, "line_item = {:itemId}", "-sort_order", 1, 0, map[string]any{"itemId": lineItem.Id})
		nextSort := 1
		if err == nil && len(existing) > 0 {
			nextSort = existing[0].GetInt("sort_order") + 1
		}

		imported := 0
		for _, line := range result.Lines {
			record := core.NewRecord(materialLinesCol)
			record.Set("line_item", lineItem.Id)
			record.Set("sort_order", nextSort)
			record.Set("name", line.Name)
			record.Set("qty", line.Quantity)
			record.Set("uom", line.Unit)
			record.Set("rate", line.Rate)
			record.Set("amount", line.Amount)

			if err := app.Save(record); err != nil {
				log.Printf("material_import: could not save line %q: %v", line.Name, err)
				continue
			}
			nextSort++
			imported++
		}

		return e.JSON(http.StatusOK, map[string]any{
			"committed": true,
			"imported":  imported,
			"result":    result,
		})
	}
}
