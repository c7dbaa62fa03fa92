package handlers

import (
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/services"
)

// HandleEstimationCreate returns a handler that processes the
// estimation creation form. Line items and their nested material and
// labour lines are submitted as indexed form fields
// (items[0].description, items[0].materials[0].name, ...); parsing of
// each list stops at the first missing description/name.
// Route: POST /projects/{projectId}/estimations
func HandleEstimationCreate(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		projectID := e.Request.PathValue("projectId")
		if projectID == "" {
			return e.String(http.StatusBadRequest, "Missing project ID")
		}

		if _, err := app.FindRecordById("projects", projectID); err != nil {
			return e.String(http.StatusNotFound, "Project not found")
		}

		if err := e.Request.ParseForm(); err != nil {
			log.Printf("estimation_create: could not parse form: %v", err)
			return e.String(http.StatusBadRequest, "Invalid form data")
		}

		title := strings.TrimSpace(e.Request.FormValue("title"))
		if title == "" {
			return e.String(http.StatusBadRequest, "Estimation title is required")
		}

		existing, _ := app.FindRecordsByFilter("estimations", "title = {:title} && project = {:project}", "", 1, 0, map[string]any{"title": title, "project": projectID})
		if len(existing) > 0 {
			return e.String(http.StatusBadRequest, "An estimation with this title already exists for the project")
		}

		refNumber, err := services.GenerateEstimationNumber(app, projectID, time.Now())
		if err != nil {
			log.Printf("estimation_create: could not generate reference number: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		estimationsCol, err := app.FindCollectionByNameOrId("estimations")
		if err != nil {
			log.Printf("estimation_create: could not find estimations collection: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		vatOverride, _ := strconv.ParseFloat(e.Request.FormValue("vat_amount_override"), 64)

		estRecord := core.NewRecord(estimationsCol)
		estRecord.Set("project", projectID)
		estRecord.Set("title", title)
		estRecord.Set("reference_number", refNumber)
		estRecord.Set("vat_amount_override", vatOverride)

		if err := app.Save(estRecord); err != nil {
			log.Printf("estimation_create: could not save estimation: %v", err)
			return e.String(http.StatusInternalServerError, "Internal error")
		}

		estimationID := estRecord.Id

		lineItemsCol, err := app.FindCollectionByNameOrId("line_items")
		if err != nil {
			log.Printf("estimation_create: could not find line_items collection: %v", err)
			return e.JSON(http.StatusCreated, map[string]any{"id": estimationID, "reference_number": refNumber})
		}

		materialLinesCol, err := app.FindCollectionByNameOrId("material_lines")
		if err != nil {
			log.Printf("estimation_create: could not find material_lines collection: %v", err)
			materialLinesCol = nil
		}

		labourLinesCol, err := app.FindCollectionByNameOrId("labour_lines")
		if err != nil {
			log.Printf("estimation_create: could not find labour_lines collection: %v", err)
			labourLinesCol = nil
		}

		for i := 0; ; i++ {
			prefix := fmt.Sprintf("items[%d].", i)
			desc := strings.TrimSpace(e.Request.FormValue(prefix + "description"))
			if desc == "" {
				break
			}

			qty, _ := strconv.ParseFloat(e.Request.FormValue(prefix+"qty"), 64)
			uom := e.Request.FormValue(prefix + "uom")
			if uom == "" {
				uom = "Nos"
			}
			overheadPct, _ := strconv.ParseFloat(e.Request.FormValue(prefix+"overhead_percent"), 64)
			profitPct, _ := strconv.ParseFloat(e.Request.FormValue(prefix+"profit_percent"), 64)
			discountPct, _ := strconv.ParseFloat(e.Request.FormValue(prefix+"discount_percent"), 64)
			vatPct, _ := strconv.ParseFloat(e.Request.FormValue(prefix+"vat_percent"), 64)
			itemVATOverride, _ := strconv.ParseFloat(e.Request.FormValue(prefix+"vat_amount_override"), 64)

			itemRecord := core.NewRecord(lineItemsCol)
			itemRecord.Set("estimation", estimationID)
			itemRecord.Set("sort_order", i+1)
			itemRecord.Set("description", desc)
			itemRecord.Set("qty", qty)
			itemRecord.Set("uom", uom)
			itemRecord.Set("overhead_percent", overheadPct)
			itemRecord.Set("profit_percent", profitPct)
			itemRecord.Set("discount_percent", discountPct)
			itemRecord.Set("vat_percent", vatPct)
			itemRecord.Set("vat_amount_override", itemVATOverride)

			if err := app.Save(itemRecord); err != nil {
				log.Printf("estimation_create: could not save line item %d: %v", i+1, err)
				continue
			}

			lineItemID := itemRecord.Id

			if materialLinesCol != nil {
				for mi := 0; ; mi++ {
					mPrefix := fmt.Sprintf("items[%d].materials[%d].", i, mi)
					name := strings.TrimSpace(e.Request.FormValue(mPrefix + "name"))
					if name == "" {
						break
					}

					mQty, _ := strconv.ParseFloat(e.Request.FormValue(mPrefix+"qty"), 64)
					mUOM := e.Request.FormValue(mPrefix + "uom")
					if mUOM == "" {
						mUOM = "Nos"
					}
					mRate, _ := strconv.ParseFloat(e.Request.FormValue(mPrefix+"rate"), 64)
					mAmount, _ := strconv.ParseFloat(e.Request.FormValue(mPrefix+"amount"), 64)
					if mAmount == 0 {
						mAmount = mQty * mRate
					}

					materialRecord := core.NewRecord(materialLinesCol)
					materialRecord.Set("line_item", lineItemID)
					materialRecord.Set("sort_order", mi+1)
					materialRecord.Set("name", name)
					materialRecord.Set("qty", mQty)
					materialRecord.Set("uom", mUOM)
					materialRecord.Set("rate", mRate)
					materialRecord.Set("amount", mAmount)

					if err := app.Save(materialRecord); err != nil {
						log.Printf("estimation_create: could not save material line %d.%d: %v", i+1, mi+1, err)
					}
				}
			}

			if labourLinesCol != nil {
				for li := 0; ; li++ {
					lPrefix := fmt.Sprintf("items[%d].labour[%d].", i, li)
					labourType := strings.TrimSpace(e.Request.FormValue(lPrefix + "type"))
					if labourType == "" {
						break
					}

					lQty, _ := strconv.ParseFloat(e.Request.FormValue(lPrefix+"qty"), 64)
					lUOM := e.Request.FormValue(lPrefix + "uom")
					if lUOM == "" {
						lUOM = "Hour"
					}
					lRate, _ := strconv.ParseFloat(e.Request.FormValue(lPrefix+"rate_per_hour"), 64)
					lTotal, _ := strconv.ParseFloat(e.Request.FormValue(lPrefix+"total_cost"), 64)

					labourRecord := core.NewRecord(labourLinesCol)
					labourRecord.Set("line_item", lineItemID)
					labourRecord.Set("sort_order", li+1)
					labourRecord.Set("type", labourType)
					labourRecord.Set("qty", lQty)
					labourRecord.Set("uom", lUOM)
					labourRecord.Set("rate_per_hour", lRate)
					labourRecord.Set("total_cost", lTotal)

					if err := app.Save(labourRecord); err != nil {
						log.Printf("estimation_create: could not save labour line %d.%d: %v", i+1, li+1, err)
					}
				}
			}
		}

		return e.JSON(http.StatusCreated, map[string]any{
			"id":               estimationID,
			"reference_number": refNumber,
		})
	}
}
