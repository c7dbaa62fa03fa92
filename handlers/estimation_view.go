package handlers

import (
	"log"
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/boq"
)

// HandleEstimationView returns a handler that serves the computed view
// of an estimation as JSON. Item-level computation errors are reported
// alongside the view; the affected items carry zero amounts.
// Route: GET /estimations/{id}/computed?view=internal|client
func HandleEstimationView(app *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		estimationID := e.Request.PathValue("id")
		if estimationID == "" {
			return e.String(http.StatusBadRequest, "Missing estimation ID")
		}

		est, _, err := buildEstimation(app, estimationID)
		if err != nil {
			log.Printf("estimation_view: %v", err)
			return e.String(http.StatusNotFound, "Estimation not found")
		}

		kind := viewParam(e)
		var view boq.View
		var composeErr error
		if kind == boq.ViewClient {
			view, composeErr = boq.ComposeClient(est)
		} else {
			view, composeErr = boq.ComposeInternal(est)
		}

		response := map[string]any{
			"title":            est.Title,
			"reference_number": est.ReferenceNumber,
			"view":             view,
		}
		if composeErr != nil {
			log.Printf("estimation_view: compose %s view: %v", kind, composeErr)
			response["warnings"] = composeErr.Error()
		}

		return e.JSON(http.StatusOK, response)
	}
}
