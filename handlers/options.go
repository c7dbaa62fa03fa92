package handlers

import (
	"net/http"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/services"
)

// HandleFormOptions returns the dropdown option lists the estimation
// form needs.
// Route: GET /options
func HandleFormOptions(_ *pocketbase.PocketBase) func(*core.RequestEvent) error {
	return func(e *core.RequestEvent) error {
		return e.JSON(http.StatusOK, map[string]any{
			"uom_options": services.UOMOptions,
			"vat_options": services.VATOptions,
		})
	}
}
