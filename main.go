package main

import (
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"

	"boqworks/collections"
	"boqworks/handlers"
)

func main() {
	app := pocketbase.New()

	// Create collections and seed data on startup
	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		collections.Setup(app)
		if err := collections.Seed(app); err != nil {
			log.Printf("Warning: seed data failed: %v", err)
		}
		if err := collections.MigrateOrphanEstimationsToProjects(app); err != nil {
			log.Printf("Warning: project migration failed: %v", err)
		}
		return se.Next()
	})

	app.OnServe().BindFunc(func(se *core.ServeEvent) error {
		// Apply active project middleware globally
		se.Router.BindFunc(handlers.ActiveProjectMiddleware(app))

		// ── Form options ─────────────────────────────────────────
		se.Router.GET("/options", handlers.HandleFormOptions(app))

		// ── Estimations ──────────────────────────────────────────
		se.Router.POST("/projects/{projectId}/estimations", handlers.HandleEstimationCreate(app))
		se.Router.GET("/estimations/{id}/computed", handlers.HandleEstimationView(app))

		// ── Document exports ─────────────────────────────────────
		se.Router.GET("/estimations/{id}/export/excel", handlers.HandleExportExcel(app))
		se.Router.GET("/estimations/{id}/export/pdf", handlers.HandleExportPDF(app))
		se.Router.GET("/estimations/{id}/export/csv", handlers.HandleExportCSV(app))

		// ── Material line import ─────────────────────────────────
		se.Router.POST("/estimations/{id}/items/{itemId}/materials/import", handlers.HandleMaterialImport(app))

		return se.Next()
	})

	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
}
