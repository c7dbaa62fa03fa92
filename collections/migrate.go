package collections

import (
	"fmt"
	"log"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/core"
)

// MigrateOrphanEstimationsToProjects finds all estimation records that
// have no project assigned and creates a project for each one, linking
// them together. Safe to call on every startup -- returns early if
// nothing to migrate.
func MigrateOrphanEstimationsToProjects(app *pocketbase.PocketBase) error {
	estimationsCol, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		return fmt.Errorf("migrate: could not find estimations collection: %w", err)
	}

	projectsCol, err := app.FindCollectionByNameOrId("projects")
	if err != nil {
		return fmt.Errorf("migrate: could not find projects collection: %w", err)
	}

	orphans, err := app.FindRecordsByFilter(
		estimationsCol,
		"project = ''",
		"",
		0,
		0,
		nil,
	)
	if err != nil {
		return fmt.Errorf("migrate: could not query orphan estimations: %w", err)
	}

	if len(orphans) == 0 {
		return nil
	}

	log.Printf("migrate: found %d orphan estimation(s) without a project -- creating projects...\n", len(orphans))

	for _, est := range orphans {
		title := est.GetString("title")
		ref := est.GetString("reference_number")

		projectRecord := core.NewRecord(projectsCol)
		projectRecord.Set("name", title)
		projectRecord.Set("client_name", "")
		projectRecord.Set("reference_number", ref)
		projectRecord.Set("status", "active")

		if err := app.Save(projectRecord); err != nil {
			log.Printf("migrate: failed to create project for estimation %q (%s): %v\n", title, est.Id, err)
			continue
		}

		est.Set("project", projectRecord.Id)
		if err := app.Save(est); err != nil {
			log.Printf("migrate: failed to link estimation %q (%s) to project %s: %v\n", title, est.Id, projectRecord.Id, err)
			continue
		}

		log.Printf("migrate: linked estimation %q to new project %s\n", title, projectRecord.Id)
	}

	return nil
}
