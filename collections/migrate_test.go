package collections_test

import (
	"testing"

	"github.com/pocketbase/pocketbase/core"

	"boqworks/collections"
	"boqworks/testhelpers"
)

func TestMigrateOrphanEstimations_LinksToNewProject(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	estimationsCol, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		t.Fatalf("find estimations collection: %v", err)
	}

	orphan := core.NewRecord(estimationsCol)
	orphan.Set("title", "Legacy Estimation")
	orphan.Set("reference_number", "EST-LEGACY-24-001")
	if err := app.Save(orphan); err != nil {
		t.Fatalf("save orphan estimation: %v", err)
	}

	if err := collections.MigrateOrphanEstimationsToProjects(app); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	migrated, err := app.FindRecordById("estimations", orphan.Id)
	if err != nil {
		t.Fatalf("reload estimation: %v", err)
	}
	projectID := migrated.GetString("project")
	if projectID == "" {
		t.Fatal("orphan estimation was not linked to a project")
	}

	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		t.Fatalf("load created project: %v", err)
	}
	if project.GetString("name") != "Legacy Estimation" {
		t.Errorf("project name = %q, want the estimation title", project.GetString("name"))
	}
	if project.GetString("reference_number") != "EST-LEGACY-24-001" {
		t.Errorf("project reference = %q", project.GetString("reference_number"))
	}
}

func TestMigrateOrphanEstimations_NoOrphans(t *testing.T) {
	app := testhelpers.NewTestApp(t)
	proj := testhelpers.CreateTestProject(t, app, "Owned Project")
	testhelpers.CreateTestEstimation(t, app, proj.Id, "Owned Estimation")

	if err := collections.MigrateOrphanEstimationsToProjects(app); err != nil {
		t.Fatalf("migrate error: %v", err)
	}

	projects, err := app.FindAllRecords("projects")
	if err != nil {
		t.Fatalf("query projects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("expected no new projects, got %d", len(projects))
	}
}

func TestMigrateOrphanEstimations_Idempotent(t *testing.T) {
	app := testhelpers.NewTestApp(t)

	estimationsCol, err := app.FindCollectionByNameOrId("estimations")
	if err != nil {
		t.Fatalf("find estimations collection: %v", err)
	}
	orphan := core.NewRecord(estimationsCol)
	orphan.Set("title", "Twice Migrated")
	if err := app.Save(orphan); err != nil {
		t.Fatalf("save orphan estimation: %v", err)
	}

	if err := collections.MigrateOrphanEstimationsToProjects(app); err != nil {
		t.Fatalf("first migrate error: %v", err)
	}
	if err := collections.MigrateOrphanEstimationsToProjects(app); err != nil {
		t.Fatalf("second migrate error: %v", err)
	}

	projects, err := app.FindAllRecords("projects")
	if err != nil {
		t.Fatalf("query projects: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("expected 1 project after double migrate, got %d", len(projects))
	}
}
