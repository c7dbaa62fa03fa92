package services

import (
	"fmt"
	"time"

	"github.com/pocketbase/pocketbase"
)

// formatEstimationNumber constructs the reference number string.
// Uses "-" as separator to avoid conflicts with project references
// that contain "/".
func formatEstimationNumber(projectRef string, year int, sequence int) string {
	return fmt.Sprintf("EST-%s-%d-%03d", projectRef, year%100, sequence)
}

// GenerateEstimationNumber creates the next estimation reference for a
// project. Format: EST-{project_ref}-{yy}-{sequence}
//   - project_ref: project's reference_number (falls back to project ID if empty)
//   - yy: two-digit year
//   - sequence: 3-digit zero-padded, per project per year
func GenerateEstimationNumber(app *pocketbase.PocketBase, projectID string, now time.Time) (string, error) {
	project, err := app.FindRecordById("projects", projectID)
	if err != nil {
		return "", fmt.Errorf("project not found: %w", err)
	}

	projectRef := project.GetString("reference_number")
	if projectRef == "" {
		projectRef = projectID
	}

	prefix := fmt.Sprintf("EST-%s-%d-", projectRef, now.Year()%100)

	existing, err := app.FindRecordsByFilter(
		"estimations",
		"project = {:projectId} && reference_number ~ {:prefix}",
		"",
		0,
		0,
		map[string]any{
			"projectId": projectID,
			"prefix":    prefix + "%",
		},
	)
	if err != nil {
		// No matching records yet -- start the sequence at 1.
		existing = nil
	}

	return formatEstimationNumber(projectRef, now.Year(), len(existing)+1), nil
}
