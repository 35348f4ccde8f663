package app

import (
	"fmt"
	"strings"

	"meal-planner/internal/planner"
)

// Summarize describes an import's outcome for the user.
func Summarize(week planner.Week, added, updated, removed int) string {
	if added == 0 && updated == 0 && removed == 0 {
		return fmt.Sprintf("No changes for week of %s.", week)
	}

	var parts []string
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if updated > 0 {
		parts = append(parts, fmt.Sprintf("%d updated", updated))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	return fmt.Sprintf("Week of %s: %s.", week, strings.Join(parts, ", "))
}
