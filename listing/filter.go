// Package listing holds the pure filtering and sorting logic behind the
// portfolio and success-story listing pages. It never touches the store:
// input is a snapshot of the in-memory directory cache.
package listing

import (
	"sort"
	"strings"
	"time"

	"github.com/techschool/student-showcase-backend/models"
)

// Sort modes accepted by the portfolio listing.
const (
	SortLatest = "latest"
	SortOldest = "oldest"
	SortDate   = "date"
)

// State is the filter configuration of the portfolio listing.
type State struct {
	Search   string
	Category string // empty means all categories
	Sort     string // latest, oldest or date; unknown values behave as latest
	Date     string // date prefix ("2024-05" matches any day in May 2024); only used with SortDate
}

// Apply filters and sorts a project list according to state. The steps run
// in a fixed order: date filter, text search, category, then sort. The input
// slice is never mutated and the result is stable, so applying the same
// state twice yields the same list.
func Apply(projects []models.Project, state State) []models.Project {
	filtered := make([]models.Project, len(projects))
	copy(filtered, projects)

	if state.Sort == SortDate && state.Date != "" {
		filtered = keep(filtered, func(p models.Project) bool {
			return strings.HasPrefix(p.CreatedAt.Format(time.RFC3339), state.Date)
		})
	}

	if state.Search != "" {
		term := strings.ToLower(state.Search)
		filtered = keep(filtered, func(p models.Project) bool {
			return matchesSearch(p, term)
		})
	}

	if state.Category != "" {
		filtered = keep(filtered, func(p models.Project) bool {
			return p.Category == state.Category
		})
	}

	switch state.Sort {
	case SortOldest:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[i].CreatedAt.Before(filtered[j].CreatedAt)
		})
	case SortDate:
		// survivors stay in store order, which is already newest-first
	default:
		sort.SliceStable(filtered, func(i, j int) bool {
			return filtered[j].CreatedAt.Before(filtered[i].CreatedAt)
		})
	}

	return filtered
}

// matchesSearch reports whether term (already lowercased) is a substring of
// the project title, the student name, or any of the tool tags.
func matchesSearch(p models.Project, term string) bool {
	if strings.Contains(strings.ToLower(p.ProjectTitle), term) {
		return true
	}
	if strings.Contains(strings.ToLower(p.StudentName), term) {
		return true
	}
	for _, tech := range p.ToolsTechnologies {
		if strings.Contains(strings.ToLower(tech), term) {
			return true
		}
	}
	return false
}

func keep(projects []models.Project, pred func(models.Project) bool) []models.Project {
	kept := projects[:0]
	for _, p := range projects {
		if pred(p) {
			kept = append(kept, p)
		}
	}
	return kept
}

// FilterStories keeps stories whose achievement type equals the selected
// one; an empty selection or "all" passes everything through.
func FilterStories(stories []models.SuccessStory, achievementType string) []models.SuccessStory {
	filtered := make([]models.SuccessStory, 0, len(stories))
	for _, s := range stories {
		if achievementType == "" || achievementType == "all" || s.AchievementType == achievementType {
			filtered = append(filtered, s)
		}
	}
	return filtered
}
