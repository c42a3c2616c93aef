package services

import (
	"context"

	"workledger/internal/models"
)

const defaultPageSize = 10

func normalizePage(page, pageSize int) (int, int) {
	if page < 0 {
		page = 0
	}
	if pageSize <= 0 {
		pageSize = defaultPageSize
	}
	return page, pageSize
}

// List runs the filter-paginate engine. Owner, project and free-text
// search are pushed down to the store; billed/paid/type predicates are
// not expressible there in the combined case, so when any of them is
// present the whole native result set is fetched, filtered in memory in
// store order and re-paginated. O(n) per page, but the resulting pages
// are stable: no duplicates, no gaps, and totalCount reflects the
// post-filter survivors.
func (s *taskService) List(ctx context.Context, ownerEmail string, query models.TaskQuery, page, pageSize int) ([]models.Task, int64, error) {
	page, pageSize = normalizePage(page, pageSize)

	if !query.HasPostFilters() {
		return s.tasks.FindByOwner(ctx, ownerEmail, query.ProjectID, query.Search, pageSize, page*pageSize)
	}

	all, _, err := s.tasks.FindByOwner(ctx, ownerEmail, query.ProjectID, query.Search, 0, 0)
	if err != nil {
		return nil, 0, err
	}

	filtered := make([]models.Task, 0, len(all))
	for _, t := range all {
		if matchesPostFilters(t, query) {
			filtered = append(filtered, t)
		}
	}
	total := int64(len(filtered))

	start := page * pageSize
	if start >= len(filtered) {
		return []models.Task{}, total, nil
	}
	end := start + pageSize
	if end > len(filtered) {
		end = len(filtered)
	}
	return filtered[start:end], total, nil
}

// matchesPostFilters applies the predicates the store could not. Unknown
// type values are matched by literal equality, not rejected.
func matchesPostFilters(t models.Task, query models.TaskQuery) bool {
	if query.IsBilled != nil && t.IsBilled != *query.IsBilled {
		return false
	}
	if query.IsPaid != nil && t.IsPaid != *query.IsPaid {
		return false
	}
	if query.Type != nil && *query.Type != "" && t.Type != *query.Type {
		return false
	}
	return true
}
