package services

import (
	"context"
	"testing"

	"workledger/internal/models"
)

func boolPtr(b bool) *bool    { return &b }
func strPtr(s string) *string { return &s }
func int64Ptr(i int64) *int64 { return &i }

// seedTasks stores tasks directly through the repo so the listing tests
// control every field.
func seedTasks(t *testing.T, repo *fakeTaskRepo, tasks []models.Task) {
	t.Helper()

	for i := range tasks {
		task := tasks[i]
		if err := repo.Store(context.Background(), &task); err != nil {
			t.Fatalf("failed to seed task: %v", err)
		}
	}
}

func queryTasks(owner string, n int, mutate func(i int, t *models.Task)) []models.Task {
	out := make([]models.Task, n)
	for i := range out {
		out[i] = models.Task{
			ProjectID:   1,
			TicketID:    "TSK-2025-SEED0" + string(rune('A'+i)),
			Title:       "task",
			StartDate:   date(2025, 3, 1+i),
			HoursWorked: 1,
			RateUsed:    10,
			Type:        "CORRETTIVA",
			OwnerEmail:  owner,
		}
		if mutate != nil {
			mutate(i, &out[i])
		}
	}
	return out
}

func TestList_NativePath(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 5, nil))

	page, total, err := svc.List(context.Background(), "dev@example.com", models.TaskQuery{}, 1, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 5 {
		t.Fatalf("expected total 5, got %d", total)
	}
	if len(page) != 2 {
		t.Fatalf("expected page of 2, got %d", len(page))
	}
}

func TestList_OwnerIsolation(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 3, nil))
	seedTasks(t, tasks, queryTasks("other@example.com", 2, nil))

	_, total, err := svc.List(context.Background(), "dev@example.com", models.TaskQuery{}, 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected only the owner's 3 tasks, got %d", total)
	}
}

func TestList_FreeTextSearch(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 4, func(i int, task *models.Task) {
		switch i {
		case 0:
			task.Title = "Fix Login Redirect"
		case 1:
			task.Description = "broken login form"
		case 2:
			task.TicketID = "TSK-2025-LOGIN1"
		case 3:
			task.Title = "unrelated"
		}
	}))

	// Case-insensitive, matched across title, description and ticket id.
	page, total, err := svc.List(context.Background(), "dev@example.com",
		models.TaskQuery{Search: "LOGIN"}, 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 || len(page) != 3 {
		t.Fatalf("expected 3 matches, got total=%d page=%d", total, len(page))
	}
}

func TestList_SearchMatchesRenderedDate(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 3, func(i int, task *models.Task) {
		task.StartDate = date(2025, 3, 1+i) // 01/03, 02/03, 03/03
	}))

	// A date typed the way it is displayed finds the task.
	_, total, err := svc.List(context.Background(), "dev@example.com",
		models.TaskQuery{Search: "02/03/2025"}, 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected 1 match on the rendered date, got %d", total)
	}
}

func TestList_SearchCombinesWithPostFilters(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 4, func(i int, task *models.Task) {
		if i < 2 {
			task.Title = "login fix"
		}
		task.IsBilled = i%2 == 0
	}))

	// Search narrows the native set before the in-memory billed filter.
	page, total, err := svc.List(context.Background(), "dev@example.com",
		models.TaskQuery{Search: "login", IsBilled: boolPtr(true)}, 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 || len(page) != 1 {
		t.Fatalf("expected 1 billed login task, got total=%d page=%d", total, len(page))
	}
	if !page[0].IsBilled || page[0].Title != "login fix" {
		t.Fatalf("unexpected match: %+v", page[0])
	}
}

func TestList_PostFilterPath(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	// 5 tasks; 3 of them unbilled CORRETTIVA, the others must not match.
	seedTasks(t, tasks, queryTasks("dev@example.com", 5, func(i int, task *models.Task) {
		switch i {
		case 3:
			task.IsBilled = true
		case 4:
			task.Type = "EVOLUTIVA"
		}
	}))

	query := models.TaskQuery{Type: strPtr("CORRETTIVA"), IsBilled: boolPtr(false)}

	first, total, err := svc.List(context.Background(), "dev@example.com", query, 0, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3 after post-filtering, got %d", total)
	}
	if len(first) != 2 {
		t.Fatalf("expected first page of 2, got %d", len(first))
	}

	second, total, err := svc.List(context.Background(), "dev@example.com", query, 1, 2)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3 on the second page too, got %d", total)
	}
	if len(second) != 1 {
		t.Fatalf("expected second page of 1, got %d", len(second))
	}

	// No duplicates and no gaps across pages.
	seen := map[int64]bool{}
	for _, task := range append(first, second...) {
		if seen[task.ID] {
			t.Fatalf("task %d appeared on two pages", task.ID)
		}
		seen[task.ID] = true
		if task.IsBilled || task.Type != "CORRETTIVA" {
			t.Fatalf("post filters leaked a non-matching task: %+v", task)
		}
	}
	if len(seen) != 3 {
		t.Fatalf("expected 3 distinct tasks across pages, got %d", len(seen))
	}
}

func TestList_PostFilterPageBeyondEnd(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 3, nil))

	page, total, err := svc.List(context.Background(), "dev@example.com",
		models.TaskQuery{IsBilled: boolPtr(false)}, 5, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 3 {
		t.Fatalf("expected total 3, got %d", total)
	}
	if page == nil || len(page) != 0 {
		t.Fatalf("expected empty page, got %v", page)
	}
}

func TestList_ProjectFilterCombinesWithPostFilters(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 4, func(i int, task *models.Task) {
		if i >= 2 {
			task.ProjectID = 2
		}
		task.IsPaid = i%2 == 0
	}))

	page, total, err := svc.List(context.Background(), "dev@example.com",
		models.TaskQuery{ProjectID: int64Ptr(2), IsPaid: boolPtr(true)}, 0, 10)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 1 {
		t.Fatalf("expected exactly one paid task in project 2, got %d", total)
	}
	if len(page) != 1 || page[0].ProjectID != 2 || !page[0].IsPaid {
		t.Fatalf("unexpected page: %+v", page)
	}
}

func TestList_NormalizesPagination(t *testing.T) {
	t.Parallel()

	tasks, _, _, svc := newTestTaskService(t)
	seedTasks(t, tasks, queryTasks("dev@example.com", 12, nil))

	page, total, err := svc.List(context.Background(), "dev@example.com", models.TaskQuery{}, -3, 0)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if total != 12 {
		t.Fatalf("expected total 12, got %d", total)
	}
	if len(page) != defaultPageSize {
		t.Fatalf("expected default page size %d, got %d", defaultPageSize, len(page))
	}
}
