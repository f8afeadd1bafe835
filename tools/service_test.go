package tools

import (
	"context"
	"errors"
	"testing"

	"todo-manager-api/domain"
)

func ptrString(s string) *string { return &s }
func ptrBool(b bool) *bool       { return &b }
func ptrInt(i int) *int          { return &i }

func TestCreateAssignsDefaults(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	res, err := svc.Create(context.Background(), CreateParams{Title: "Buy milk", Role: "personal"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	todo := res.Todo
	if todo.ID == "" {
		t.Fatalf("expected assigned id")
	}
	if todo.Completed || todo.Archived {
		t.Fatalf("expected fresh todo to be active: %+v", todo)
	}
	if todo.Classification != domain.ClassificationImportant {
		t.Fatalf("unexpected classification: %q", todo.Classification)
	}
	if todo.CreatedAt == "" || todo.CreatedAt != todo.UpdatedAt {
		t.Fatalf("expected createdAt == updatedAt, got %q / %q", todo.CreatedAt, todo.UpdatedAt)
	}
	if len(fs.events) != 1 || fs.events[0].Type != domain.TodoCreated || fs.events[0].TodoID != todo.ID {
		t.Fatalf("unexpected events: %#v", fs.events)
	}
}

func TestCreateAssignsUniqueIDs(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		res, err := svc.Create(context.Background(), CreateParams{Title: "t", Role: "user"})
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[res.Todo.ID] {
			t.Fatalf("duplicate id %q", res.Todo.ID)
		}
		seen[res.Todo.ID] = true
	}
}

func TestCreateHonorsSuppliedFields(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	res, err := svc.Create(context.Background(), CreateParams{
		Title:          "Ship release",
		Details:        ptrString("cut the tag"),
		Completed:      ptrBool(true),
		DueDate:        ptrString("2026-09-15"),
		Role:           "professional",
		Classification: ptrString("urgent"),
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	todo := res.Todo
	if todo.Details != "cut the tag" || !todo.Completed || todo.Role != "professional" {
		t.Fatalf("unexpected todo: %+v", todo)
	}
	if todo.DueDate == nil || *todo.DueDate != "2026-09-15" {
		t.Fatalf("unexpected due date: %v", todo.DueDate)
	}
	if todo.Classification != domain.ClassificationUrgent {
		t.Fatalf("unexpected classification: %q", todo.Classification)
	}
	if todo.Archived {
		t.Fatalf("create must never archive")
	}
}

func TestCreatePropagatesStoreError(t *testing.T) {
	fs := newFakeStore()
	fs.insertErr = errors.New("quota exceeded")
	svc := NewService(fs)

	if _, err := svc.Create(context.Background(), CreateParams{Title: "x", Role: "user"}); err == nil {
		t.Fatalf("expected store error")
	}
	if len(fs.events) != 0 {
		t.Fatalf("no event should be published on failure")
	}
}

func TestUpdateWithNoFieldsFailsBeforeWriting(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	_, err := svc.Update(context.Background(), UpdateParams{ID: "todo-1"})
	if !errors.Is(err, domain.ErrNoFields) {
		t.Fatalf("expected ErrNoFields, got %v", err)
	}
	if fs.mergeCalls != 0 {
		t.Fatalf("expected no write, got %d merge calls", fs.mergeCalls)
	}
}

func TestUpdatePreservesUnsuppliedFields(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	created, err := svc.Create(context.Background(), CreateParams{
		Title:   "Original",
		Details: ptrString("keep me"),
		Role:    "personal",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.Update(context.Background(), UpdateParams{ID: created.Todo.ID, Title: ptrString("Renamed")})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	todo := res.Todo
	if todo.Title != "Renamed" {
		t.Fatalf("unexpected title: %q", todo.Title)
	}
	if todo.Details != "keep me" || todo.Role != "personal" {
		t.Fatalf("unsupplied fields must be preserved: %+v", todo)
	}
	if todo.CreatedAt != created.Todo.CreatedAt {
		t.Fatalf("createdAt must never change")
	}
	if todo.UpdatedAt < created.Todo.UpdatedAt {
		t.Fatalf("updatedAt went backwards: %q < %q", todo.UpdatedAt, created.Todo.UpdatedAt)
	}
}

func TestUpdateMissingTodo(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	_, err := svc.Update(context.Background(), UpdateParams{ID: "ghost", Title: ptrString("x")})
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestCompleteSetsCompletedAndNotes(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	created, err := svc.Create(context.Background(), CreateParams{Title: "Buy milk", Role: "personal"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.Complete(context.Background(), CompleteParams{
		ID:              created.Todo.ID,
		CompletionNotes: ptrString("done"),
		Archive:         ptrBool(true),
	})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	todo := res.Todo
	if !todo.Completed || !todo.Archived {
		t.Fatalf("expected completed and archived: %+v", todo)
	}
	if todo.CompletionNotes == nil || *todo.CompletionNotes != "done" {
		t.Fatalf("unexpected notes: %v", todo.CompletionNotes)
	}
	if !(todo.UpdatedAt >= todo.CreatedAt) {
		t.Fatalf("updatedAt must not precede createdAt")
	}
	last := fs.events[len(fs.events)-1]
	if last.Type != domain.TodoCompleted {
		t.Fatalf("unexpected event: %#v", last)
	}
}

func TestCompleteWithoutArchiveLeavesArchivedAlone(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	created, err := svc.Create(context.Background(), CreateParams{Title: "t", Role: "user"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created.Todo.ID

	res, err := svc.Complete(context.Background(), CompleteParams{ID: id})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if res.Todo.Archived {
		t.Fatalf("complete without archive must not archive")
	}
	if res.Todo.CompletionNotes != nil {
		t.Fatalf("notes must stay untouched when not supplied")
	}

	// Archive explicitly, then complete again without the flag: the record
	// must stay archived.
	if _, err := svc.Complete(context.Background(), CompleteParams{ID: id, Archive: ptrBool(true)}); err != nil {
		t.Fatalf("complete with archive: %v", err)
	}
	res, err = svc.Complete(context.Background(), CompleteParams{ID: id})
	if err != nil {
		t.Fatalf("complete again: %v", err)
	}
	if !res.Todo.Archived {
		t.Fatalf("archived flag must never be unset by complete")
	}
}

func TestCompleteArchiveFalseDoesNotUnarchive(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	created, err := svc.Create(context.Background(), CreateParams{Title: "t", Role: "user"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created.Todo.ID
	if _, err := svc.Complete(context.Background(), CompleteParams{ID: id, Archive: ptrBool(true)}); err != nil {
		t.Fatalf("archive: %v", err)
	}

	res, err := svc.Complete(context.Background(), CompleteParams{ID: id, Archive: ptrBool(false)})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if !res.Todo.Archived {
		t.Fatalf("archive=false must not unarchive")
	}
}

func TestDeleteIsIdempotent(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	created, err := svc.Create(context.Background(), CreateParams{Title: "t", Role: "user"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	id := created.Todo.ID

	for i := 0; i < 2; i++ {
		res, err := svc.Delete(context.Background(), DeleteParams{ID: id})
		if err != nil {
			t.Fatalf("delete %d: %v", i, err)
		}
		if res.DeletedID != id {
			t.Fatalf("unexpected echoed id: %q", res.DeletedID)
		}
	}

	list, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	for _, todo := range list.Todos {
		if todo.ID == id {
			t.Fatalf("deleted todo still listed")
		}
	}
}

func TestListAppliesDefaultsAndFilters(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	if _, err := svc.List(context.Background(), ListParams{}); err != nil {
		t.Fatalf("list: %v", err)
	}
	if fs.listFilter.Limit != DefaultListLimit {
		t.Fatalf("expected default limit %d, got %d", DefaultListLimit, fs.listFilter.Limit)
	}
	if fs.listFilter.Completed != nil || fs.listFilter.Archived != nil || fs.listFilter.Role != nil {
		t.Fatalf("absent params must not constrain: %+v", fs.listFilter)
	}

	if _, err := svc.List(context.Background(), ListParams{
		Completed: ptrBool(true),
		Archived:  ptrBool(false),
		Role:      ptrString("personal"),
		From:      ptrString("2026-01-01T00:00:00.000Z"),
		To:        ptrString("2026-12-31T00:00:00.000Z"),
		Limit:     ptrInt(5),
	}); err != nil {
		t.Fatalf("filtered list: %v", err)
	}
	f := fs.listFilter
	if f.Completed == nil || !*f.Completed || f.Archived == nil || *f.Archived {
		t.Fatalf("unexpected boolean filters: %+v", f)
	}
	if f.Role == nil || *f.Role != "personal" || f.From == "" || f.To == "" || f.Limit != 5 {
		t.Fatalf("unexpected filter: %+v", f)
	}
}

func TestListNeverReturnsNil(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	res, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if res.Todos == nil {
		t.Fatalf("expected empty slice, got nil")
	}
}

func TestListFiltersCompleted(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	if _, err := svc.Create(context.Background(), CreateParams{Title: "open", Role: "user"}); err != nil {
		t.Fatalf("create: %v", err)
	}
	doneRes, err := svc.Create(context.Background(), CreateParams{Title: "done", Role: "user", Completed: ptrBool(true)})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	res, err := svc.List(context.Background(), ListParams{Completed: ptrBool(true)})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(res.Todos) != 1 || res.Todos[0].ID != doneRes.Todo.ID {
		t.Fatalf("unexpected todos: %#v", res.Todos)
	}
}

func TestCreateListRoundTrip(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)

	created, err := svc.Create(context.Background(), CreateParams{Title: "Buy milk", Role: "personal"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	list, err := svc.List(context.Background(), ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var found *domain.Todo
	for i := range list.Todos {
		if list.Todos[i].ID == created.Todo.ID {
			found = &list.Todos[i]
		}
	}
	if found == nil {
		t.Fatalf("created todo missing from listing")
	}
	if found.Title != "Buy milk" || found.Role != "personal" || found.Completed ||
		found.Classification != domain.ClassificationImportant || found.Archived {
		t.Fatalf("round-tripped todo mismatch: %+v", found)
	}
}

func TestEnqueueFailureDoesNotFailOperation(t *testing.T) {
	fs := newFakeStore()
	fs.enqueueErr = errors.New("queue offline")
	svc := NewService(fs)

	if _, err := svc.Create(context.Background(), CreateParams{Title: "t", Role: "user"}); err != nil {
		t.Fatalf("create should succeed despite event failure: %v", err)
	}
}

func TestFullLifecycleScenario(t *testing.T) {
	fs := newFakeStore()
	svc := NewService(fs)
	ctx := context.Background()

	created, err := svc.Create(ctx, CreateParams{Title: "Buy milk", Role: "personal"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	todo := created.Todo
	if todo.Completed || todo.Archived || todo.Classification != domain.ClassificationImportant {
		t.Fatalf("unexpected fresh todo: %+v", todo)
	}

	completed, err := svc.Complete(ctx, CompleteParams{ID: todo.ID, CompletionNotes: ptrString("done"), Archive: ptrBool(true)})
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	got := completed.Todo
	if !got.Completed || !got.Archived || got.CompletionNotes == nil || *got.CompletionNotes != "done" {
		t.Fatalf("unexpected completed todo: %+v", got)
	}
	if !(got.UpdatedAt >= got.CreatedAt) {
		t.Fatalf("updatedAt must not precede createdAt")
	}

	deleted, err := svc.Delete(ctx, DeleteParams{ID: todo.ID})
	if err != nil {
		t.Fatalf("delete: %v", err)
	}
	if deleted.DeletedID != todo.ID {
		t.Fatalf("unexpected echoed id: %q", deleted.DeletedID)
	}

	list, err := svc.List(ctx, ListParams{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list.Todos) != 0 {
		t.Fatalf("expected empty listing, got %#v", list.Todos)
	}
}
