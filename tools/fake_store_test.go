package tools

import (
	"context"
	"fmt"

	"todo-manager-api/domain"
)

type fakeStore struct {
	todos  map[string]domain.Todo
	order  []string
	events []domain.TodoEvent

	nextID     int
	listFilter domain.ListFilter
	listErr    error
	insertErr  error
	mergeErr   error
	deleteErr  error
	enqueueErr error
	mergeCalls int
}

func newFakeStore() *fakeStore {
	return &fakeStore{todos: map[string]domain.Todo{}}
}

func (f *fakeStore) ListTodos(ctx context.Context, filter domain.ListFilter) ([]domain.Todo, error) {
	f.listFilter = filter
	if f.listErr != nil {
		return nil, f.listErr
	}
	todos := []domain.Todo{}
	for _, id := range f.order {
		t, ok := f.todos[id]
		if !ok {
			continue
		}
		if filter.Completed != nil && t.Completed != *filter.Completed {
			continue
		}
		if filter.Archived != nil && t.Archived != *filter.Archived {
			continue
		}
		if filter.Role != nil && t.Role != *filter.Role {
			continue
		}
		if filter.From != "" && t.CreatedAt < filter.From {
			continue
		}
		if filter.To != "" && t.UpdatedAt > filter.To {
			continue
		}
		todos = append(todos, t)
		if filter.Limit > 0 && len(todos) == filter.Limit {
			break
		}
	}
	return todos, nil
}

func (f *fakeStore) InsertTodo(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	if f.insertErr != nil {
		return domain.Todo{}, f.insertErr
	}
	f.nextID++
	t.ID = fmt.Sprintf("todo-%d", f.nextID)
	f.todos[t.ID] = t
	f.order = append(f.order, t.ID)
	return t, nil
}

func (f *fakeStore) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	t, ok := f.todos[id]
	if !ok {
		return nil, nil
	}
	return &t, nil
}

func (f *fakeStore) MergeTodo(ctx context.Context, id string, p domain.TodoPatch) error {
	f.mergeCalls++
	if f.mergeErr != nil {
		return f.mergeErr
	}
	t, ok := f.todos[id]
	if !ok {
		return domain.ErrNotFound
	}
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Details != nil {
		t.Details = *p.Details
	}
	if p.Completed != nil {
		t.Completed = *p.Completed
	}
	if p.DueDate != nil {
		t.DueDate = p.DueDate
	}
	if p.Role != nil {
		t.Role = *p.Role
	}
	if p.CompletionNotes != nil {
		t.CompletionNotes = p.CompletionNotes
	}
	if p.Classification != nil {
		t.Classification = *p.Classification
	}
	if p.Archived != nil {
		t.Archived = *p.Archived
	}
	t.UpdatedAt = p.UpdatedAt
	f.todos[id] = t
	return nil
}

func (f *fakeStore) DeleteTodo(ctx context.Context, id string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.todos, id)
	return nil
}

func (f *fakeStore) EnqueueTodoEvent(ctx context.Context, ev domain.TodoEvent) error {
	if f.enqueueErr != nil {
		return f.enqueueErr
	}
	f.events = append(f.events, ev)
	return nil
}
