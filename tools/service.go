package tools

import (
	"context"

	log "github.com/sirupsen/logrus"

	"todo-manager-api/domain"
)

// Store abstracts persistence for the todo operations.
type Store interface {
	ListTodos(ctx context.Context, f domain.ListFilter) ([]domain.Todo, error)
	InsertTodo(ctx context.Context, t domain.Todo) (domain.Todo, error)
	GetTodo(ctx context.Context, id string) (*domain.Todo, error)
	MergeTodo(ctx context.Context, id string, p domain.TodoPatch) error
	DeleteTodo(ctx context.Context, id string) error
	EnqueueTodoEvent(ctx context.Context, ev domain.TodoEvent) error
}

// DefaultListLimit caps listings when the caller supplies no limit.
const DefaultListLimit = 50

// MaxListLimit is the largest accepted listing limit.
const MaxListLimit = 200

// Service implements the five todo operations against a Store.
type Service struct {
	store Store
}

// NewService creates a Service backed by the given store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// ListResult is the output shape of list_todos.
type ListResult struct {
	Todos []domain.Todo `json:"todos"`
}

// TodoResult is the output shape of the single-record operations.
type TodoResult struct {
	Todo domain.Todo `json:"todo"`
}

// DeleteResult is the output shape of delete_todo.
type DeleteResult struct {
	DeletedID string `json:"deletedId"`
}

// List returns todos matching the supplied filters, oldest first.
func (s *Service) List(ctx context.Context, p ListParams) (ListResult, error) {
	f := domain.ListFilter{
		Completed: p.Completed,
		Archived:  p.Archived,
		Role:      p.Role,
		Limit:     DefaultListLimit,
	}
	if p.From != nil {
		f.From = *p.From
	}
	if p.To != nil {
		f.To = *p.To
	}
	if p.Limit != nil {
		f.Limit = *p.Limit
	}
	todos, err := s.store.ListTodos(ctx, f)
	if err != nil {
		return ListResult{}, err
	}
	if todos == nil {
		todos = []domain.Todo{}
	}
	return ListResult{Todos: todos}, nil
}

// Create persists a new todo. Unspecified optional fields take their schema
// defaults and the record is never created archived.
func (s *Service) Create(ctx context.Context, p CreateParams) (TodoResult, error) {
	now := domain.NowISO()
	t := domain.Todo{
		Title:          p.Title,
		Role:           p.Role,
		Classification: domain.ClassificationImportant,
		CreatedAt:      now,
		UpdatedAt:      now,
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
	if p.Classification != nil {
		t.Classification = domain.Classification(*p.Classification)
	}
	created, err := s.store.InsertTodo(ctx, t)
	if err != nil {
		return TodoResult{}, err
	}
	s.publish(ctx, domain.TodoCreated, created.ID, now)
	return TodoResult{Todo: created}, nil
}

// Update merges the explicitly supplied fields into an existing todo and
// returns its state after the write.
func (s *Service) Update(ctx context.Context, p UpdateParams) (TodoResult, error) {
	patch := domain.TodoPatch{
		Title:           p.Title,
		Details:         p.Details,
		Completed:       p.Completed,
		DueDate:         p.DueDate,
		Role:            p.Role,
		CompletionNotes: p.CompletionNotes,
	}
	if p.Classification != nil {
		c := domain.Classification(*p.Classification)
		patch.Classification = &c
	}
	if patch.Empty() {
		return TodoResult{}, domain.ErrNoFields
	}
	patch.UpdatedAt = domain.NowISO()
	return s.merge(ctx, p.ID, patch, domain.TodoUpdated)
}

// Complete marks a todo done. Completion notes are attached only when
// supplied and the record is archived only on an explicit request.
func (s *Service) Complete(ctx context.Context, p CompleteParams) (TodoResult, error) {
	done := true
	patch := domain.TodoPatch{
		Completed:       &done,
		CompletionNotes: p.CompletionNotes,
		UpdatedAt:       domain.NowISO(),
	}
	if p.Archive != nil && *p.Archive {
		archived := true
		patch.Archived = &archived
	}
	return s.merge(ctx, p.ID, patch, domain.TodoCompleted)
}

// Delete removes a todo unconditionally. Deleting an unknown id succeeds.
func (s *Service) Delete(ctx context.Context, p DeleteParams) (DeleteResult, error) {
	if err := s.store.DeleteTodo(ctx, p.ID); err != nil {
		return DeleteResult{}, err
	}
	s.publish(ctx, domain.TodoDeleted, p.ID, domain.NowISO())
	return DeleteResult{DeletedID: p.ID}, nil
}

// merge applies a patch and re-reads the document. The returned record
// reflects the latest known state after the write, not an atomic view.
func (s *Service) merge(ctx context.Context, id string, patch domain.TodoPatch, eventType string) (TodoResult, error) {
	if err := s.store.MergeTodo(ctx, id, patch); err != nil {
		return TodoResult{}, err
	}
	t, err := s.store.GetTodo(ctx, id)
	if err != nil {
		return TodoResult{}, err
	}
	if t == nil {
		return TodoResult{}, domain.ErrNotFound
	}
	s.publish(ctx, eventType, id, patch.UpdatedAt)
	return TodoResult{Todo: *t}, nil
}

// publish emits a mutation event. Failures are logged, never surfaced: the
// event feed is advisory and must not fail an otherwise successful write.
func (s *Service) publish(ctx context.Context, eventType, id, at string) {
	ev := domain.TodoEvent{Type: eventType, TodoID: id, At: at}
	if err := s.store.EnqueueTodoEvent(ctx, ev); err != nil {
		log.WithFields(log.Fields{"todo": id, "event": eventType}).Warnf("enqueue event: %v", err)
	}
}
