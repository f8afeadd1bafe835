package storage

import (
	"context"
	"errors"
	"sort"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/data/aztables"
	"github.com/Azure/azure-sdk-for-go/sdk/storage/azqueue"
	"github.com/bytedance/sonic"
	"github.com/google/uuid"

	"todo-manager-api/domain"
)

// partitionKey groups every todo inside the single logical collection.
const partitionKey = "todo"

// Storage provides access to the todos table and the optional events queue.
type Storage struct {
	todoTable   *aztables.Client
	eventsQueue *azqueue.QueueClient
}

// New creates a Storage instance from the given connection string.
// eventsQueue may be empty, in which case EnqueueTodoEvent is a no-op.
func New(connStr, todosTable, eventsQueue string) (*Storage, error) {
	tablesClientOptions := aztables.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries:    3,
				TryTimeout:    time.Minute * 3,
				RetryDelay:    time.Second * 1,
				MaxRetryDelay: time.Second * 15,
				StatusCodes:   []int{408, 429, 500, 502, 503, 504},
			},
		},
	}
	svc, err := aztables.NewServiceClientFromConnectionString(connStr, &tablesClientOptions)
	if err != nil {
		return nil, err
	}
	s := &Storage{todoTable: svc.NewClient(todosTable)}
	if eventsQueue != "" {
		q, err := azqueue.NewQueueClientFromConnectionString(connStr, eventsQueue, nil)
		if err != nil {
			return nil, err
		}
		s.eventsQueue = q
	}
	return s, nil
}

// EnsureTable creates the todos table if it does not exist yet.
func (s *Storage) EnsureTable(ctx context.Context) error {
	_, err := s.todoTable.CreateTable(ctx, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.ErrorCode == string(aztables.TableAlreadyExists) {
			return nil
		}
	}
	return err
}

type todoEntity struct {
	aztables.Entity
	Title           string `json:"Title"`
	Details         string `json:"Details"`
	Completed       bool   `json:"Completed"`
	CreatedAt       string `json:"CreatedAt"`
	UpdatedAt       string `json:"UpdatedAt"`
	DueDate         string `json:"DueDate,omitempty"`
	Role            string `json:"Role"`
	CompletionNotes string `json:"CompletionNotes,omitempty"`
	Classification  string `json:"Classification"`
	Archived        bool   `json:"Archived"`
}

func newTodoEntity(t domain.Todo) todoEntity {
	ent := todoEntity{
		Entity:         aztables.Entity{PartitionKey: partitionKey, RowKey: t.ID},
		Title:          t.Title,
		Details:        t.Details,
		Completed:      t.Completed,
		CreatedAt:      t.CreatedAt,
		UpdatedAt:      t.UpdatedAt,
		Role:           t.Role,
		Classification: string(t.Classification),
		Archived:       t.Archived,
	}
	if t.DueDate != nil {
		ent.DueDate = *t.DueDate
	}
	if t.CompletionNotes != nil {
		ent.CompletionNotes = *t.CompletionNotes
	}
	return ent
}

// todoPatchEntity marshals only the supplied fields so a merge-mode update
// leaves every other stored property untouched.
type todoPatchEntity struct {
	aztables.Entity
	Title           *string `json:"Title,omitempty"`
	Details         *string `json:"Details,omitempty"`
	Completed       *bool   `json:"Completed,omitempty"`
	DueDate         *string `json:"DueDate,omitempty"`
	Role            *string `json:"Role,omitempty"`
	CompletionNotes *string `json:"CompletionNotes,omitempty"`
	Classification  *string `json:"Classification,omitempty"`
	Archived        *bool   `json:"Archived,omitempty"`
	UpdatedAt       string  `json:"UpdatedAt"`
}

func decodeTodoEntity(data []byte) (domain.Todo, error) {
	var props map[string]any
	if err := sonic.Unmarshal(data, &props); err != nil {
		return domain.Todo{}, err
	}
	id, _ := props["RowKey"].(string)
	return domain.ReconstructTodo(id, props), nil
}

// InsertTodo persists a new todo document and returns it with its assigned id.
func (s *Storage) InsertTodo(ctx context.Context, t domain.Todo) (domain.Todo, error) {
	t.ID = uuid.NewString()
	payload, err := sonic.Marshal(newTodoEntity(t))
	if err != nil {
		return domain.Todo{}, err
	}
	if _, err := s.todoTable.AddEntity(ctx, payload, nil); err != nil {
		return domain.Todo{}, err
	}
	return t, nil
}

// GetTodo retrieves a todo if present. A missing id yields (nil, nil).
func (s *Storage) GetTodo(ctx context.Context, id string) (*domain.Todo, error) {
	ent, err := s.todoTable.GetEntity(ctx, partitionKey, id, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == 404 {
			return nil, nil
		}
		return nil, err
	}
	todo, err := decodeTodoEntity(ent.Value)
	if err != nil {
		return nil, err
	}
	return &todo, nil
}

// MergeTodo merges the supplied fields into an existing todo document.
// Returns domain.ErrNotFound when the id does not resolve to a document.
func (s *Storage) MergeTodo(ctx context.Context, id string, p domain.TodoPatch) error {
	ent := todoPatchEntity{
		Entity:          aztables.Entity{PartitionKey: partitionKey, RowKey: id},
		Title:           p.Title,
		Details:         p.Details,
		Completed:       p.Completed,
		DueDate:         p.DueDate,
		Role:            p.Role,
		CompletionNotes: p.CompletionNotes,
		Archived:        p.Archived,
		UpdatedAt:       p.UpdatedAt,
	}
	if p.Classification != nil {
		c := string(*p.Classification)
		ent.Classification = &c
	}
	payload, err := sonic.Marshal(ent)
	if err != nil {
		return err
	}
	et := azcore.ETagAny
	_, err = s.todoTable.UpdateEntity(ctx, payload, &aztables.UpdateEntityOptions{IfMatch: &et, UpdateMode: aztables.UpdateModeMerge})
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == 404 {
			return domain.ErrNotFound
		}
	}
	return err
}

// DeleteTodo removes a todo document. Deleting a missing id is not an error.
func (s *Storage) DeleteTodo(ctx context.Context, id string) error {
	_, err := s.todoTable.DeleteEntity(ctx, partitionKey, id, nil)
	if err != nil {
		var respErr *azcore.ResponseError
		if errors.As(err, &respErr) && respErr.StatusCode == 404 {
			return nil
		}
	}
	return err
}

// ListTodos retrieves todos matching the filter, ordered by creation time
// ascending. Table storage returns entities in key order, so matches are
// sorted here before the limit is applied.
func (s *Storage) ListTodos(ctx context.Context, f domain.ListFilter) ([]domain.Todo, error) {
	filter := buildFilter(f)
	pager := s.todoTable.NewListEntitiesPager(&aztables.ListEntitiesOptions{Filter: &filter})
	todos := []domain.Todo{}
	for pager.More() {
		resp, err := pager.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, e := range resp.Entities {
			todo, err := decodeTodoEntity(e)
			if err != nil {
				return nil, err
			}
			todos = append(todos, todo)
		}
	}
	sort.Slice(todos, func(i, j int) bool {
		if todos[i].CreatedAt != todos[j].CreatedAt {
			return todos[i].CreatedAt < todos[j].CreatedAt
		}
		return todos[i].ID < todos[j].ID
	})
	if f.Limit > 0 && len(todos) > f.Limit {
		todos = todos[:f.Limit]
	}
	return todos, nil
}

// EnqueueTodoEvent publishes a mutation event to the events queue when one
// is configured.
func (s *Storage) EnqueueTodoEvent(ctx context.Context, ev domain.TodoEvent) error {
	if s.eventsQueue == nil {
		return nil
	}
	data, err := sonic.Marshal(ev)
	if err != nil {
		return err
	}
	_, err = s.eventsQueue.EnqueueMessage(ctx, string(data), nil)
	return err
}
