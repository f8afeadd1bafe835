package domain

// Todo mutation event types published to the events queue.
const (
	TodoCreated   = "todo-created"
	TodoUpdated   = "todo-updated"
	TodoCompleted = "todo-completed"
	TodoDeleted   = "todo-deleted"
)

// TodoEvent describes a successful mutation for downstream consumers.
type TodoEvent struct {
	Type   string `json:"type"`
	TodoID string `json:"todoId"`
	At     string `json:"at"`
}
