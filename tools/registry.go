package tools

import (
	"bytes"
	"context"
	"fmt"

	"github.com/bytedance/sonic"

	"todo-manager-api/domain"
)

// TextContent is the human-readable half of a tool result.
type TextContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// Envelope is the uniform wrapper returned by every tool call. The
// structured payload keeps the operation's declared output shape whether the
// call succeeded or failed; callers must inspect IsError.
type Envelope struct {
	StructuredContent any           `json:"structuredContent"`
	Content           []TextContent `json:"content"`
	IsError           bool          `json:"isError"`
}

// Tool describes one callable operation.
type Tool struct {
	Name        string            `json:"name"`
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Required    []string          `json:"required,omitempty"`
	Params      map[string]string `json:"params,omitempty"`

	// errVerb phrases the failure text, e.g. "Error listing todos: ...".
	errVerb string
	call    func(ctx context.Context, args []byte) (payload any, fallback any, err error)
}

// Registry dispatches tool calls by name.
type Registry struct {
	tools  []Tool
	byName map[string]*Tool
}

// NewRegistry builds the tool table over the given service.
func NewRegistry(svc *Service) *Registry {
	r := &Registry{byName: make(map[string]*Tool)}

	r.add(Tool{
		Name:        "list_todos",
		Title:       "List todos",
		Description: "List todo items from the todos collection with optional filters.",
		Params: map[string]string{
			"completed": "If set, filter todos by completion status.",
			"archived":  "If set, filter todos by archived status.",
			"role":      "If set, only return todos assigned to this role.",
			"from":      "Inclusive ISO 8601 lower bound on creation time.",
			"to":        "Inclusive ISO 8601 upper bound on last update time.",
			"limit":     "Maximum number of todos to return (1-200). Default 50.",
		},
		errVerb: "listing todos",
		call: func(ctx context.Context, args []byte) (any, any, error) {
			fallback := ListResult{Todos: []domain.Todo{}}
			var p ListParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, fallback, err
			}
			if err := p.validate(); err != nil {
				return nil, fallback, err
			}
			res, err := svc.List(ctx, p)
			if err != nil {
				return nil, fallback, err
			}
			return res, nil, nil
		},
	})

	r.add(Tool{
		Name:        "create_todo",
		Title:       "Create todo",
		Description: "Add a new todo item to the todos collection.",
		Required:    []string{"title", "role"},
		Params: map[string]string{
			"title":          "Todo/task title in a few words.",
			"details":        "Optional description with details.",
			"completed":      "Initial completed status. Default false.",
			"dueDate":        "Optional ISO 8601 due date.",
			"role":           "Role of the person who has to do this todo.",
			"classification": "One of circumstantial, urgent, important. Default important.",
		},
		errVerb: "creating todo",
		call: func(ctx context.Context, args []byte) (any, any, error) {
			var p CreateParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, TodoResult{Todo: shellTodo("")}, err
			}
			if err := p.validate(); err != nil {
				return nil, TodoResult{Todo: shellTodo("")}, err
			}
			res, err := svc.Create(ctx, p)
			if err != nil {
				return nil, TodoResult{Todo: shellTodo("")}, err
			}
			return res, nil, nil
		},
	})

	r.add(Tool{
		Name:        "update_todo",
		Title:       "Update todo",
		Description: "Update fields of an existing todo item; unspecified fields are preserved.",
		Required:    []string{"id"},
		Params: map[string]string{
			"id":              "ID of the todo to update.",
			"title":           "New title (if updating).",
			"details":         "New details (if updating).",
			"completed":       "New completed status (if updating).",
			"dueDate":         "New ISO 8601 due date (if updating).",
			"completionNotes": "New completion notes (if updating).",
			"role":            "New role (if updating).",
			"classification":  "New classification (if updating).",
		},
		errVerb: "updating todo",
		call: func(ctx context.Context, args []byte) (any, any, error) {
			var p UpdateParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, TodoResult{Todo: shellTodo(p.ID)}, err
			}
			if err := p.validate(); err != nil {
				return nil, TodoResult{Todo: shellTodo(p.ID)}, err
			}
			res, err := svc.Update(ctx, p)
			if err != nil {
				return nil, TodoResult{Todo: shellTodo(p.ID)}, err
			}
			return res, nil, nil
		},
	})

	r.add(Tool{
		Name:        "complete_todo",
		Title:       "Complete todo",
		Description: "Mark a todo as completed, optionally attaching notes or archiving it.",
		Required:    []string{"id"},
		Params: map[string]string{
			"id":              "ID of the todo to complete.",
			"completionNotes": "Optional notes to attach when marking completed.",
			"archive":         "If true, archive the todo upon completion.",
		},
		errVerb: "completing todo",
		call: func(ctx context.Context, args []byte) (any, any, error) {
			var p CompleteParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, TodoResult{Todo: shellTodo(p.ID)}, err
			}
			if err := p.validate(); err != nil {
				return nil, TodoResult{Todo: shellTodo(p.ID)}, err
			}
			res, err := svc.Complete(ctx, p)
			if err != nil {
				return nil, TodoResult{Todo: shellTodo(p.ID)}, err
			}
			return res, nil, nil
		},
	})

	r.add(Tool{
		Name:        "delete_todo",
		Title:       "Delete todo",
		Description: "Delete a todo item by id. Deleting an unknown id succeeds.",
		Required:    []string{"id"},
		Params: map[string]string{
			"id": "ID of the todo to delete.",
		},
		errVerb: "deleting todo",
		call: func(ctx context.Context, args []byte) (any, any, error) {
			var p DeleteParams
			if err := decodeArgs(args, &p); err != nil {
				return nil, DeleteResult{DeletedID: p.ID}, err
			}
			if err := p.validate(); err != nil {
				return nil, DeleteResult{DeletedID: p.ID}, err
			}
			res, err := svc.Delete(ctx, p)
			if err != nil {
				return nil, DeleteResult{DeletedID: p.ID}, err
			}
			return res, nil, nil
		},
	})

	for i := range r.tools {
		r.byName[r.tools[i].Name] = &r.tools[i]
	}
	return r
}

func (r *Registry) add(t Tool) {
	r.tools = append(r.tools, t)
}

// Tools returns the registered tools in registration order.
func (r *Registry) Tools() []Tool {
	return r.tools
}

// Call invokes the named tool and wraps the outcome in an Envelope. No
// failure escapes: decode errors, validation errors, operation errors and
// panics all become error envelopes. The boolean reports whether the name
// resolved to a registered tool.
func (r *Registry) Call(ctx context.Context, name string, args []byte) (Envelope, bool) {
	t, ok := r.byName[name]
	if !ok {
		return errorEnvelope(struct{}{}, "calling tool", fmt.Errorf("unknown tool %q", name)), false
	}
	payload, fallback, err := t.safeCall(ctx, args)
	if err != nil {
		return errorEnvelope(fallback, t.errVerb, err), true
	}
	return successEnvelope(payload), true
}

func (t *Tool) safeCall(ctx context.Context, args []byte) (payload any, fallback any, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("panic: %v", rec)
		}
	}()
	return t.call(ctx, args)
}

// decodeArgs strictly decodes a JSON argument object. Unknown fields are
// rejected; an empty body decodes as an empty object.
func decodeArgs(args []byte, dst any) error {
	if len(bytes.TrimSpace(args)) == 0 {
		return nil
	}
	dec := sonic.ConfigStd.NewDecoder(bytes.NewReader(args))
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

func successEnvelope(payload any) Envelope {
	text, err := sonic.ConfigStd.MarshalIndent(payload, "", "  ")
	if err != nil {
		text = []byte("{}")
	}
	return Envelope{
		StructuredContent: payload,
		Content:           []TextContent{{Type: "text", Text: string(text)}},
	}
}

func errorEnvelope(fallback any, verb string, err error) Envelope {
	return Envelope{
		StructuredContent: fallback,
		Content:           []TextContent{{Type: "text", Text: "Error " + verb + ": " + err.Error()}},
		IsError:           true,
	}
}

// shellTodo builds the blank record placed in error envelopes so the
// structured payload keeps its declared shape.
func shellTodo(id string) domain.Todo {
	return domain.Todo{ID: id, Role: domain.DefaultRole, Classification: domain.ClassificationImportant}
}
