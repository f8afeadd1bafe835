package tools

import (
	"errors"
	"fmt"

	"todo-manager-api/domain"
)

// ListParams is the input shape of list_todos. Nil members mean "no
// constraint on that field", not "match the default value".
type ListParams struct {
	Completed *bool   `json:"completed"`
	Archived  *bool   `json:"archived"`
	Role      *string `json:"role"`
	From      *string `json:"from"`
	To        *string `json:"to"`
	Limit     *int    `json:"limit"`
}

func (p ListParams) validate() error {
	if p.Limit != nil && (*p.Limit < 1 || *p.Limit > MaxListLimit) {
		return fmt.Errorf("limit must be between 1 and %d", MaxListLimit)
	}
	return nil
}

// CreateParams is the input shape of create_todo.
type CreateParams struct {
	Title          string  `json:"title"`
	Details        *string `json:"details"`
	Completed      *bool   `json:"completed"`
	DueDate        *string `json:"dueDate"`
	Role           string  `json:"role"`
	Classification *string `json:"classification"`
}

func (p CreateParams) validate() error {
	if p.Title == "" {
		return errors.New("title is required")
	}
	if p.Role == "" {
		return errors.New("role is required")
	}
	return validateClassification(p.Classification)
}

// UpdateParams is the input shape of update_todo. Every member besides ID is
// optional; only supplied members are written.
type UpdateParams struct {
	ID              string  `json:"id"`
	Title           *string `json:"title"`
	Details         *string `json:"details"`
	Completed       *bool   `json:"completed"`
	DueDate         *string `json:"dueDate"`
	CompletionNotes *string `json:"completionNotes"`
	Role            *string `json:"role"`
	Classification  *string `json:"classification"`
}

func (p UpdateParams) validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	return validateClassification(p.Classification)
}

// CompleteParams is the input shape of complete_todo.
type CompleteParams struct {
	ID              string  `json:"id"`
	CompletionNotes *string `json:"completionNotes"`
	Archive         *bool   `json:"archive"`
}

func (p CompleteParams) validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	return nil
}

// DeleteParams is the input shape of delete_todo.
type DeleteParams struct {
	ID string `json:"id"`
}

func (p DeleteParams) validate() error {
	if p.ID == "" {
		return errors.New("id is required")
	}
	return nil
}

func validateClassification(c *string) error {
	if c != nil && !domain.ValidClassification(*c) {
		return fmt.Errorf("classification must be one of circumstantial, urgent, important; got %q", *c)
	}
	return nil
}
