package domain

import "time"

// Classification buckets a todo by the nature of the work.
type Classification string

const (
	ClassificationCircumstantial Classification = "circumstantial"
	ClassificationUrgent         Classification = "urgent"
	ClassificationImportant      Classification = "important"
)

// DefaultRole is used when a stored document carries no role.
const DefaultRole = "user"

// ValidClassification reports whether s is one of the three allowed values.
func ValidClassification(s string) bool {
	switch Classification(s) {
	case ClassificationCircumstantial, ClassificationUrgent, ClassificationImportant:
		return true
	}
	return false
}

// Todo represents a single task document.
type Todo struct {
	ID              string         `json:"id"`
	Title           string         `json:"title"`
	Details         string         `json:"details"`
	Completed       bool           `json:"completed"`
	CreatedAt       string         `json:"createdAt"`
	UpdatedAt       string         `json:"updatedAt"`
	DueDate         *string        `json:"dueDate"`
	Role            string         `json:"role"`
	CompletionNotes *string        `json:"completionNotes"`
	Classification  Classification `json:"classification"`
	Archived        bool           `json:"archived"`
}

// isoFormat is fixed width so that string comparison stays chronological.
const isoFormat = "2006-01-02T15:04:05.000Z07:00"

// NowISO returns the current UTC time in the ISO-8601 form used for
// CreatedAt and UpdatedAt.
func NowISO() string {
	return time.Now().UTC().Format(isoFormat)
}

// ReconstructTodo builds a Todo from the raw properties of a stored
// document. Absent or wrong-shaped values fall back to safe defaults so a
// damaged document never fails a read.
func ReconstructTodo(id string, props map[string]any) Todo {
	now := NowISO()
	t := Todo{
		ID:             id,
		CreatedAt:      now,
		UpdatedAt:      now,
		Role:           DefaultRole,
		Classification: ClassificationImportant,
	}
	if v, ok := props["Title"].(string); ok {
		t.Title = v
	}
	if v, ok := props["Details"].(string); ok {
		t.Details = v
	}
	if v, ok := props["Completed"].(bool); ok {
		t.Completed = v
	}
	if v, ok := props["CreatedAt"].(string); ok && v != "" {
		t.CreatedAt = v
	}
	if v, ok := props["UpdatedAt"].(string); ok && v != "" {
		t.UpdatedAt = v
	}
	if v, ok := props["DueDate"].(string); ok && v != "" {
		t.DueDate = &v
	}
	if v, ok := props["Role"].(string); ok && v != "" {
		t.Role = v
	}
	if v, ok := props["CompletionNotes"].(string); ok && v != "" {
		t.CompletionNotes = &v
	}
	if v, ok := props["Classification"].(string); ok && ValidClassification(v) {
		t.Classification = Classification(v)
	}
	if v, ok := props["Archived"].(bool); ok {
		t.Archived = v
	}
	return t
}

// TodoPatch carries the explicitly supplied fields of a partial update.
// Nil members leave the stored value untouched.
type TodoPatch struct {
	Title           *string
	Details         *string
	Completed       *bool
	DueDate         *string
	Role            *string
	CompletionNotes *string
	Classification  *Classification
	Archived        *bool
	UpdatedAt       string
}

// Empty reports whether the patch changes nothing beyond UpdatedAt.
func (p TodoPatch) Empty() bool {
	return p.Title == nil && p.Details == nil && p.Completed == nil &&
		p.DueDate == nil && p.Role == nil && p.CompletionNotes == nil &&
		p.Classification == nil && p.Archived == nil
}

// ListFilter restricts a listing. Nil or zero members apply no constraint.
type ListFilter struct {
	Completed *bool
	Archived  *bool
	Role      *string
	// From is an inclusive lower bound on CreatedAt.
	From string
	// To is an inclusive upper bound on UpdatedAt.
	To    string
	Limit int
}
