package storage

import (
	"strconv"
	"strings"

	"todo-manager-api/domain"
)

// buildFilter renders a ListFilter as an OData filter expression. Supplied
// filters are conjunctive; absent ones add no predicate.
func buildFilter(f domain.ListFilter) string {
	parts := []string{"PartitionKey eq '" + partitionKey + "'"}
	if f.Completed != nil {
		parts = append(parts, "Completed eq "+strconv.FormatBool(*f.Completed))
	}
	if f.Archived != nil {
		parts = append(parts, "Archived eq "+strconv.FormatBool(*f.Archived))
	}
	if f.Role != nil {
		parts = append(parts, "Role eq '"+escapeODataString(*f.Role)+"'")
	}
	if f.From != "" {
		parts = append(parts, "CreatedAt ge '"+escapeODataString(f.From)+"'")
	}
	if f.To != "" {
		parts = append(parts, "UpdatedAt le '"+escapeODataString(f.To)+"'")
	}
	return strings.Join(parts, " and ")
}

// escapeODataString doubles single quotes per the OData string literal rules.
func escapeODataString(s string) string {
	return strings.ReplaceAll(s, "'", "''")
}
