package pagination

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sort expression errors.
var (
	ErrEmptySortExpression = errors.New("empty sort expression")
	ErrInvalidSortFormat   = errors.New("invalid sort format: use 'field' or 'field:order' (e.g., 'overall:desc')")
	ErrInvalidSortField    = errors.New("invalid sort field")
)

// sortPartsMax is the maximum number of parts in a sort expression (field:order).
const sortPartsMax = 2

// validSortFields are the manager-listing columns the backend accepts for
// sort_by.
//
//nolint:gochecknoglobals // Static whitelist shared by CLI flag validation and the TUI.
var validSortFields = map[string]bool{
	"manager_name": true,
	"overall":      true,
	"trusting":     true,
	"tasking":      true,
	"tending":      true,
	"assessments":  true,
	"last_updated": true,
	"department":   true,
	"reporting_to": true,
}

// IsValidSortField reports whether the field is accepted for sorting.
func IsValidSortField(field string) bool {
	return validSortFields[field]
}

// ValidSortFields returns the sortable field names in a consistent order.
func ValidSortFields() []string {
	fields := make([]string, 0, len(validSortFields))
	for field := range validSortFields {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	return fields
}

// ParseSortExpression parses a sort expression in "field" or "field:order"
// format. A bare field defaults to descending order, matching the listing
// behavior where a newly selected column starts descending.
//
//nolint:nonamedreturns // Named returns improve readability for this multi-value function.
func ParseSortExpression(expr string) (field, order string, err error) {
	if strings.TrimSpace(expr) == "" {
		return "", "", ErrEmptySortExpression
	}

	parts := strings.Split(expr, ":")
	if len(parts) > sortPartsMax {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidSortFormat, expr)
	}

	field = strings.TrimSpace(parts[0])
	if field == "" {
		return "", "", ErrEmptySortExpression
	}

	order = SortOrderDesc
	if len(parts) == sortPartsMax {
		order = strings.ToLower(strings.TrimSpace(parts[1]))
	}

	if order != SortOrderAsc && order != SortOrderDesc {
		return "", "", fmt.Errorf("%w: got %q", ErrInvalidSortOrder, order)
	}

	if !IsValidSortField(field) {
		return "", "", fmt.Errorf("%w: %q (valid: %s)",
			ErrInvalidSortField, field, strings.Join(ValidSortFields(), ", "))
	}

	return field, order, nil
}
