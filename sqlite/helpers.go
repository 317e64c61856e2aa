package sqlite

import (
	"fmt"
	"strings"
	"time"
)

// parseTime decodes an RFC3339 column value, naming the column so a
// corrupt row is traceable.
func parseTime(column, value string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("column %s: invalid timestamp %q: %w", column, value, err)
	}
	return t, nil
}

// paginate appends LIMIT and OFFSET clauses for positive filter values.
// Zero means unbounded, matching the filter contract.
func paginate(query *strings.Builder, args *[]any, limit, offset int) {
	if limit > 0 {
		query.WriteString(" LIMIT ?")
		*args = append(*args, limit)
	}
	if offset > 0 {
		query.WriteString(" OFFSET ?")
		*args = append(*args, offset)
	}
}
