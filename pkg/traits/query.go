// Package traits provides the pure domain model for TraitBank dumps:
// the query builder, the fixed set of dump targets with their column
// schemas, and the safety filter for dynamically discovered partition
// values.
//
// The package performs no I/O. Query text is produced exclusively through
// builder functions, and every externally-discovered value passes the
// allow-list check before it is interpolated.
package traits

import (
	"fmt"
	"strconv"
	"strings"
)

// Query is an immutable query: its Cypher text plus the ordered list of
// column names the result rows are expected to align to.
type Query struct {
	text    string
	columns []string
}

// NewQuery creates a Query from trusted text. Dynamic values must be bound
// via Bind or BindInt, never concatenated into text by callers.
func NewQuery(text string, columns []string) Query {
	return Query{text: text, columns: columns}
}

// Text returns the query text.
func (q Query) Text() string {
	return q.text
}

// Columns returns the expected column names in output order.
func (q Query) Columns() []string {
	return q.columns
}

// Bind replaces the {name} placeholder with value. The value is validated
// against the partition allow-list first; an unsafe value is never
// interpolated.
func (q Query) Bind(name, value string) (Query, error) {
	if !IsSafeValue(value) {
		return Query{}, fmt.Errorf(
			"unsafe value for placeholder {%s}: %q", name, value,
		)
	}
	res := q
	res.text = strings.ReplaceAll(res.text, "{"+name+"}", value)
	return res, nil
}

// BindInt replaces the {name} placeholder with an integer. Formatted
// integers cannot carry injection payloads, so no allow-list check is
// needed.
func (q Query) BindInt(name string, value int) Query {
	res := q
	res.text = strings.ReplaceAll(
		res.text, "{"+name+"}", strconv.Itoa(value),
	)
	return res
}

// WithWindow appends a SKIP/LIMIT window to the query. It is used by the
// chunk engine to split one oversized query into bounded executions.
func (q Query) WithWindow(skip, limit int) Query {
	res := q
	res.text = fmt.Sprintf("%s SKIP %d LIMIT %d", res.text, skip, limit)
	return res
}
