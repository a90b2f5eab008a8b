package models

import (
	"fmt"
	"maps"
)

// Reserved query keys.
const (
	// QueryTextSearch holds a full-text filter, sent to the backend as "q".
	QueryTextSearch = "textSearch"
	// QueryUnion asks the synchronizer to merge the page into the loaded
	// collection instead of replacing it. It is never sent to the backend.
	QueryUnion = "union"
)

// Query is a resource query. Keys other than the reserved ones are passed
// to the backend verbatim as filter parameters.
type Query map[string]any

// Merge returns a new Query holding the keys of q overridden by the keys of
// each override, in order. The receiver and the overrides are not modified.
func (q Query) Merge(overrides ...Query) Query {
	merged := make(Query, len(q))
	maps.Copy(merged, q)
	for _, o := range overrides {
		maps.Copy(merged, o)
	}
	return merged
}

// TextSearch returns the full-text filter, if any.
func (q Query) TextSearch() (string, bool) {
	v, ok := q[QueryTextSearch]
	if !ok || v == nil {
		return "", false
	}
	s := fmt.Sprint(v)
	return s, s != ""
}

// Union reports whether the union flag is set to a truthy value.
func (q Query) Union() bool {
	return truthy(q[QueryUnion])
}

// Filters returns the non-reserved keys with their values formatted as
// query parameter strings. Nil values are skipped.
func (q Query) Filters() map[string]string {
	filters := make(map[string]string, len(q))
	for k, v := range q {
		if k == QueryTextSearch || k == QueryUnion || v == nil {
			continue
		}
		filters[k] = fmt.Sprint(v)
	}
	return filters
}

func truthy(v any) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case string:
		return t != ""
	case int:
		return t != 0
	case int64:
		return t != 0
	case float64:
		return t != 0
	default:
		return true
	}
}
