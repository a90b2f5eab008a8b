package models

import "net/http"

// Item is a single JSON-decoded resource element as returned by the backend.
// Objects decode to map[string]any, but scalar elements (strings, numbers) are
// valid collection members too.
type Item = any

// Ack is the decoded body of a successful delete response,
// e.g. {"success": true}.
type Ack = map[string]any

// PageOptions selects one offset/limit window of a resource list.
// Zero values mean "use the default" (page 0, page size 10).
type PageOptions struct {
	Page     int `json:"page"`
	PageSize int `json:"page_size"`
}

// Default page window used when PageOptions fields are left zero.
const (
	DefaultPage     = 0
	DefaultPageSize = 10
)

// WithDefaults returns a copy of o with zero fields replaced by the defaults.
func (o PageOptions) WithDefaults() PageOptions {
	if o.Page < 0 {
		o.Page = DefaultPage
	}
	if o.PageSize <= 0 {
		o.PageSize = DefaultPageSize
	}
	return o
}

// Offset returns the index of the first element of the window.
func (o PageOptions) Offset() int {
	return o.Page * o.PageSize
}

// PageResponse is one page of a resource list.
type PageResponse struct {
	// Items holds the page elements in server order.
	Items []Item `json:"items"`

	// TotalCount is the total number of elements of the resource matching
	// the query. Only meaningful when HasTotalCount is true.
	TotalCount int `json:"total"`

	// HasTotalCount reports whether the backend sent a total-count signal
	// (X-Total-Count header or envelope "total" field).
	HasTotalCount bool `json:"-"`

	// Header holds the raw response headers.
	Header http.Header `json:"-"`
}

// Exhausts reports whether the window described by opts reaches the end of
// the resource according to the total-count signal. Without a total-count
// signal the end is unknown and Exhausts returns false.
func (p PageResponse) Exhausts(opts PageOptions) bool {
	if !p.HasTotalCount {
		return false
	}
	return opts.Page*opts.PageSize+opts.PageSize >= p.TotalCount
}
