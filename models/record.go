// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

import (
	"fmt"
	"time"
)

// RecordIDField is the body field holding a record identifier.
const RecordIDField = "id"

// ItemID returns the "id" field of an object element formatted as a string.
// Scalars and objects without an id report false.
func ItemID(item Item) (string, bool) {
	obj, ok := item.(map[string]any)
	if !ok {
		return "", false
	}
	id, ok := obj[RecordIDField]
	if !ok || id == nil {
		return "", false
	}
	return fmt.Sprint(id), true
}

// Record is one stored element of a resource collection on the reference
// backend. Body is the JSON object the client sees; its "id" field mirrors ID.
type Record struct {
	Resource  string
	ID        string
	Body      map[string]any
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ListRequest describes one list query against a resource collection.
type ListRequest struct {
	// Resource is the collection name (the first path segment).
	Resource string

	// TextSearch is a case-insensitive substring matched against the whole
	// JSON body. Empty means no full-text filtering.
	TextSearch string

	// Filters match top-level body fields by string equality.
	Filters map[string]string

	// Start is the offset of the first record returned.
	Start int

	// Limit caps the number of records returned; zero or less means no limit.
	Limit int
}

// ListResult is one window of a resource collection plus the total number of
// records matching the request filters.
type ListResult struct {
	Records    []Record
	TotalCount int
}
