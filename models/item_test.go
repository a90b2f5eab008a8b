package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPageOptions_WithDefaults(t *testing.T) {
	assert.Equal(t, PageOptions{Page: 0, PageSize: DefaultPageSize}, PageOptions{}.WithDefaults())
	assert.Equal(t, PageOptions{Page: 0, PageSize: DefaultPageSize}, PageOptions{Page: -3, PageSize: -1}.WithDefaults())
	assert.Equal(t, PageOptions{Page: 2, PageSize: 8}, PageOptions{Page: 2, PageSize: 8}.WithDefaults())
}

func TestPageOptions_Offset(t *testing.T) {
	assert.Equal(t, 0, PageOptions{Page: 0, PageSize: 10}.Offset())
	assert.Equal(t, 24, PageOptions{Page: 3, PageSize: 8}.Offset())
}

func TestPageResponse_Exhausts(t *testing.T) {
	tests := []struct {
		name string
		page PageResponse
		opts PageOptions
		want bool
	}{
		{"no total count", PageResponse{TotalCount: 0}, PageOptions{Page: 0, PageSize: 10}, false},
		{"first page covers total", PageResponse{TotalCount: 8, HasTotalCount: true}, PageOptions{Page: 0, PageSize: 12}, true},
		{"exact fit", PageResponse{TotalCount: 20, HasTotalCount: true}, PageOptions{Page: 1, PageSize: 10}, true},
		{"more pages", PageResponse{TotalCount: 21, HasTotalCount: true}, PageOptions{Page: 1, PageSize: 10}, false},
		{"empty resource", PageResponse{TotalCount: 0, HasTotalCount: true}, PageOptions{Page: 0, PageSize: 10}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.page.Exhausts(tt.opts))
		})
	}
}

func TestItemID(t *testing.T) {
	id, ok := ItemID(map[string]any{"id": "a1"})
	assert.True(t, ok)
	assert.Equal(t, "a1", id)

	id, ok = ItemID(map[string]any{"id": 7.0})
	assert.True(t, ok)
	assert.Equal(t, "7", id)

	_, ok = ItemID(map[string]any{"id": nil})
	assert.False(t, ok)
	_, ok = ItemID(map[string]any{"name": "x"})
	assert.False(t, ok)
	_, ok = ItemID("scalar")
	assert.False(t, ok)
}
