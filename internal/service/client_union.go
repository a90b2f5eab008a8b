package service

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/flicsl/jsonsync/models"
)

// canonicalKey serializes v to JSON. Map keys are emitted in sorted order, so
// two structurally equal values produce the same key. ok is false for values
// JSON cannot represent.
func canonicalKey(v any) (key string, ok bool) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", false
	}
	return string(b), true
}

// sameValue reports deep equality of two watched values.
func sameValue(a, b any) bool {
	ka, okA := canonicalKey(a)
	kb, okB := canonicalKey(b)
	if okA && okB {
		return ka == kb
	}
	return reflect.DeepEqual(a, b)
}

// unionItems returns every element of existing followed by the elements of
// incoming not seen before. Each distinct value appears once, at its first
// position.
func unionItems(existing, incoming []models.Item) []models.Item {
	seen := make(map[string]struct{}, len(existing)+len(incoming))
	merged := make([]models.Item, 0, len(existing)+len(incoming))

	for _, group := range [][]models.Item{existing, incoming} {
		for _, item := range group {
			key, ok := canonicalKey(item)
			if !ok {
				key = fmt.Sprintf("%#v", item)
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			merged = append(merged, item)
		}
	}

	return merged
}

// upsertItem replaces the element sharing item's id, or appends item.
func upsertItem(items []models.Item, item models.Item) []models.Item {
	out := make([]models.Item, len(items), len(items)+1)
	copy(out, items)

	id, ok := models.ItemID(item)
	if !ok {
		return append(out, item)
	}

	for i, existing := range out {
		if existingID, has := models.ItemID(existing); has && existingID == id {
			out[i] = item
			return out
		}
	}

	return append(out, item)
}

// removeItem drops every element whose id equals id.
func removeItem(items []models.Item, id string) []models.Item {
	out := make([]models.Item, 0, len(items))
	for _, existing := range items {
		if existingID, has := models.ItemID(existing); has && existingID == id {
			continue
		}
		out = append(out, existing)
	}
	return out
}
