package utils

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
)

// TotalCountHeader reports the size of the full result set of a paged
// collection response.
const TotalCountHeader = "X-Total-Count"

// WriteJSON serializes the given data to JSON and writes it to the HTTP response.
//
// It sets the "Content-Type" header to "application/json" and writes
// the provided HTTP status code before sending the response body.
//
// If marshaling fails, it responds with 500 Internal Server Error
// and returns a wrapped error.
//
// Example usage:
//
//	WriteJSON(w, map[string]string{"status": "ok"}, http.StatusOK)
//	WriteJSON(w, map[string]string{"error": "not found"}, http.StatusNotFound)
func WriteJSON(w http.ResponseWriter, data any, statusCode int) (int, error) {
	jsonData, err := json.Marshal(data)
	if err != nil {
		http.Error(w, "error writing data to JSON", http.StatusInternalServerError)
		return 0, fmt.Errorf("error writing data to JSON: %w", err)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return w.Write(jsonData)
}

// WritePage writes a collection page and announces total through the
// [TotalCountHeader] so paging clients can tell when they are done.
func WritePage(w http.ResponseWriter, items any, total int) (int, error) {
	w.Header().Set(TotalCountHeader, strconv.Itoa(total))
	w.Header().Set("Access-Control-Expose-Headers", TotalCountHeader)

	return WriteJSON(w, items, http.StatusOK)
}
