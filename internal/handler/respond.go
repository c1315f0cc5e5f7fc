package handler

import (
	"encoding/json"
	"net/http"

	"github.com/yourorg/flatdash/internal/resolver"
)

// DataSourceHeader tells API consumers whether the payload came from the
// live database or the demo fixtures.
const DataSourceHeader = "X-Data-Source"

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeResolved[T any](w http.ResponseWriter, result resolver.Result[T]) {
	w.Header().Set(DataSourceHeader, string(result.Source))
	writeJSON(w, http.StatusOK, result.Data)
}
