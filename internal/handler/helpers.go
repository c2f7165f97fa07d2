package handler

import (
	"encoding/json"
	"net/http"

	"github.com/womni/backoffice/internal/model"
)

// writeJSON serializes v and writes it with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeResult writes a success envelope wrapping result.
func writeResult(w http.ResponseWriter, status int, result interface{}) {
	writeJSON(w, status, model.SuccessResponse{Success: true, Result: result})
}

// writeError writes an error envelope with the given status and message.
func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, model.ErrorResponse{Success: false, Error: message})
}

// readJSON decodes the request body into v, closing the body afterwards.
func readJSON(r *http.Request, v interface{}) error {
	defer r.Body.Close()
	return json.NewDecoder(r.Body).Decode(v)
}
