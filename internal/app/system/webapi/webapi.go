// Package webapi holds the JSON request/response conventions shared by
// the API feature handlers: one envelope for errors, one place that maps
// workflow errors to status codes.
package webapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/sakuramc/craftport/internal/app/store/ledger"
	"github.com/sakuramc/craftport/internal/app/system/recruit"
	"go.uber.org/zap"
)

// errorBody is the JSON error envelope.
type errorBody struct {
	Error string `json:"error"`
}

// WriteJSON writes v with the given status.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError writes the error envelope.
func WriteError(w http.ResponseWriter, status int, msg string) {
	WriteJSON(w, status, errorBody{Error: msg})
}

// WriteWorkflowError maps a workflow error to its status code. Anything
// outside the domain taxonomy is a collaborator failure: logged with the
// full cause, surfaced as a bare 500.
func WriteWorkflowError(w http.ResponseWriter, log *zap.Logger, op string, err error) {
	switch {
	case errors.Is(err, recruit.ErrForbidden):
		WriteError(w, http.StatusForbidden, "forbidden")
	case errors.Is(err, recruit.ErrNotFound), errors.Is(err, ledger.ErrNotFound):
		WriteError(w, http.StatusNotFound, "not found")
	case errors.Is(err, recruit.ErrInvalidTransition):
		WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, recruit.ErrValidation):
		WriteError(w, http.StatusBadRequest, err.Error())
	default:
		log.Error(op+" failed", zap.Error(err))
		WriteError(w, http.StatusInternalServerError, "internal error")
	}
}

// DecodeBody decodes a JSON request body into dst, rejecting unknown
// payload shapes cheaply. Returns false (after writing a 400) on failure.
func DecodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20))
	if err := dec.Decode(dst); err != nil {
		WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}
