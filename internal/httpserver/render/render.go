// Package render writes JSON responses and maps catalog errors to HTTP.
package render

import (
	"encoding/json"
	"net/http"

	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

type apiError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

type errorBody struct {
	Error apiError `json:"error"`
}

// JSON writes payload with statusCode.
func JSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

// NoContent writes a 204.
func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// Fail writes an error body with an explicit status and code.
func Fail(w http.ResponseWriter, statusCode int, code, message string) {
	JSON(w, statusCode, errorBody{Error: apiError{Code: code, Message: message}})
}

// Unauthenticated answers a request that carries no usable identity.
func Unauthenticated(w http.ResponseWriter, message string) {
	w.Header().Set("WWW-Authenticate", `Bearer realm="toolshelf"`)
	Fail(w, http.StatusUnauthorized, "unauthenticated", message)
}

// Error maps err to a status and writes it. Errors outside the catalog
// taxonomy are logged and reported as a bare internal error.
func Error(w http.ResponseWriter, err error, log logger.Logger) {
	status, code, message := MapError(err)
	if status == http.StatusInternalServerError && log != nil {
		log.Error("unexpected handler error", logger.Error(err))
	}
	Fail(w, status, code, message)
}

// MapError returns the HTTP status, error code and client message for err.
func MapError(err error) (int, string, string) {
	switch domain.KindOf(err) {
	case domain.ErrUnauthorized:
		return http.StatusForbidden, "unauthorized", err.Error()
	case domain.ErrNotFound:
		return http.StatusNotFound, "not_found", err.Error()
	case domain.ErrInvalidArgument:
		return http.StatusBadRequest, "invalid_argument", err.Error()
	case domain.ErrInvalidCategory:
		return http.StatusBadRequest, "invalid_category", err.Error()
	case domain.ErrDuplicateCategory:
		return http.StatusConflict, "duplicate_category", err.Error()
	case domain.ErrProtectedCategory:
		return http.StatusConflict, "protected_category", err.Error()
	case domain.ErrCategoryInUse:
		return http.StatusConflict, "category_in_use", err.Error()
	default:
		return http.StatusInternalServerError, "internal", "internal server error"
	}
}

// Decode reads a JSON body of at most 1 MiB into v. Failures are reported
// as invalid arguments.
func Decode(w http.ResponseWriter, r *http.Request, v any) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return domain.Errorf(domain.ErrInvalidArgument, "malformed request body")
	}
	return nil
}
