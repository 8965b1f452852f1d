package response

import (
	"encoding/json"
	"net/http"
)

// Error kind tags carried on the wire. Clients branch on these, not on HTTP
// status codes, so the strings are part of the compatibility contract.
const (
	CodeInvalidArgument  = "invalid-argument"
	CodeUnauthenticated  = "unauthenticated"
	CodePermissionDenied = "permission-denied"
	CodeNotFound         = "not-found"
	CodeConflict         = "conflict"
	CodeInternal         = "internal"
)

type ErrorResponse struct {
	Success bool         `json:"success"`
	Error   *ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// JSON writes a success payload verbatim. Payroll responses carry their own
// top-level fields (success, totals, counters) rather than a generic
// envelope.
func JSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		fallback := ErrorResponse{
			Error: &ErrorDetail{Code: CodeInternal, Message: "Failed to encode response"},
		}
		_ = json.NewEncoder(w).Encode(fallback)
	}
}

func writeError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	JSON(w, statusCode, ErrorResponse{
		Error: &ErrorDetail{Code: code, Message: message, Details: details},
	})
}

func InvalidArgument(w http.ResponseWriter, message string, details map[string]string) {
	writeError(w, http.StatusBadRequest, CodeInvalidArgument, message, details)
}

func Unauthenticated(w http.ResponseWriter, message string) {
	writeError(w, http.StatusUnauthorized, CodeUnauthenticated, message, nil)
}

func PermissionDenied(w http.ResponseWriter, message string) {
	writeError(w, http.StatusForbidden, CodePermissionDenied, message, nil)
}

func NotFound(w http.ResponseWriter, message string) {
	writeError(w, http.StatusNotFound, CodeNotFound, message, nil)
}

func Conflict(w http.ResponseWriter, message string) {
	writeError(w, http.StatusConflict, CodeConflict, message, nil)
}

func Internal(w http.ResponseWriter) {
	// Deliberately generic: internal causes are logged server-side and
	// never leak onto the wire.
	writeError(w, http.StatusInternalServerError, CodeInternal, "An unexpected error occurred", nil)
}
