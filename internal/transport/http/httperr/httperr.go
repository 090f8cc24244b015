// Package httperr maps service errors onto HTTP responses. Business errors
// keep their stable code and human-readable message; everything else is
// reported as a retryable infrastructure failure without leaking storage
// details.
package httperr

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/clearmart/oms/order/internal/service/errs"
)

// ErrorResponse is the JSON error body.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var statusByCode = map[errs.Code]int{
	errs.CodeValidation:           http.StatusBadRequest,
	errs.CodeInvalidAddress:       http.StatusBadRequest,
	errs.CodeDiscountExceedsTotal: http.StatusBadRequest,
	errs.CodeInsufficientStock:    http.StatusConflict,
	errs.CodeIllegalTransition:    http.StatusConflict,
	errs.CodeProductNotFound:      http.StatusNotFound,
	errs.CodeOrderNotFound:        http.StatusNotFound,
}

// Write renders err as a JSON error response.
func Write(w http.ResponseWriter, err error) {
	code := errs.CodeOf(err)
	if code == "" {
		slog.Error("Infrastructure error", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, ErrorResponse{
			Code:    "INTERNAL_ERROR",
			Message: "temporary failure, please try again",
		})

		return
	}

	status, ok := statusByCode[code]
	if !ok {
		status = http.StatusBadRequest
	}

	writeJSON(w, status, ErrorResponse{
		Code:    string(code),
		Message: err.Error(),
	})
}

// BadRequest renders a plain validation failure.
func BadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, ErrorResponse{
		Code:    string(errs.CodeValidation),
		Message: message,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Error("Error writing error response", "error", err)
	}
}
