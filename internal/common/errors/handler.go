// internal/common/errors/handler.go
package errors

import (
	"encoding/json"
	"net/http"
	"time"
)

// ErrorHandler writes errors as standardized JSON responses.
type ErrorHandler struct {
	logger Logger
}

type Logger interface {
	Error(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
}

func NewErrorHandler(logger Logger) *ErrorHandler {
	return &ErrorHandler{logger: logger}
}

// errorResponse is the wire shape for every failure. The test suite asserts
// on message content, so Message carries the exact constructor text.
type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Write normalizes err to an APIError, logs it, and writes the JSON response.
func (h *ErrorHandler) Write(w http.ResponseWriter, err error) {
	apiErr := h.normalizeError(err)

	fields := map[string]interface{}{
		"errorCode": apiErr.Code,
		"status":    apiErr.Status,
		"details":   apiErr.Details,
	}
	if IsClientError(apiErr) {
		h.logger.Warn(apiErr.Message, fields)
	} else {
		h.logger.Error(apiErr.Message, fields)
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(apiErr.Status)
	_ = json.NewEncoder(w).Encode(errorResponse{Success: false, Message: apiErr.Message})
}

// normalizeError ensures we always have an APIError
func (h *ErrorHandler) normalizeError(err error) *APIError {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr
	}
	return &APIError{
		Code:      ErrCodeInternal,
		Message:   "Unexpected error",
		Details:   err.Error(),
		Status:    http.StatusInternalServerError,
		Timestamp: time.Now().UTC(),
	}
}
