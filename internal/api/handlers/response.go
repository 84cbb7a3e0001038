// Package handlers shared request decoding and response helpers of the HTTP API.
// Every endpoint lives in its own subpackage.
package handlers

import (
	"encoding/json"
	"net/http"
)

const msgInternalError = "internal server error"

// ErrorResponse body of every non-2xx response
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details,omitempty"`
	Debug   string                 `json:"debug,omitempty"`
}

// RespondJSON writes data with the given status. A nil data writes no body.
func RespondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(data)
}

// RespondError writes an error body
func RespondError(w http.ResponseWriter, status int, resp ErrorResponse) {
	RespondJSON(w, status, resp)
}

// RespondBadRequest 400 with a validation code
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, ErrorResponse{Code: codeValidation, Message: message})
}

// RespondValidationErrors 400 with per-field messages
func RespondValidationErrors(w http.ResponseWriter, message string, fields map[string]string) {
	details := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		details[k] = v
	}
	RespondError(w, http.StatusBadRequest, ErrorResponse{Code: codeValidation, Message: message, Details: details})
}

// RespondNotFound 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, ErrorResponse{Code: codeNotFound, Message: message})
}

// RespondInternalError 500 without details
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, ErrorResponse{Code: codeInternal, Message: msgInternalError})
}
