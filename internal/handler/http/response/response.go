package response

import (
	"encoding/json"
	"net/http"
)

// Response is the standard envelope every endpoint writes.
type Response struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	Data    interface{}  `json:"data,omitempty"`
	Error   *ErrorDetail `json:"error,omitempty"`
}

type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func Success(w http.ResponseWriter, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Data: data})
}

func SuccessWithMessage(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusOK, Response{Success: true, Message: message, Data: data})
}

func Created(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusCreated, Response{Success: true, Message: message, Data: data})
}

func BadRequest(w http.ResponseWriter, message string, details map[string]string) {
	writeJSON(w, http.StatusBadRequest, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "BAD_REQUEST", Message: message, Details: details},
	})
}

func ValidationError(w http.ResponseWriter, details map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "VALIDATION_ERROR", Message: "Validation failed", Details: details},
	})
}

func Unauthorized(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusUnauthorized, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "UNAUTHORIZED", Message: message},
	})
}

func Forbidden(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusForbidden, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "FORBIDDEN", Message: message},
	})
}

func NotFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "NOT_FOUND", Message: message},
	})
}

func Conflict(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusConflict, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "CONFLICT", Message: message},
	})
}

// ConflictWithData carries a payload alongside the rejection. Locked
// timesheet cells use it to echo the stored hours back to the caller.
func ConflictWithData(w http.ResponseWriter, message string, data interface{}) {
	writeJSON(w, http.StatusConflict, Response{
		Success: false,
		Data:    data,
		Error:   &ErrorDetail{Code: "CONFLICT", Message: message},
	})
}

func InternalServerError(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusInternalServerError, Response{
		Success: false,
		Error:   &ErrorDetail{Code: "INTERNAL_ERROR", Message: message},
	})
}
