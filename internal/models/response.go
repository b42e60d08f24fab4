package models

// ErrorResponse is the JSON error body shared by all handlers.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
