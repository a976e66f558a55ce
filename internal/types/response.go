package types

// AskResponse represents an answer response. Failures are reported inside Answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// HealthResponse represents a health check response
type HealthResponse struct {
	Status string `json:"status"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
