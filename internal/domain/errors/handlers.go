package errors

// ErrorInfo contains detailed error information
type ErrorInfo struct {
	Code    string `json:"code"`              // Business error code, e.g., "USER_NOT_FOUND"
	Details string `json:"details,omitempty"` // Detailed error information (optional)
}

// Response is the envelope the error-handling middleware serializes for
// failed requests. It mirrors the success envelope in delivery/http/response.
type Response struct {
	Success bool       `json:"success"`
	Code    int        `json:"code"`
	Message string     `json:"message"`
	Error   *ErrorInfo `json:"error,omitempty"`
}
