package types

// APIResponse is the envelope every dashboard endpoint returns:
// {success, data} on the happy path, {success, error} otherwise. Clients
// branch on success before touching data.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
}

// APIError carries a stable machine code plus a human-readable message.
// Codes are part of the client contract; messages are free to change.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error codes the dashboard switches on.
const (
	ErrorCodeValidation     = "VALIDATION_ERROR"
	ErrorCodeUnauthorized   = "UNAUTHORIZED"
	ErrorCodeForbidden      = "FORBIDDEN"
	ErrorCodeNotFound       = "NOT_FOUND"
	ErrorCodeConflict       = "CONFLICT"
	ErrorCodeInternal       = "INTERNAL_ERROR"
	ErrorCodeInvalidToken   = "INVALID_TOKEN"
	ErrorCodeInvalidRequest = "INVALID_REQUEST"
)

// NewSuccessResponse wraps data in a success envelope.
func NewSuccessResponse(data interface{}) *APIResponse {
	return &APIResponse{Success: true, Data: data}
}

// NewErrorResponse wraps a code and message in an error envelope.
func NewErrorResponse(code, message string) *APIResponse {
	return &APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: message},
	}
}
