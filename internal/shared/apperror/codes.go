package apperror

const (
	// Client errors (4xx)
	CodeInvalidInput = "VALIDATION_ERROR"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	CodeConflict     = "CONFLICT"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
