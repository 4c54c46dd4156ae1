package shared

// DomainError is an error with a stable machine-readable code.
// The HTTP layer maps Code to a status; Message is safe to show to callers.
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *DomainError) Error() string {
	return e.Message
}

// Is matches any DomainError carrying the same code, so errors built with
// NewDomainError at the edges still satisfy errors.Is against the sentinels.
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

// Errors shared by the origin stores and the dues engine
var (
	ErrNotFound            = NewDomainError("NOT_FOUND", "Record not found")
	ErrInvalidInput        = NewDomainError("INVALID_INPUT", "Invalid input")
	ErrConcurrencyConflict = NewDomainError("CONCURRENCY_CONFLICT", "Record was changed by another writer, reload and retry")
)
