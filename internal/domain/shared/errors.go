package shared

// DomainError represents a domain-level error
type DomainError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	return e.Message
}

// NewDomainError creates a new domain error
func NewDomainError(code, message string) *DomainError {
	return &DomainError{
		Code:    code,
		Message: message,
	}
}

// Common domain errors
var (
	ErrNotFound         = NewDomainError("NOT_FOUND", "Resource not found")
	ErrAlreadyExists    = NewDomainError("ALREADY_EXISTS", "Resource already exists")
	ErrInvalidInput     = NewDomainError("INVALID_INPUT", "Invalid input provided")
	ErrUnauthorized     = NewDomainError("UNAUTHORIZED", "Not authorized to perform this action")
	ErrMerchantNotFound = NewDomainError("MERCHANT_NOT_FOUND", "No merchant profile exists for this account")
	ErrForeignReference = NewDomainError("FOREIGN_REFERENCE", "One or more referenced resources do not exist")
	ErrImmutableField   = NewDomainError("IMMUTABLE_FIELD", "Field cannot be changed after creation")
)
