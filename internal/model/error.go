package model

// Standard error codes for domain errors.
const (
	ErrCodeBookNotFound    = "BOOK_NOT_FOUND"
	ErrCodeInvalidQuantity = "INVALID_QUANTITY"
	ErrCodeInvalidItem     = "INVALID_ITEM"
	ErrCodeInvalidPrice    = "INVALID_PRICE"
	ErrCodeOutOfStock      = "OUT_OF_STOCK"
)

// Domain errors for business logic
type DomainError struct {
	Code    string
	Message string
}

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
	ErrBookNotFound    = NewDomainError(ErrCodeBookNotFound, "Book not found")
	ErrInvalidQuantity = NewDomainError(ErrCodeInvalidQuantity, "Quantity must be greater than zero")
	ErrInvalidItem     = NewDomainError(ErrCodeInvalidItem, "Item must have a known type and a name")
	ErrInvalidPrice    = NewDomainError(ErrCodeInvalidPrice, "Price must not be negative")
	ErrOutOfStock      = NewDomainError(ErrCodeOutOfStock, "Not enough copies in stock")
)
