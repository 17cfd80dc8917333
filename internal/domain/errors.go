package domain

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound = errors.New("not found")
	ErrConflict = errors.New("conflict")

	ErrItemSold      = fmt.Errorf("item is sold: %w", ErrConflict)
	ErrItemNotInCart = fmt.Errorf("item is not in cart: %w", ErrConflict)
	ErrCartInactive  = fmt.Errorf("cart is not active: %w", ErrConflict)
)

// ValidationError reports a bad user input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Message)
}

// TransactionError wraps a store-level abort (serialization failure, deadlock, lock timeout).
// The whole transaction was rolled back and the operation can be retried.
type TransactionError struct {
	Op  string
	Err error
}

func (e *TransactionError) Error() string {
	return fmt.Sprintf("%s: transaction aborted: %v", e.Op, e.Err)
}

func (e *TransactionError) Unwrap() error {
	return e.Err
}
