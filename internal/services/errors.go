package services

import "errors"

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrCategoryNotFound = errors.New("category not found")
	ErrSupplierNotFound = errors.New("supplier not found")
	ErrBadCreds         = errors.New("invalid email or password")

	// ErrAdjustConflict means concurrent adjustments kept winning the
	// conditional update for the whole retry budget.
	ErrAdjustConflict = errors.New("stock adjustment conflicted, try again")
)

// InvalidInputError carries a caller-facing message for a rejected input.
// Handlers map it to a 400.
type InvalidInputError struct {
	Msg string
}

func (e *InvalidInputError) Error() string { return e.Msg }

func invalid(msg string) error { return &InvalidInputError{Msg: msg} }
