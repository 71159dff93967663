package engine

import "errors"

// Business-rule errors surfaced to the user at the request boundary.
// None of them leave partial state behind: every trading operation runs in a
// single database transaction that rolls back on any error.
var (
	// ErrInsufficientFunds means the account's cash cannot cover the purchase.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrInsufficientShares means a sell asked for more shares than are held.
	ErrInsufficientShares = errors.New("not enough shares to complete transaction")

	// ErrNoHolding means the account holds no position in the requested symbol.
	ErrNoHolding = errors.New("you do not own any shares of this stock")

	// ErrNoTransactions means the account has no transaction history yet.
	ErrNoTransactions = errors.New("no transaction history on this account")

	// ErrAccountNotFound means the authenticated account row is missing.
	// This is an unexpected-state fault, not a user input error.
	ErrAccountNotFound = errors.New("account not found")
)

// ValidationError reports malformed or missing trade input.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }

func validationError(reason string) *ValidationError {
	return &ValidationError{Reason: reason}
}
