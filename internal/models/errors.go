package models

import "errors"

// Error taxonomy for mutating operations. Every failure surfaced by a service
// wraps exactly one of these sentinels so callers can branch with errors.Is.
var (
	// ErrInsufficientFunds is returned when a debit would take a wallet's
	// balance below zero and the wallet does not allow negative balances.
	// Also returned when reverting a credit that was already spent.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrNotFound is returned when a referenced document id does not resolve.
	ErrNotFound = errors.New("not found")

	// ErrHasDependents is returned when deleting an entity that still has
	// dependent documents (collections, payments, transactions).
	ErrHasDependents = errors.New("has dependents")

	// ErrValidation is returned for malformed input, caught before any
	// read or write.
	ErrValidation = errors.New("validation failed")

	// ErrOverCollection is returned when a collection or payment amount
	// exceeds the current outstanding balance.
	ErrOverCollection = errors.New("amount exceeds outstanding balance")

	// ErrStoreUnavailable is returned when the underlying storage operation
	// fails; the batch is presumed not committed and the caller may retry.
	ErrStoreUnavailable = errors.New("storage unavailable")
)

// IsUserError reports whether err is actionable by the caller (as opposed to
// a transient storage failure).
func IsUserError(err error) bool {
	return errors.Is(err, ErrInsufficientFunds) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrHasDependents) ||
		errors.Is(err, ErrValidation) ||
		errors.Is(err, ErrOverCollection)
}
