package errs

import "errors"

// Common sentinel errors for cross-layer signaling.
var (
	ErrNotFound = errors.New("not_found")
	ErrInvalid  = errors.New("invalid")
	// ErrEmailExists indicates an account already exists for the contact email.
	ErrEmailExists = errors.New("email_exists")
	// ErrNumberExists indicates an account number collision on insert.
	ErrNumberExists = errors.New("account_number_exists")
	// ErrInvalidAmount is returned for missing, zero or negative amounts.
	ErrInvalidAmount = errors.New("invalid_amount")
	// ErrAccountInactive blocks mutations on non-active accounts.
	ErrAccountInactive = errors.New("account_inactive")
	// ErrInsufficientBalance is returned when a debit exceeds the balance.
	ErrInsufficientBalance = errors.New("insufficient_balance")
	// ErrConcurrentUpdate is surfaced when the retry budget for a balance update is spent.
	ErrConcurrentUpdate = errors.New("concurrent_update")
	// ErrNumberSpaceExhausted means account number generation ran out of retries.
	ErrNumberSpaceExhausted = errors.New("account_number_space_exhausted")
)
