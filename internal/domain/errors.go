package domain

import "errors"

var (
	// ErrInvalidAmount is returned when a credit, debit or opening balance amount is not acceptable.
	ErrInvalidAmount = errors.New("invalid amount")

	// ErrInsufficientFunds is returned when a debit exceeds the current balance.
	ErrInsufficientFunds = errors.New("insufficient funds")

	// ErrDuplicateUsername is returned when an active account already uses the username.
	ErrDuplicateUsername = errors.New("username already exists")

	// ErrUnknownUser is returned when no active account has the username.
	ErrUnknownUser = errors.New("unknown user")

	// ErrAuthFailed is returned when a password does not match the stored digest.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrInvalidPassword is returned when a new password is empty or cannot be hashed.
	ErrInvalidPassword = errors.New("invalid password")

	// ErrAccountNotFound is returned when no active account has the account number.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNonZeroBalance is returned when closing an account whose balance is not exactly zero.
	ErrNonZeroBalance = errors.New("balance is not zero")

	// ErrCorruptRecord is returned when a stored line cannot be parsed.
	ErrCorruptRecord = errors.New("corrupt record")

	// ErrAllocationExhausted is returned when no free account number was found within the attempt limit.
	ErrAllocationExhausted = errors.New("account number allocation exhausted")

	// ErrSameAccount is returned when a transfer names the same account twice.
	ErrSameAccount = errors.New("cannot transfer to same account")

	// ErrInvalidField is returned for an empty username or a free-text field containing a record delimiter.
	ErrInvalidField = errors.New("invalid field")

	// ErrInvalidPeriod is returned for a statement month outside 1..12.
	ErrInvalidPeriod = errors.New("invalid statement period")
)

// Signals, not failures.
var (
	ErrNoHistory  = errors.New("no history")
	ErrNoActivity = errors.New("no activity this period")
)
