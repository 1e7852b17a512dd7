package service

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid username or pin")
	ErrNotLoggedIn        = errors.New("not logged in")

	// Guard failures of session commands. Callers treat these as silent no-ops.
	ErrInvalidAmount     = errors.New("amount must be greater than zero")
	ErrRecipientNotFound = errors.New("recipient account not found")
	ErrSelfTransfer      = errors.New("cannot transfer to the same account")
	ErrInsufficientFunds = errors.New("insufficient balance")
	ErrNotCreditworthy   = errors.New("no deposit of at least 10% of the requested loan")
	ErrCloseMismatch     = errors.New("username or pin does not match the current account")
)

// IsRejection reports whether err is a guard failure rather than a session
// or internal error.
func IsRejection(err error) bool {
	for _, target := range []error{
		ErrInvalidAmount,
		ErrRecipientNotFound,
		ErrSelfTransfer,
		ErrInsufficientFunds,
		ErrNotCreditworthy,
		ErrCloseMismatch,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
