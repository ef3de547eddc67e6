package services

import "errors"

// User-facing failures. Their messages are shown to the user as-is.
var (
	ErrMissingUsername     = errors.New("must provide username")
	ErrMissingPassword     = errors.New("must provide password")
	ErrPasswordMismatch    = errors.New("must provide matching passwords")
	ErrWeakPassword        = errors.New("password must contain at least 8 characters including letters, numbers and symbols")
	ErrPasswordTooLong     = errors.New("password must be at most 72 bytes long")
	ErrUsernameTaken       = errors.New("username already taken")
	ErrInvalidCredentials  = errors.New("invalid username and/or password")
	ErrStockNotFound       = errors.New("stock not found")
	ErrQuoteNotFound       = errors.New("share price not found")
	ErrInvalidShares       = errors.New("must input a valid number of shares")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrShareNotOwned       = errors.New("must own share")
	ErrInsufficientShares  = errors.New("must own sufficient shares")
)

var userErrors = []error{
	ErrMissingUsername, ErrMissingPassword, ErrPasswordMismatch, ErrWeakPassword, ErrPasswordTooLong,
	ErrUsernameTaken, ErrInvalidCredentials, ErrStockNotFound, ErrQuoteNotFound,
	ErrInvalidShares, ErrInsufficientBalance, ErrShareNotOwned, ErrInsufficientShares,
}

// IsUserError reports whether err is caused by bad input rather than a fault.
func IsUserError(err error) bool {
	for _, ue := range userErrors {
		if errors.Is(err, ue) {
			return true
		}
	}
	return false
}
