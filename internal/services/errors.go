package services

import "errors"

var (
	ErrClientNotFound      = errors.New("client not found")
	ErrCountryNotFound     = errors.New("country not found")
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrBinEntryNotFound    = errors.New("deleted transaction not found")
	ErrTenantNotFound      = errors.New("tenant not found")
	ErrUserNotFound        = errors.New("user not found")

	ErrNameExists     = errors.New("name already exists")
	ErrDuplicateAppID = errors.New("application id already exists")

	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrAlreadyPaid         = errors.New("transaction already paid")
	ErrNotPaid             = errors.New("transaction is not paid")
	ErrInvalidAmount       = errors.New("amount must be positive")

	ErrNoTenantSelected = errors.New("no tenant selected")

	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrLastAdmin          = errors.New("cannot remove the last admin")
	ErrSelfDelete         = errors.New("cannot delete your own account")
)
