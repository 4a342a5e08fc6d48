package domain

import "errors"

// Sentinel errors returned by repositories and services. Handlers map
// these to HTTP status codes.
var (
	ErrNotFound             = errors.New("record not found")
	ErrUsernameTaken        = errors.New("username already taken")
	ErrEmailTaken           = errors.New("email already registered")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidRole          = errors.New("invalid role")
	ErrInvalidAction        = errors.New("invalid action")
	ErrInvalidTransition    = errors.New("illegal status transition")
	ErrAdminImmutable       = errors.New("admin accounts cannot be suspended, banned, or deleted")
	ErrInsufficientFunds    = errors.New("insufficient cash balance")
	ErrInsufficientHoldings = errors.New("insufficient holdings")
	ErrStockHalted          = errors.New("stock is halted")
)
