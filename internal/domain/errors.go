package domain

import "errors"

// Domain errors (no external dependencies). Handlers map these to HTTP
// status codes; use cases return them unwrapped so errors.Is works.
var (
	ErrNotFound           = errors.New("resource not found")
	ErrDuplicate          = errors.New("duplicate resource")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")

	// Ledger scope errors.
	ErrInvalidScope     = errors.New("invalid scope: start date after end date")
	ErrUnknownReference = errors.New("unknown base or equipment type reference")

	// Lifecycle errors.
	ErrAssetAlreadyAssigned = errors.New("asset already has an active assignment")
	ErrNotActive            = errors.New("assignment is not active")
	ErrInsufficientStock    = errors.New("insufficient stock")
	ErrInvalidQuantity      = errors.New("quantity must be a positive integer")
	ErrTransferInvalid      = errors.New("invalid transfer")
)
