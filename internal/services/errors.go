package services

import "errors"

// Outcome classes the order pipeline can return. Handlers map these to HTTP
// statuses with errors.Is; anything unrecognized is an opaque store failure.
var (
	ErrRateLimited       = errors.New("rate limited")
	ErrItemsUnavailable  = errors.New("one or more menu items are unavailable")
	ErrInvalidTotal      = errors.New("invalid order total")
	ErrTokenGeneration   = errors.New("could not generate secure order token")
	ErrOrderNotFound     = errors.New("order not found")
	ErrUnauthorized      = errors.New("unauthorized")
	ErrInvalidStatus     = errors.New("invalid status")
	ErrInvalidTransition = errors.New("invalid status transition")
)
