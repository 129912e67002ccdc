package physics

import "errors"

var (
	ErrNilTestable       = errors.New("testable is nil")
	ErrAlreadyInWorld    = errors.New("testable already belongs to a world")
	ErrUnknownHandle     = errors.New("handle does not reference a live testable")
	ErrInvalidShape      = errors.New("invalid shape parameters")
	ErrResolveWithoutHit = errors.New("collision response resolved from a cast that did not hit")
)
