package core

import (
	"errors"
)

var (
	ErrInvalidIdentifier   = errors.New("invalid identifier")
	ErrStaleIdentifier     = errors.New("identifier was released or reused")
	ErrEventSystemShutdown = errors.New("event system is not initialized")
)
