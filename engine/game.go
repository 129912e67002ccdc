package engine

import (
	"github.com/spaghettifunk/anima-spatial/engine/systems"
)

type Game struct {
	ApplicationConfig *ApplicationConfig
	SystemManager     *systems.SystemManager
	State             interface{}
	FnInitialize      Initialize
	FnUpdate          Update
	FnQuery           Query
	FnShutdown        Shutdown
}

// Initialize runs once after the systems are up and the start level loaded.
type Initialize func() error

// Update runs in the mutation phase; the world may be changed.
type Update func(deltaTime float64) error

// Query runs after Update with the world frozen for the tick; only
// queries, casts and overlaps should be issued.
type Query func(deltaTime float64) error

type Shutdown func() error
