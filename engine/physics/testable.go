package physics

import (
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// Handle references a Testable stored in a World. It stops resolving once
// the object is removed, even if its slot is reused.
type Handle = core.Identifier

// Testable is implemented by every world object that takes part in
// spatial queries and casts.
type Testable interface {
	// Handle is the identity assigned by the owning World, zero if unowned.
	Handle() Handle
	// Bind is called by the World when the object is added or removed.
	Bind(h Handle)

	Type() BodyType
	Surface() PhysicalSurface

	// GetBounds returns the current world-space bounds. Shapes keep it in
	// sync whenever they move or deform.
	GetBounds() math.BoundingBox
	// Query appends the object to result when its bounds intersect box.
	Query(box math.BoundingBox, result *QueryResult)
	// Cast tests the segment start->end and returns the nearest hit on this
	// object, or CastMiss when the object is in ignore or nothing is struck.
	Cast(start, end math.Vec3, ignore IgnoreSet) CastResult
	// Debug emits diagnostic primitives. It never affects query results.
	Debug(drawer DebugDrawer)
}

// Body carries the state every shape shares. Embed it to get the
// bookkeeping half of Testable.
type Body struct {
	handle  Handle
	name    string
	surface PhysicalSurface
}

func (b *Body) Handle() Handle {
	return b.handle
}

func (b *Body) Bind(h Handle) {
	b.handle = h
}

func (b *Body) Name() string {
	return b.name
}

func (b *Body) SetName(name string) {
	b.name = name
}

func (b *Body) Surface() PhysicalSurface {
	return b.surface
}

func (b *Body) SetSurface(s PhysicalSurface) {
	b.surface = s
}

// Debug draws nothing by default.
func (b *Body) Debug(DebugDrawer) {}

// query is the shared bounds-level Query implementation.
func query(t Testable, box math.BoundingBox, result *QueryResult) {
	if result == nil {
		return
	}
	if t.GetBounds().Intersects(box) {
		result.Add(t.Handle())
	}
}

// IgnoreSet lists handles a cast must skip, e.g. a projectile's emitter.
// The nil set ignores nothing.
type IgnoreSet map[Handle]struct{}

func NewIgnoreSet(handles ...Handle) IgnoreSet {
	set := make(IgnoreSet, len(handles))
	for _, h := range handles {
		set[h] = struct{}{}
	}
	return set
}

func (s IgnoreSet) Contains(h Handle) bool {
	if s == nil {
		return false
	}
	_, ok := s[h]
	return ok
}

func (s IgnoreSet) Add(h Handle) {
	s[h] = struct{}{}
}
