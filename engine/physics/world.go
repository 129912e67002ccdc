package physics

import (
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
)

type WorldConfig struct {
	// InitialCapacity preallocates handle and ordering storage.
	InitialCapacity int
	// Events, when set, receives EventCodeWorldMutated after each mutation.
	Events *core.EventSystem
	// Metrics, when set, counts queries and casts.
	Metrics *Metrics
}

// World holds the live Testable set. Mutations (Add, Remove, Modify,
// Clear) take the write lock and bump the epoch; Query, Cast and Overlap
// take the read lock and may run concurrently with each other. The world
// references its objects but never owns their memory.
type World struct {
	mu      sync.RWMutex
	ids     *core.IdentifierPool
	order   []Handle
	epoch   uint64
	events  *core.EventSystem
	metrics *Metrics
	logger  *log.Logger
}

func NewWorld(config WorldConfig) *World {
	return &World{
		ids:     core.NewIdentifierPool(config.InitialCapacity),
		order:   make([]Handle, 0, config.InitialCapacity),
		events:  config.Events,
		metrics: config.Metrics,
		logger:  core.NewSubLogger("physics"),
	}
}

// Add registers t and binds its handle. Objects are visited in the order
// they were added.
func (w *World) Add(t Testable) (Handle, error) {
	if t == nil {
		return Handle{}, ErrNilTestable
	}

	w.mu.Lock()
	if !t.Handle().IsZero() {
		w.mu.Unlock()
		return Handle{}, fmt.Errorf("add %s: %w", t.Handle(), ErrAlreadyInWorld)
	}
	h := w.ids.Acquire(t)
	t.Bind(h)
	w.order = append(w.order, h)
	epoch, live := w.bump()
	w.mu.Unlock()

	w.logger.Debug("testable added", "handle", h, "type", t.Type(), "surface", t.Surface())
	w.notify(epoch, live)
	return h, nil
}

// Remove unregisters h. The handle, and any QueryResult holding it, is
// invalid afterwards.
func (w *World) Remove(h Handle) error {
	w.mu.Lock()
	owner, ok := w.ids.Lookup(h)
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("remove %s: %w", h, ErrUnknownHandle)
	}
	if err := w.ids.Release(h); err != nil {
		w.mu.Unlock()
		return err
	}
	owner.(Testable).Bind(Handle{})
	for i, o := range w.order {
		if o == h {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
	epoch, live := w.bump()
	w.mu.Unlock()

	w.logger.Debug("testable removed", "handle", h)
	w.notify(epoch, live)
	return nil
}

// Modify runs fn on the object behind h inside a mutation phase. Use it
// to move or reshape objects so no query observes a half-applied change.
func (w *World) Modify(h Handle, fn func(Testable)) error {
	w.mu.Lock()
	owner, ok := w.ids.Lookup(h)
	if !ok {
		w.mu.Unlock()
		return fmt.Errorf("modify %s: %w", h, ErrUnknownHandle)
	}
	fn(owner.(Testable))
	epoch, live := w.bump()
	w.mu.Unlock()

	w.notify(epoch, live)
	return nil
}

// Clear removes every object and unbinds it.
func (w *World) Clear() {
	w.mu.Lock()
	for _, h := range w.order {
		if owner, ok := w.ids.Lookup(h); ok {
			owner.(Testable).Bind(Handle{})
		}
	}
	w.ids.Reset()
	w.order = w.order[:0]
	epoch, live := w.bump()
	w.mu.Unlock()

	w.notify(epoch, live)
}

// bump must be called with the write lock held.
func (w *World) bump() (uint64, int) {
	w.epoch++
	return w.epoch, len(w.order)
}

func (w *World) notify(epoch uint64, live int) {
	if w.events == nil {
		return
	}
	ctx := core.EventContext{}
	ctx.Data.U64[0] = epoch
	ctx.Data.U32[0] = uint32(live)
	w.events.Fire(core.EventCodeWorldMutated, w, ctx)
}

func (w *World) Get(h Handle) (Testable, bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	owner, ok := w.ids.Lookup(h)
	if !ok {
		return nil, false
	}
	return owner.(Testable), true
}

func (w *World) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.order)
}

// Epoch increases with every mutation.
func (w *World) Epoch() uint64 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.epoch
}

// IsCurrent reports whether r was produced since the last mutation, i.e.
// whether its handles may still be trusted.
func (w *World) IsCurrent(r QueryResult) bool {
	return r.Epoch == w.Epoch()
}

// Each visits objects in insertion order until fn returns false. fn must
// not mutate the world.
func (w *World) Each(fn func(Testable) bool) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	for _, h := range w.order {
		owner, _ := w.ids.Lookup(h)
		if !fn(owner.(Testable)) {
			return
		}
	}
}

// Query collects every object whose bounds intersect box, in insertion order.
func (w *World) Query(box math.BoundingBox) QueryResult {
	w.mu.RLock()
	defer w.mu.RUnlock()

	result := NewQueryResult()
	result.Epoch = w.epoch
	for _, h := range w.order {
		owner, _ := w.ids.Lookup(h)
		owner.(Testable).Query(box, &result)
	}
	w.metrics.observeQuery()
	return result
}

// QueryPoint collects every object whose bounds contain point.
func (w *World) QueryPoint(point math.Vec3) QueryResult {
	return w.Query(math.BoundingBox{Min: point, Max: point})
}

// Cast returns the nearest hit along start->end over all objects not in
// ignore. Objects hit at the same fraction resolve to the earliest added.
func (w *World) Cast(start, end math.Vec3, ignore IgnoreSet) CastResult {
	w.mu.RLock()
	defer w.mu.RUnlock()

	best := CastMiss()
	for _, h := range w.order {
		if ignore.Contains(h) {
			continue
		}
		owner, _ := w.ids.Lookup(h)
		hit := owner.(Testable).Cast(start, end, ignore)
		if hit.Closer(best) {
			best = hit
		}
	}
	w.metrics.observeCast(best.Hit)
	return best
}

// Overlap runs a discrete sphere test: objects whose bounds touch the
// sphere's bounds are resolved with ResolveOverlap, in insertion order.
func (w *World) Overlap(center math.Vec3, radius float32, ignore IgnoreSet) []CollisionResponse {
	w.mu.RLock()
	defer w.mu.RUnlock()

	reach := math.NewBoundingBoxCentered(center, math.Vec3{X: radius, Y: radius, Z: radius})
	candidates := NewQueryResult()
	for _, h := range w.order {
		if ignore.Contains(h) {
			continue
		}
		owner, _ := w.ids.Lookup(h)
		owner.(Testable).Query(reach, &candidates)
	}

	var responses []CollisionResponse
	for _, h := range candidates.Objects {
		owner, _ := w.ids.Lookup(h)
		if r, ok := ResolveOverlap(center, radius, owner.(Testable)); ok {
			responses = append(responses, r)
		}
	}
	w.metrics.observeOverlap()
	return responses
}

// Debug lets every object draw into drawer.
func (w *World) Debug(drawer DebugDrawer) {
	w.Each(func(t Testable) bool {
		t.Debug(drawer)
		return true
	})
}
