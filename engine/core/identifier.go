package core

import "fmt"

// Identifier is a generational handle into an IdentifierPool. The zero
// value is never issued and is always invalid.
type Identifier struct {
	Index      uint32
	Generation uint32
}

// IsZero reports whether the identifier is the zero value.
func (id Identifier) IsZero() bool {
	return id.Generation == 0
}

func (id Identifier) String() string {
	return fmt.Sprintf("%d:%d", id.Index, id.Generation)
}

// IdentifierPool hands out identifiers for owners. Released slots are
// reused lowest-index first; each reuse bumps the slot generation so old
// identifiers for that slot stop resolving.
type IdentifierPool struct {
	owners      []interface{}
	generations []uint32
}

func NewIdentifierPool(capacity int) *IdentifierPool {
	return &IdentifierPool{
		owners:      make([]interface{}, 0, capacity),
		generations: make([]uint32, 0, capacity),
	}
}

func (p *IdentifierPool) Acquire(owner interface{}) Identifier {
	length := uint32(len(p.owners))
	for i := uint32(0); i < length; i++ {
		// Existing free spot. Take it.
		if p.owners[i] == nil {
			p.owners[i] = owner
			return Identifier{Index: i, Generation: p.generations[i]}
		}
	}

	// No free slot, push a new one. Generations start at 1.
	p.owners = append(p.owners, owner)
	p.generations = append(p.generations, 1)
	return Identifier{Index: length, Generation: 1}
}

func (p *IdentifierPool) Release(id Identifier) error {
	if !p.IsValid(id) {
		if id.IsZero() || id.Index >= uint32(len(p.owners)) {
			return fmt.Errorf("release %s: %w", id, ErrInvalidIdentifier)
		}
		return fmt.Errorf("release %s: %w", id, ErrStaleIdentifier)
	}
	p.owners[id.Index] = nil
	p.generations[id.Index]++
	return nil
}

// Lookup returns the owner registered for id, if id is still live.
func (p *IdentifierPool) Lookup(id Identifier) (interface{}, bool) {
	if !p.IsValid(id) {
		return nil, false
	}
	return p.owners[id.Index], true
}

func (p *IdentifierPool) IsValid(id Identifier) bool {
	if id.IsZero() || id.Index >= uint32(len(p.owners)) {
		return false
	}
	return p.owners[id.Index] != nil && p.generations[id.Index] == id.Generation
}

// Reset drops every owner. Generations are kept so identifiers issued
// before the reset stay invalid.
func (p *IdentifierPool) Reset() {
	for i := range p.owners {
		if p.owners[i] != nil {
			p.owners[i] = nil
			p.generations[i]++
		}
	}
}
