package physics

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// QueryResult collects the objects matched by one query pass. Objects are
// appended in visit order and never deduplicated; the handles are only
// meaningful for the world epoch recorded in Epoch.
type QueryResult struct {
	Hit     bool
	Objects []Handle
	Epoch   uint64
}

// NewQueryResult returns an empty result.
func NewQueryResult() QueryResult {
	return QueryResult{}
}

// Add appends h and marks the result as hit.
func (r *QueryResult) Add(h Handle) {
	r.Objects = append(r.Objects, h)
	r.Hit = true
}

// Bool is the short-circuit check: true when anything matched.
func (r QueryResult) Bool() bool {
	return r.Hit
}

func (r QueryResult) Len() int {
	return len(r.Objects)
}

// Contains reports whether h was matched at least once.
func (r QueryResult) Contains(h Handle) bool {
	for _, o := range r.Objects {
		if o == h {
			return true
		}
	}
	return false
}

// Reset empties the result, keeping the backing array.
func (r *QueryResult) Reset() {
	r.Hit = false
	r.Objects = r.Objects[:0]
	r.Epoch = 0
}

// Fingerprint hashes the ordered object list. Two passes over an unchanged
// world produce the same value.
func (r QueryResult) Fingerprint() uint64 {
	d := xxhash.New()
	var buf [8]byte
	for _, h := range r.Objects {
		binary.LittleEndian.PutUint32(buf[0:4], h.Index)
		binary.LittleEndian.PutUint32(buf[4:8], h.Generation)
		_, _ = d.Write(buf[:])
	}
	return d.Sum64()
}
