package physics

import (
	"github.com/spaghettifunk/anima-spatial/engine/containers"
	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// DebugDrawer receives diagnostic primitives from Testable.Debug.
type DebugDrawer interface {
	DrawBox(box math.BoundingBox, colour math.Vec4)
	DrawLine(from, to math.Vec3, colour math.Vec4)
}

func DebugColour(t BodyType) math.Vec4 {
	switch t {
	case BodyTypeTriangleMesh:
		return math.NewVec4(0.2, 0.8, 1.0, 1.0)
	case BodyTypePlane:
		return math.NewVec4(0.6, 0.6, 0.6, 1.0)
	case BodyTypeSphere:
		return math.NewVec4(1.0, 0.8, 0.2, 1.0)
	default:
		return math.NewVec4(0.2, 1.0, 0.3, 1.0)
	}
}

type DebugPrimitiveKind uint8

const (
	DebugPrimitiveBox DebugPrimitiveKind = iota
	DebugPrimitiveLine
)

type DebugPrimitive struct {
	Kind   DebugPrimitiveKind
	Box    math.BoundingBox
	From   math.Vec3
	To     math.Vec3
	Colour math.Vec4
}

// DebugQueue buffers primitives for one frame. Once full, further
// primitives are dropped and counted.
type DebugQueue struct {
	queue   *containers.RingQueue[DebugPrimitive]
	dropped int
}

func NewDebugQueue(capacity int) *DebugQueue {
	return &DebugQueue{queue: containers.NewRingQueue[DebugPrimitive](capacity)}
}

func (q *DebugQueue) DrawBox(box math.BoundingBox, colour math.Vec4) {
	q.push(DebugPrimitive{Kind: DebugPrimitiveBox, Box: box, Colour: colour})
}

func (q *DebugQueue) DrawLine(from, to math.Vec3, colour math.Vec4) {
	q.push(DebugPrimitive{Kind: DebugPrimitiveLine, From: from, To: to, Colour: colour})
}

func (q *DebugQueue) push(p DebugPrimitive) {
	if err := q.queue.Enqueue(p); err != nil {
		q.dropped++
	}
}

func (q *DebugQueue) Len() int {
	return q.queue.Len()
}

func (q *DebugQueue) Dropped() int {
	return q.dropped
}

// Drain hands every buffered primitive to fn in submission order and
// resets the drop counter.
func (q *DebugQueue) Drain(fn func(DebugPrimitive)) {
	for !q.queue.IsEmpty() {
		p, err := q.queue.Dequeue()
		if err != nil {
			break
		}
		fn(p)
	}
	q.dropped = 0
}
