package physics

import "github.com/spaghettifunk/anima-spatial/engine/math"

// Box is an axis-aligned solid box.
type Box struct {
	Body
	bounds math.BoundingBox
}

func NewBox(bounds math.BoundingBox) *Box {
	return &Box{bounds: math.NewBoundingBox(bounds.Min, bounds.Max)}
}

func (b *Box) SetBounds(bounds math.BoundingBox) {
	b.bounds = math.NewBoundingBox(bounds.Min, bounds.Max)
}

func (b *Box) Translate(offset math.Vec3) {
	b.bounds = b.bounds.Translate(offset)
}

func (b *Box) Type() BodyType {
	return BodyTypeAABB
}

func (b *Box) GetBounds() math.BoundingBox {
	return b.bounds
}

func (b *Box) Query(box math.BoundingBox, result *QueryResult) {
	query(b, box, result)
}

func (b *Box) Cast(start, end math.Vec3, ignore IgnoreSet) CastResult {
	if ignore.Contains(b.handle) {
		return CastMiss()
	}
	t, normal, ok := b.bounds.IntersectSegment(start, end)
	if !ok {
		return CastMiss()
	}
	return newCastHit(&b.Body, start, end, t, normal)
}

func (b *Box) SphereContact(center math.Vec3, radius float32) (Contact, bool) {
	return boxSphereContact(b.bounds, center, radius)
}

func (b *Box) Debug(drawer DebugDrawer) {
	drawer.DrawBox(b.bounds, DebugColour(BodyTypeAABB))
}
