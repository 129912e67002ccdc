package physics

import (
	"fmt"

	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// Plane is the infinite two-sided plane of points p with Normal·p = Distance.
type Plane struct {
	Body
	normal   math.Vec3
	distance float32
	bounds   math.BoundingBox
}

func NewPlane(normal math.Vec3, distance float32) (*Plane, error) {
	p := &Plane{}
	if err := p.Set(normal, distance); err != nil {
		return nil, err
	}
	return p, nil
}

// NewPlaneFromPoint builds the plane through point with the given normal.
func NewPlaneFromPoint(normal, point math.Vec3) (*Plane, error) {
	return NewPlane(normal, normal.Normalized().Dot(point))
}

func (p *Plane) Set(normal math.Vec3, distance float32) error {
	if normal.LengthSquared() < math.K_GEOMETRY_EPSILON {
		return fmt.Errorf("plane normal is zero: %w", ErrInvalidShape)
	}
	length := normal.Length()
	p.normal = normal.MulScalar(1 / length)
	p.distance = distance / length
	p.updateBounds()
	return nil
}

// updateBounds flattens the bounds on the normal axis when the plane is
// axis aligned; any other orientation spans all of space.
func (p *Plane) updateBounds() {
	p.bounds = math.InfiniteBoundingBox()
	n := p.normal
	const eps = math.K_GEOMETRY_EPSILON
	switch {
	case math.Abs(n.Y) < eps && math.Abs(n.Z) < eps:
		x := p.distance / n.X
		p.bounds.Min.X, p.bounds.Max.X = x, x
	case math.Abs(n.X) < eps && math.Abs(n.Z) < eps:
		y := p.distance / n.Y
		p.bounds.Min.Y, p.bounds.Max.Y = y, y
	case math.Abs(n.X) < eps && math.Abs(n.Y) < eps:
		z := p.distance / n.Z
		p.bounds.Min.Z, p.bounds.Max.Z = z, z
	}
}

func (p *Plane) Normal() math.Vec3 {
	return p.normal
}

func (p *Plane) Distance() float32 {
	return p.distance
}

// SignedDistance is positive on the side the normal points to.
func (p *Plane) SignedDistance(point math.Vec3) float32 {
	return p.normal.Dot(point) - p.distance
}

func (p *Plane) Translate(offset math.Vec3) {
	p.distance += p.normal.Dot(offset)
	p.updateBounds()
}

func (p *Plane) Type() BodyType {
	return BodyTypePlane
}

func (p *Plane) GetBounds() math.BoundingBox {
	return p.bounds
}

func (p *Plane) Query(box math.BoundingBox, result *QueryResult) {
	query(p, box, result)
}

func (p *Plane) Cast(start, end math.Vec3, ignore IgnoreSet) CastResult {
	if ignore.Contains(p.handle) {
		return CastMiss()
	}
	dir := end.Sub(start)
	denom := p.normal.Dot(dir)
	startDist := p.SignedDistance(start)

	if math.Abs(denom) <= math.K_GEOMETRY_EPSILON*dir.Length() {
		// Parallel; only a segment lying in the plane touches it.
		if math.Abs(startDist) < math.K_GEOMETRY_EPSILON {
			return newCastHit(&p.Body, start, end, 0, p.normal)
		}
		return CastMiss()
	}

	t := -startDist / denom
	if t < 0 || t > 1 {
		return CastMiss()
	}
	return newCastHit(&p.Body, start, end, t, faceStart(p.normal, dir))
}

func (p *Plane) SphereContact(center math.Vec3, radius float32) (Contact, bool) {
	dist := p.SignedDistance(center)
	if math.Abs(dist) > radius {
		return Contact{}, false
	}
	normal := p.normal
	if dist < 0 {
		normal = normal.Negate()
	}
	return Contact{
		Point:  center.Sub(p.normal.MulScalar(dist)),
		Normal: normal,
		Depth:  radius - math.Abs(dist),
	}, true
}
