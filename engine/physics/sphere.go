package physics

import (
	"fmt"

	"github.com/spaghettifunk/anima-spatial/engine/math"
)

type Sphere struct {
	Body
	center math.Vec3
	radius float32
	bounds math.BoundingBox
}

func NewSphere(center math.Vec3, radius float32) (*Sphere, error) {
	if radius < 0 {
		return nil, fmt.Errorf("sphere radius %f: %w", radius, ErrInvalidShape)
	}
	s := &Sphere{center: center, radius: radius}
	s.updateBounds()
	return s, nil
}

func (s *Sphere) updateBounds() {
	r := math.Vec3{X: s.radius, Y: s.radius, Z: s.radius}
	s.bounds = math.BoundingBox{Min: s.center.Sub(r), Max: s.center.Add(r)}
}

func (s *Sphere) Center() math.Vec3 {
	return s.center
}

func (s *Sphere) Radius() float32 {
	return s.radius
}

func (s *Sphere) SetCenter(center math.Vec3) {
	s.center = center
	s.updateBounds()
}

func (s *Sphere) Translate(offset math.Vec3) {
	s.SetCenter(s.center.Add(offset))
}

func (s *Sphere) SetRadius(radius float32) error {
	if radius < 0 {
		return fmt.Errorf("sphere radius %f: %w", radius, ErrInvalidShape)
	}
	s.radius = radius
	s.updateBounds()
	return nil
}

func (s *Sphere) Type() BodyType {
	return BodyTypeSphere
}

func (s *Sphere) GetBounds() math.BoundingBox {
	return s.bounds
}

func (s *Sphere) Query(box math.BoundingBox, result *QueryResult) {
	query(s, box, result)
}

func (s *Sphere) Cast(start, end math.Vec3, ignore IgnoreSet) CastResult {
	if ignore.Contains(s.handle) {
		return CastMiss()
	}

	dir := end.Sub(start)
	m := start.Sub(s.center)
	c := m.LengthSquared() - s.radius*s.radius
	if c <= 0 {
		// Starting inside the sphere. At the centre the normal opposes the
		// segment, and a zero-length segment there reports up.
		normal := m.NormalizedOr(dir.Negate().NormalizedOr(math.NewVec3Up()))
		return newCastHit(&s.Body, start, end, 0, normal)
	}

	a := dir.LengthSquared()
	if a == 0 {
		return CastMiss()
	}
	b := m.Dot(dir)
	disc := b*b - a*c
	if disc < 0 {
		return CastMiss()
	}
	t := (-b - math.Sqrt(disc)) / a
	if t < 0 || t > 1 {
		return CastMiss()
	}
	point := start.Add(dir.MulScalar(t))
	normal := point.Sub(s.center).Normalized()
	return newCastHit(&s.Body, start, end, t, normal)
}

func (s *Sphere) SphereContact(center math.Vec3, radius float32) (Contact, bool) {
	diff := center.Sub(s.center)
	dist := diff.Length()
	reach := s.radius + radius
	if dist > reach {
		return Contact{}, false
	}
	normal := math.NewVec3Up()
	if dist > math.K_GEOMETRY_EPSILON {
		normal = diff.MulScalar(1 / dist)
	}
	return Contact{
		Point:  s.center.Add(normal.MulScalar(s.radius)),
		Normal: normal,
		Depth:  reach - dist,
	}, true
}

func (s *Sphere) Debug(drawer DebugDrawer) {
	drawer.DrawBox(s.bounds, DebugColour(BodyTypeSphere))
}
