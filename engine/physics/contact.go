package physics

import "github.com/spaghettifunk/anima-spatial/engine/math"

// Contact describes a sphere overlapping a shape. Normal points from the
// shape towards the sphere centre; moving the sphere by Normal*Depth
// separates the two.
type Contact struct {
	Point  math.Vec3
	Normal math.Vec3
	Depth  float32
}

// SphereContacter is implemented by shapes that support discrete overlap
// tests against a query sphere.
type SphereContacter interface {
	SphereContact(center math.Vec3, radius float32) (Contact, bool)
}

// boxSphereContact is shared by Box and by the bounds fallback in
// ResolveOverlap.
func boxSphereContact(box math.BoundingBox, center math.Vec3, radius float32) (Contact, bool) {
	closest := box.ClosestPoint(center)
	diff := center.Sub(closest)
	distSq := diff.LengthSquared()

	if distSq > math.K_GEOMETRY_EPSILON*math.K_GEOMETRY_EPSILON {
		if distSq > radius*radius {
			return Contact{}, false
		}
		dist := math.Sqrt(distSq)
		return Contact{
			Point:  closest,
			Normal: diff.MulScalar(1 / dist),
			Depth:  radius - dist,
		}, true
	}

	// Centre inside the box: push out through the nearest face.
	normal, dist := box.NearestFace(center)
	point := center.Add(normal.MulScalar(dist))
	return Contact{Point: point, Normal: normal, Depth: radius + dist}, true
}
