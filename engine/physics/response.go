package physics

import "github.com/spaghettifunk/anima-spatial/engine/math"

// ResponseMode tells how CollisionResponse.Distance is measured.
type ResponseMode uint8

const (
	// ResponseContinuous comes from a cast: Distance is the hit fraction
	// along the cast segment, in [0, 1].
	ResponseContinuous ResponseMode = iota
	// ResponseDiscrete comes from an overlap test: Distance is the
	// penetration depth in world units.
	ResponseDiscrete
)

func (m ResponseMode) String() string {
	if m == ResponseDiscrete {
		return "discrete"
	}
	return "continuous"
}

// CollisionResponse is consumed by the physics step right after it is
// produced and is never stored.
type CollisionResponse struct {
	Point    math.Vec3
	Normal   math.Vec3
	Distance float32
	Mode     ResponseMode
	Object   Handle
	Surface  PhysicalSurface
}

// ResolveCast derives the contact from a cast hit. Calling it with a miss
// is a programming error and panics with ErrResolveWithoutHit; check
// CastResult.Hit first.
func ResolveCast(cast CastResult) CollisionResponse {
	if !cast.Hit {
		panic(ErrResolveWithoutHit)
	}
	return CollisionResponse{
		Point:    cast.Point(),
		Normal:   cast.Normal.Normalized(),
		Distance: cast.Fraction,
		Mode:     ResponseContinuous,
		Object:   cast.Object,
		Surface:  cast.Surface,
	}
}

// ResolveOverlap tests a query sphere against t. Shapes without their own
// SphereContact are treated as their bounds. The bool is false when the
// sphere does not touch t.
func ResolveOverlap(center math.Vec3, radius float32, t Testable) (CollisionResponse, bool) {
	var (
		contact Contact
		ok      bool
	)
	if sc, isContacter := t.(SphereContacter); isContacter {
		contact, ok = sc.SphereContact(center, radius)
	} else {
		contact, ok = boxSphereContact(t.GetBounds(), center, radius)
	}
	if !ok {
		return CollisionResponse{}, false
	}
	return CollisionResponse{
		Point:    contact.Point,
		Normal:   contact.Normal,
		Distance: contact.Depth,
		Mode:     ResponseDiscrete,
		Object:   t.Handle(),
		Surface:  t.Surface(),
	}, true
}

// PushOut is the translation that separates a discrete contact. Continuous
// responses have no penetration and return zero.
func (r CollisionResponse) PushOut() math.Vec3 {
	if r.Mode != ResponseDiscrete {
		return math.Vec3{}
	}
	return r.Normal.MulScalar(r.Distance)
}

// Reflect mirrors velocity about the contact normal.
func (r CollisionResponse) Reflect(velocity math.Vec3) math.Vec3 {
	return velocity.Sub(r.Normal.MulScalar(2 * velocity.Dot(r.Normal)))
}
