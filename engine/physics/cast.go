package physics

import "github.com/spaghettifunk/anima-spatial/engine/math"

// MissFraction is the Fraction carried by a miss.
const MissFraction = math.K_INFINITY

// CastResult is the outcome of a segment cast. Fraction is the parametric
// position of the hit along Start->End, in [0, 1].
type CastResult struct {
	Hit      bool
	Object   Handle
	Fraction float32
	Start    math.Vec3
	End      math.Vec3
	// Normal is the unit normal of the struck surface, facing the segment start.
	Normal  math.Vec3
	Surface PhysicalSurface
}

// CastMiss is the sentinel returned when nothing is struck.
func CastMiss() CastResult {
	return CastResult{Fraction: MissFraction}
}

func newCastHit(body *Body, start, end math.Vec3, fraction float32, normal math.Vec3) CastResult {
	return CastResult{
		Hit:      true,
		Object:   body.handle,
		Fraction: fraction,
		Start:    start,
		End:      end,
		Normal:   normal,
		Surface:  body.surface,
	}
}

// Point is the hit position start + fraction*(end-start). Meaningless on a miss.
func (c CastResult) Point() math.Vec3 {
	return c.Start.Lerp(c.End, c.Fraction)
}

// Closer reports whether c is a hit strictly nearer than other. Equal
// fractions keep the earlier result.
func (c CastResult) Closer(other CastResult) bool {
	if !c.Hit {
		return false
	}
	return !other.Hit || c.Fraction < other.Fraction
}

// faceStart flips a two-sided surface normal so it faces the segment start.
func faceStart(normal, dir math.Vec3) math.Vec3 {
	if normal.Dot(dir) > 0 {
		return normal.Negate()
	}
	return normal
}
