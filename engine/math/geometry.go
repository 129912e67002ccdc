package math

// NewTriangle builds a triangle and computes its face normal from the
// counter-clockwise winding v0 -> v1 -> v2.
func NewTriangle(v0, v1, v2 Vec3) Triangle {
	return Triangle{V0: v0, V1: v1, V2: v2, Normal: TriangleNormal(v0, v1, v2)}
}

func TriangleNormal(v0, v1, v2 Vec3) Vec3 {
	edge1 := v1.Sub(v0)
	edge2 := v2.Sub(v0)
	// NOTE: this is the face normal, no smoothing.
	return edge1.Cross(edge2).Normalized()
}

func (t Triangle) Bounds() BoundingBox {
	return BoundingBoxFromPoints(t.V0, t.V1, t.V2)
}

func (t Triangle) Translate(offset Vec3) Triangle {
	return Triangle{
		V0:     t.V0.Add(offset),
		V1:     t.V1.Add(offset),
		V2:     t.V2.Add(offset),
		Normal: t.Normal,
	}
}

// IsDegenerate reports a zero-area triangle.
func (t Triangle) IsDegenerate() bool {
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)
	scale := edge1.LengthSquared() * edge2.LengthSquared()
	return edge1.Cross(edge2).LengthSquared() <= K_GEOMETRY_EPSILON*K_GEOMETRY_EPSILON*scale
}

/**
 * @brief Moller-Trumbore test of the segment start->end against the triangle.
 * Both faces are hit.
 *
 * @return the hit fraction along the segment in [0, 1] and whether it hit.
 */
func (t Triangle) IntersectSegment(start, end Vec3) (float32, bool) {
	dir := end.Sub(start)
	edge1 := t.V1.Sub(t.V0)
	edge2 := t.V2.Sub(t.V0)

	p := dir.Cross(edge2)
	det := edge1.Dot(p)
	// det scales with |dir|*|edge1|*|edge2|, so the parallel test does too.
	if kabs(det) <= K_GEOMETRY_EPSILON*dir.Length()*edge1.Length()*edge2.Length() {
		return 0, false
	}
	invDet := 1.0 / det

	tv := start.Sub(t.V0)
	u := tv.Dot(p) * invDet
	if u < 0 || u > 1 {
		return 0, false
	}

	q := tv.Cross(edge1)
	v := dir.Dot(q) * invDet
	if v < 0 || u+v > 1 {
		return 0, false
	}

	hit := edge2.Dot(q) * invDet
	if hit < 0 || hit > 1 {
		return 0, false
	}
	return hit, true
}

// ClosestPoint returns the point on the triangle nearest to p, walking the
// vertex, edge and face Voronoi regions in turn.
func (t Triangle) ClosestPoint(p Vec3) Vec3 {
	a, b, c := t.V0, t.V1, t.V2
	ab := b.Sub(a)
	ac := c.Sub(a)
	ap := p.Sub(a)

	d1 := ab.Dot(ap)
	d2 := ac.Dot(ap)
	if d1 <= 0 && d2 <= 0 {
		return a
	}

	bp := p.Sub(b)
	d3 := ab.Dot(bp)
	d4 := ac.Dot(bp)
	if d3 >= 0 && d4 <= d3 {
		return b
	}

	vc := d1*d4 - d3*d2
	if vc <= 0 && d1 >= 0 && d3 <= 0 {
		v := d1 / (d1 - d3)
		return a.Add(ab.MulScalar(v))
	}

	cp := p.Sub(c)
	d5 := ab.Dot(cp)
	d6 := ac.Dot(cp)
	if d6 >= 0 && d5 <= d6 {
		return c
	}

	vb := d5*d2 - d1*d6
	if vb <= 0 && d2 >= 0 && d6 <= 0 {
		w := d2 / (d2 - d6)
		return a.Add(ac.MulScalar(w))
	}

	va := d3*d6 - d5*d4
	if va <= 0 && (d4-d3) >= 0 && (d5-d6) >= 0 {
		w := (d4 - d3) / ((d4 - d3) + (d5 - d6))
		return b.Add(c.Sub(b).MulScalar(w))
	}

	// Inside the face.
	denom := 1.0 / (va + vb + vc)
	v := vb * denom
	w := vc * denom
	return a.Add(ab.MulScalar(v)).Add(ac.MulScalar(w))
}
