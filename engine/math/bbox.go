package math

// NewBoundingBox builds a box from two arbitrary corners, sorting each axis
// so Min <= Max.
func NewBoundingBox(a, b Vec3) BoundingBox {
	return BoundingBox{
		Min: a.MinComponents(b),
		Max: a.MaxComponents(b),
	}
}

// NewBoundingBoxCentered builds a box around center with the given half extents.
func NewBoundingBoxCentered(center, halfExtents Vec3) BoundingBox {
	return NewBoundingBox(center.Sub(halfExtents), center.Add(halfExtents))
}

// BoundingBoxFromPoints returns the smallest box containing every point.
// An empty slice yields the zero box.
func BoundingBoxFromPoints(points ...Vec3) BoundingBox {
	if len(points) == 0 {
		return BoundingBox{}
	}
	box := BoundingBox{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		box.Min = box.Min.MinComponents(p)
		box.Max = box.Max.MaxComponents(p)
	}
	return box
}

// InfiniteBoundingBox spans the whole usable coordinate range.
func InfiniteBoundingBox() BoundingBox {
	return BoundingBox{
		Min: Vec3{-K_INFINITY, -K_INFINITY, -K_INFINITY},
		Max: Vec3{K_INFINITY, K_INFINITY, K_INFINITY},
	}
}

func (b BoundingBox) IsValid() bool {
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Contains reports whether point lies inside or on the boundary of b.
func (b BoundingBox) Contains(point Vec3) bool {
	return point.X >= b.Min.X && point.X <= b.Max.X &&
		point.Y >= b.Min.Y && point.Y <= b.Max.Y &&
		point.Z >= b.Min.Z && point.Z <= b.Max.Z
}

// Intersects reports whether b and other overlap. Touching faces count.
func (b BoundingBox) Intersects(other BoundingBox) bool {
	return b.Min.X <= other.Max.X && b.Max.X >= other.Min.X &&
		b.Min.Y <= other.Max.Y && b.Max.Y >= other.Min.Y &&
		b.Min.Z <= other.Max.Z && b.Max.Z >= other.Min.Z
}

// Union returns the smallest box enclosing both b and other.
func (b BoundingBox) Union(other BoundingBox) BoundingBox {
	return BoundingBox{
		Min: b.Min.MinComponents(other.Min),
		Max: b.Max.MaxComponents(other.Max),
	}
}

func (b BoundingBox) Center() Vec3 {
	return b.Min.Add(b.Max).MulScalar(0.5)
}

func (b BoundingBox) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

func (b BoundingBox) HalfExtents() Vec3 {
	return b.Size().MulScalar(0.5)
}

// Expand grows the box by amount on every side.
func (b BoundingBox) Expand(amount float32) BoundingBox {
	d := Vec3{amount, amount, amount}
	return NewBoundingBox(b.Min.Sub(d), b.Max.Add(d))
}

func (b BoundingBox) Translate(offset Vec3) BoundingBox {
	return BoundingBox{Min: b.Min.Add(offset), Max: b.Max.Add(offset)}
}

// ClosestPoint clamps point onto the box.
func (b BoundingBox) ClosestPoint(point Vec3) Vec3 {
	return Vec3{
		X: Clamp(point.X, b.Min.X, b.Max.X),
		Y: Clamp(point.Y, b.Min.Y, b.Max.Y),
		Z: Clamp(point.Z, b.Min.Z, b.Max.Z),
	}
}

// DistanceSquared is the squared distance from point to the box, 0 inside.
func (b BoundingBox) DistanceSquared(point Vec3) float32 {
	return point.DistanceSquared(b.ClosestPoint(point))
}

/**
 * @brief Slab test of the segment start->end against the box.
 *
 * @return the entry fraction t in [0, 1], the unit normal of the entered
 * face and whether the segment touches the box at all. A segment that
 * starts inside the box reports t = 0 and a normal opposing the segment
 * direction; a zero-length one reports the nearest face normal.
 */
func (b BoundingBox) IntersectSegment(start, end Vec3) (float32, Vec3, bool) {
	dir := end.Sub(start)
	tEnter := -K_INFINITY
	tExit := K_INFINITY
	enterAxis := -1
	var enterSign float32

	for axis := 0; axis < 3; axis++ {
		s := start.Axis(axis)
		d := dir.Axis(axis)
		lo := b.Min.Axis(axis)
		hi := b.Max.Axis(axis)

		if d == 0 {
			// Parallel to this slab: must already be between its planes.
			if s < lo || s > hi {
				return 0, Vec3{}, false
			}
			continue
		}

		t1 := (lo - s) / d
		t2 := (hi - s) / d
		sign := float32(-1)
		if t1 > t2 {
			t1, t2 = t2, t1
			sign = 1
		}
		if t1 > tEnter {
			tEnter = t1
			enterAxis = axis
			enterSign = sign
		}
		if t2 < tExit {
			tExit = t2
		}
		if tEnter > tExit {
			return 0, Vec3{}, false
		}
	}

	if tExit < 0 || tEnter > 1 {
		return 0, Vec3{}, false
	}
	if tEnter <= 0 || enterAxis < 0 {
		if dir.IsZero() {
			normal, _ := b.NearestFace(start)
			return 0, normal, true
		}
		return 0, dir.Normalized().Negate(), true
	}

	normal := Vec3{}
	switch enterAxis {
	case 0:
		normal.X = enterSign
	case 1:
		normal.Y = enterSign
	case 2:
		normal.Z = enterSign
	}
	return tEnter, normal, true
}

// NearestFace returns the outward unit normal of the face closest to p and
// the distance to it. Meant for points inside the box; ties go to the lower
// axis and to the Min face.
func (b BoundingBox) NearestFace(p Vec3) (Vec3, float32) {
	bestAxis := 0
	bestSign := float32(-1)
	bestDist := K_INFINITY
	for axis := 0; axis < 3; axis++ {
		toMin := p.Axis(axis) - b.Min.Axis(axis)
		toMax := b.Max.Axis(axis) - p.Axis(axis)
		if toMin < bestDist {
			bestDist, bestAxis, bestSign = toMin, axis, -1
		}
		if toMax < bestDist {
			bestDist, bestAxis, bestSign = toMax, axis, 1
		}
	}
	normal := Vec3{}
	switch bestAxis {
	case 0:
		normal.X = bestSign
	case 1:
		normal.Y = bestSign
	default:
		normal.Z = bestSign
	}
	return normal, bestDist
}
