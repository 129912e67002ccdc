package math

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func box(minX, minY, minZ, maxX, maxY, maxZ float32) BoundingBox {
	return BoundingBox{Min: Vec3{minX, minY, minZ}, Max: Vec3{maxX, maxY, maxZ}}
}

func TestBoundingBoxIntersects(t *testing.T) {
	tests := []struct {
		name string
		a, b BoundingBox
		want bool
	}{
		{"identical", box(0, 0, 0, 1, 1, 1), box(0, 0, 0, 1, 1, 1), true},
		{"partial overlap", box(0, 0, 0, 2, 2, 2), box(1, 1, 1, 3, 3, 3), true},
		{"contained", box(0, 0, 0, 10, 10, 10), box(4, 4, 4, 5, 5, 5), true},
		{"touching faces", box(0, 0, 0, 1, 1, 1), box(1, 0, 0, 2, 1, 1), true},
		{"touching corner", box(0, 0, 0, 1, 1, 1), box(1, 1, 1, 2, 2, 2), true},
		{"separated on x", box(0, 0, 0, 1, 1, 1), box(2, 0, 0, 3, 1, 1), false},
		{"separated on y", box(0, 0, 0, 1, 1, 1), box(0, -3, 0, 1, -2, 1), false},
		{"separated on z", box(0, 0, 0, 1, 1, 1), box(0, 0, 1.5, 1, 1, 2), false},
		{"degenerate point inside", box(0, 0, 0, 1, 1, 1), box(0.5, 0.5, 0.5, 0.5, 0.5, 0.5), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, tt.a.Intersects(tt.b))
			require.Equal(t, tt.want, tt.b.Intersects(tt.a), "symmetry")
		})
	}
}

func TestBoundingBoxContains(t *testing.T) {
	b := box(-1, -1, -1, 1, 1, 1)
	require.True(t, b.Contains(Vec3{}))
	require.True(t, b.Contains(Vec3{1, 1, 1}))
	require.True(t, b.Contains(Vec3{-1, 0, 1}))
	require.False(t, b.Contains(Vec3{1.01, 0, 0}))

	point := box(2, 3, 4, 2, 3, 4)
	require.True(t, point.IsValid())
	require.True(t, point.Contains(Vec3{2, 3, 4}))
}

func TestBoundingBoxUnion(t *testing.T) {
	a := box(0, 0, 0, 1, 1, 1)
	b := box(-2, 0.5, 0, 0.5, 3, 0.5)
	u := a.Union(b)
	require.Equal(t, box(-2, 0, 0, 1, 3, 1), u)
	require.Equal(t, u, b.Union(a))
	require.True(t, u.Intersects(a) && u.Intersects(b))
}

func TestNewBoundingBoxSortsCorners(t *testing.T) {
	b := NewBoundingBox(Vec3{3, -1, 2}, Vec3{-3, 1, -2})
	require.True(t, b.IsValid())
	require.Equal(t, Vec3{-3, -1, -2}, b.Min)
	require.Equal(t, Vec3{3, 1, 2}, b.Max)

	pts := BoundingBoxFromPoints(Vec3{1, 2, 3}, Vec3{-1, 5, 0}, Vec3{0, 0, 9})
	require.Equal(t, box(-1, 0, 0, 1, 5, 9), pts)
}

func TestBoundingBoxClosestPoint(t *testing.T) {
	b := box(0, 0, 0, 2, 2, 2)
	require.Equal(t, Vec3{2, 1, 0}, b.ClosestPoint(Vec3{5, 1, -3}))
	require.Equal(t, float32(0), b.DistanceSquared(Vec3{1, 1, 1}))
	require.InDelta(t, 9.0, b.DistanceSquared(Vec3{5, 1, 1}), 1e-6)
}

func TestBoundingBoxIntersectSegment(t *testing.T) {
	b := box(4, -1, -1, 6, 1, 1)

	t.Run("hit halfway on min x face", func(t *testing.T) {
		hit, normal, ok := b.IntersectSegment(Vec3{0, 0, 0}, Vec3{8, 0, 0})
		require.True(t, ok)
		require.InDelta(t, 0.5, hit, 1e-6)
		require.Equal(t, Vec3{-1, 0, 0}, normal)
	})

	t.Run("hit from the far side", func(t *testing.T) {
		hit, normal, ok := b.IntersectSegment(Vec3{10, 0, 0}, Vec3{2, 0, 0})
		require.True(t, ok)
		require.InDelta(t, 0.5, hit, 1e-6)
		require.Equal(t, Vec3{1, 0, 0}, normal)
	})

	t.Run("segment too short", func(t *testing.T) {
		_, _, ok := b.IntersectSegment(Vec3{0, 0, 0}, Vec3{3, 0, 0})
		require.False(t, ok)
	})

	t.Run("parallel outside slab", func(t *testing.T) {
		_, _, ok := b.IntersectSegment(Vec3{0, 5, 0}, Vec3{10, 5, 0})
		require.False(t, ok)
	})

	t.Run("start inside", func(t *testing.T) {
		hit, normal, ok := b.IntersectSegment(Vec3{5, 0, 0}, Vec3{5, 10, 0})
		require.True(t, ok)
		require.Equal(t, float32(0), hit)
		require.True(t, normal.Compare(Vec3{0, -1, 0}, 1e-6))
	})

	t.Run("zero length inside uses nearest face", func(t *testing.T) {
		p := Vec3{5, 0.75, 0}
		hit, normal, ok := b.IntersectSegment(p, p)
		require.True(t, ok)
		require.Equal(t, float32(0), hit)
		require.Equal(t, Vec3{0, 1, 0}, normal)
	})

	t.Run("zero length outside misses", func(t *testing.T) {
		_, _, ok := b.IntersectSegment(Vec3{}, Vec3{})
		require.False(t, ok)
	})
}

func TestBoundingBoxNearestFace(t *testing.T) {
	b := box(0, 0, 0, 1, 1, 1)
	tests := []struct {
		name   string
		p      Vec3
		normal Vec3
		dist   float32
	}{
		{"centre ties to min x", Vec3{0.5, 0.5, 0.5}, Vec3{-1, 0, 0}, 0.5},
		{"near max z", Vec3{0.5, 0.4, 0.9}, Vec3{0, 0, 1}, 0.1},
		{"near min y", Vec3{0.3, 0.05, 0.5}, Vec3{0, -1, 0}, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			normal, dist := b.NearestFace(tt.p)
			require.Equal(t, tt.normal, normal)
			require.InDelta(t, tt.dist, dist, 1e-6)
		})
	}
}

func TestTriangle(t *testing.T) {
	tri := NewTriangle(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{0, 1, 0})
	require.True(t, tri.Normal.Compare(Vec3{0, 0, 1}, 1e-6))
	require.False(t, tri.IsDegenerate())

	t.Run("segment through face", func(t *testing.T) {
		hit, ok := tri.IntersectSegment(Vec3{0.25, 0.25, 1}, Vec3{0.25, 0.25, -1})
		require.True(t, ok)
		require.InDelta(t, 0.5, hit, 1e-6)
	})

	t.Run("segment misses", func(t *testing.T) {
		_, ok := tri.IntersectSegment(Vec3{2, 2, 1}, Vec3{2, 2, -1})
		require.False(t, ok)
	})

	t.Run("tolerance follows scale", func(t *testing.T) {
		small := NewTriangle(Vec3{0, 0, 0}, Vec3{0.01, 0, 0}, Vec3{0, 0.01, 0})
		require.False(t, small.IsDegenerate())
		hit, ok := small.IntersectSegment(Vec3{0.002, 0.002, 0.004}, Vec3{0.002, 0.002, -0.004})
		require.True(t, ok)
		require.InDelta(t, 0.5, hit, 1e-3)

		_, ok = small.IntersectSegment(Vec3{0.002, 0.002, 0.004}, Vec3{0.002, 0.002, 0.004})
		require.False(t, ok, "zero-length segment")

		require.True(t, NewTriangle(Vec3{0, 0, 0}, Vec3{1, 0, 0}, Vec3{2, 0, 0}).IsDegenerate())
	})

	t.Run("closest point regions", func(t *testing.T) {
		require.True(t, tri.ClosestPoint(Vec3{-1, -1, 0}).Compare(Vec3{0, 0, 0}, 1e-6))
		require.True(t, tri.ClosestPoint(Vec3{0.5, -1, 0}).Compare(Vec3{0.5, 0, 0}, 1e-6))
		require.True(t, tri.ClosestPoint(Vec3{0.2, 0.2, 3}).Compare(Vec3{0.2, 0.2, 0}, 1e-6))
	})
}

func TestClamp(t *testing.T) {
	require.Equal(t, 3, Clamp(5, 0, 3))
	require.Equal(t, float32(-1), Clamp(float32(-4), -1, 1))
	require.Equal(t, 2, Min(2, 7))
	require.Equal(t, 7, Max(2, 7))
}
