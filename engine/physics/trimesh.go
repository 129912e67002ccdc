package physics

import (
	"fmt"

	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// emptyBounds intersects nothing, so an empty mesh never matches a query.
var emptyBounds = math.BoundingBox{
	Min: math.Vec3{X: math.K_INFINITY, Y: math.K_INFINITY, Z: math.K_INFINITY},
	Max: math.Vec3{X: -math.K_INFINITY, Y: -math.K_INFINITY, Z: -math.K_INFINITY},
}

// TriangleMesh is a static soup of world-space triangles tested two-sided.
type TriangleMesh struct {
	Body
	triangles []math.Triangle
	bounds    math.BoundingBox
}

func NewTriangleMesh(triangles []math.Triangle) *TriangleMesh {
	m := &TriangleMesh{}
	m.SetTriangles(triangles)
	return m
}

// NewTriangleMeshIndexed builds a mesh from a vertex list and a triangle
// index list (three indices per triangle).
func NewTriangleMeshIndexed(vertices []math.Vec3, indices []uint32) (*TriangleMesh, error) {
	if len(indices)%3 != 0 {
		return nil, fmt.Errorf("index count %d is not a multiple of 3: %w", len(indices), ErrInvalidShape)
	}
	triangles := make([]math.Triangle, 0, len(indices)/3)
	for i := 0; i < len(indices); i += 3 {
		i0, i1, i2 := indices[i], indices[i+1], indices[i+2]
		if int(i0) >= len(vertices) || int(i1) >= len(vertices) || int(i2) >= len(vertices) {
			return nil, fmt.Errorf("triangle %d references a missing vertex: %w", i/3, ErrInvalidShape)
		}
		triangles = append(triangles, math.NewTriangle(vertices[i0], vertices[i1], vertices[i2]))
	}
	return NewTriangleMesh(triangles), nil
}

func (m *TriangleMesh) SetTriangles(triangles []math.Triangle) {
	m.triangles = make([]math.Triangle, len(triangles))
	copy(m.triangles, triangles)
	m.updateBounds()
}

func (m *TriangleMesh) updateBounds() {
	if len(m.triangles) == 0 {
		m.bounds = emptyBounds
		return
	}
	m.bounds = m.triangles[0].Bounds()
	for _, tri := range m.triangles[1:] {
		m.bounds = m.bounds.Union(tri.Bounds())
	}
}

func (m *TriangleMesh) Triangles() []math.Triangle {
	return m.triangles
}

func (m *TriangleMesh) Translate(offset math.Vec3) {
	for i := range m.triangles {
		m.triangles[i] = m.triangles[i].Translate(offset)
	}
	m.updateBounds()
}

func (m *TriangleMesh) Type() BodyType {
	return BodyTypeTriangleMesh
}

func (m *TriangleMesh) GetBounds() math.BoundingBox {
	return m.bounds
}

func (m *TriangleMesh) Query(box math.BoundingBox, result *QueryResult) {
	query(m, box, result)
}

// Cast returns the nearest triangle hit. Triangles struck at the same
// fraction resolve to the one listed first.
func (m *TriangleMesh) Cast(start, end math.Vec3, ignore IgnoreSet) CastResult {
	if ignore.Contains(m.handle) || len(m.triangles) == 0 {
		return CastMiss()
	}
	if _, _, ok := m.bounds.IntersectSegment(start, end); !ok {
		return CastMiss()
	}

	dir := end.Sub(start)
	best := CastMiss()
	for i := range m.triangles {
		tri := &m.triangles[i]
		t, ok := tri.IntersectSegment(start, end)
		if !ok || t >= best.Fraction {
			continue
		}
		best = newCastHit(&m.Body, start, end, t, faceStart(tri.Normal, dir))
	}
	return best
}

// SphereContact reports the deepest triangle contact; equal depths keep
// the first triangle.
func (m *TriangleMesh) SphereContact(center math.Vec3, radius float32) (Contact, bool) {
	if len(m.triangles) == 0 || m.bounds.DistanceSquared(center) > radius*radius {
		return Contact{}, false
	}

	var best Contact
	found := false
	for i := range m.triangles {
		tri := &m.triangles[i]
		closest := tri.ClosestPoint(center)
		diff := center.Sub(closest)
		dist := diff.Length()
		if dist > radius {
			continue
		}
		normal := tri.Normal
		if dist > math.K_GEOMETRY_EPSILON {
			normal = diff.MulScalar(1 / dist)
		}
		depth := radius - dist
		if !found || depth > best.Depth {
			best = Contact{Point: closest, Normal: normal, Depth: depth}
			found = true
		}
	}
	return best, found
}

func (m *TriangleMesh) Debug(drawer DebugDrawer) {
	colour := DebugColour(BodyTypeTriangleMesh)
	for i := range m.triangles {
		tri := &m.triangles[i]
		drawer.DrawLine(tri.V0, tri.V1, colour)
		drawer.DrawLine(tri.V1, tri.V2, colour)
		drawer.DrawLine(tri.V2, tri.V0, colour)
	}
}
