package lighting

import (
	"fmt"

	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// ClusterGrid splits a volume into X*Y*Z equal regions. Region i is at
// x + y*X + z*X*Y.
type ClusterGrid struct {
	Bounds math.BoundingBox
	Dims   [3]uint32
	cell   math.Vec3
}

func NewClusterGrid(bounds math.BoundingBox, dims [3]uint32) (*ClusterGrid, error) {
	if !bounds.IsValid() {
		return nil, fmt.Errorf("cluster bounds %v are not valid", bounds)
	}
	for i, d := range dims {
		if d == 0 {
			return nil, fmt.Errorf("cluster dimension %d is zero", i)
		}
	}
	size := bounds.Size()
	return &ClusterGrid{
		Bounds: bounds,
		Dims:   dims,
		cell: math.NewVec3(
			size.X/float32(dims[0]),
			size.Y/float32(dims[1]),
			size.Z/float32(dims[2]),
		),
	}, nil
}

func (g *ClusterGrid) Len() int {
	return int(g.Dims[0] * g.Dims[1] * g.Dims[2])
}

// Region returns the box of cluster (x, y, z).
func (g *ClusterGrid) Region(x, y, z uint32) math.BoundingBox {
	min := g.Bounds.Min.Add(math.NewVec3(
		float32(x)*g.cell.X,
		float32(y)*g.cell.Y,
		float32(z)*g.cell.Z,
	))
	return math.NewBoundingBox(min, min.Add(g.cell))
}

// Regions lists every cluster box in index order.
func (g *ClusterGrid) Regions() []math.BoundingBox {
	out := make([]math.BoundingBox, 0, g.Len())
	for z := uint32(0); z < g.Dims[2]; z++ {
		for y := uint32(0); y < g.Dims[1]; y++ {
			for x := uint32(0); x < g.Dims[0]; x++ {
				out = append(out, g.Region(x, y, z))
			}
		}
	}
	return out
}

// ClusterOf returns the index of the cluster containing point.
func (g *ClusterGrid) ClusterOf(point math.Vec3) (int, bool) {
	if !g.Bounds.Contains(point) {
		return 0, false
	}
	local := point.Sub(g.Bounds.Min)
	var idx [3]uint32
	for axis := 0; axis < 3; axis++ {
		c := g.cell.Axis(axis)
		if c <= 0 {
			continue
		}
		i := uint32(local.Axis(axis) / c)
		if i >= g.Dims[axis] {
			i = g.Dims[axis] - 1
		}
		idx[axis] = i
	}
	return int(idx[0] + idx[1]*g.Dims[0] + idx[2]*g.Dims[0]*g.Dims[1]), true
}
