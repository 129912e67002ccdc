package lighting

import (
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// MaxLightsPerRegion is the hard cap on lights influencing one region.
// Extra lights are dropped, lowest contribution first.
const MaxLightsPerRegion = 4

// LightIndices holds up to four indices into the frame's light slice.
// Empty slots are -1.
type LightIndices [MaxLightsPerRegion]int32

func NewLightIndices() LightIndices {
	return LightIndices{-1, -1, -1, -1}
}

// Count returns the number of filled slots.
func (li LightIndices) Count() int {
	n := 0
	for _, idx := range li {
		if idx >= 0 {
			n++
		}
	}
	return n
}

// Contribution scores how strongly light affects region: intensity over the
// squared distance to the region's closest point, with the distance floored
// at 1. Directional lights score their intensity everywhere. The second
// return is false when the light does not reach the region.
func Contribution(light Light, region math.BoundingBox) (float32, bool) {
	intensity := light.Intensity()
	if intensity <= 0 {
		return 0, false
	}
	if light.Type() == LightTypeDirectional {
		return intensity, true
	}
	d2 := region.DistanceSquared(light.Position())
	r := light.Radius()
	if d2 > r*r {
		return 0, false
	}
	return intensity / math.Max(d2, 1), true
}

type candidate struct {
	index int32
	score float32
}

// AssignLights picks the lights with the highest contribution to region,
// in descending order. Equal contributions keep the lower index first.
func AssignLights(region math.BoundingBox, lights []Light) LightIndices {
	indices, _ := AssignLightsCounted(region, lights)
	return indices
}

// AssignLightsCounted is AssignLights plus the number of relevant lights
// that did not fit.
func AssignLightsCounted(region math.BoundingBox, lights []Light) (LightIndices, int) {
	out := NewLightIndices()
	candidates := make([]candidate, 0, len(lights))
	for i, l := range lights {
		if score, ok := Contribution(l, region); ok {
			candidates = append(candidates, candidate{index: int32(i), score: score})
		}
	}
	slices.SortStableFunc(candidates, func(a, b candidate) int {
		switch {
		case a.score > b.score:
			return -1
		case a.score < b.score:
			return 1
		}
		return int(a.index - b.index)
	})
	for i := 0; i < len(candidates) && i < MaxLightsPerRegion; i++ {
		out[i] = candidates[i].index
	}
	dropped := len(candidates) - MaxLightsPerRegion
	if dropped < 0 {
		dropped = 0
	}
	return out, dropped
}
