package physics

import "strings"

// PhysicalSurface tags the material a Testable is made of, used to pick
// impact responses, sounds and effects.
type PhysicalSurface uint8

const (
	PhysicalSurfaceNone PhysicalSurface = iota
	PhysicalSurfaceStone
	PhysicalSurfaceMetal
	PhysicalSurfaceWood
	PhysicalSurfaceConcrete
	PhysicalSurfaceDirt
	PhysicalSurfaceGravel
	PhysicalSurfaceSand
	PhysicalSurfaceGrass
	PhysicalSurfaceMud
	PhysicalSurfaceWater
	PhysicalSurfaceGlass
	PhysicalSurfacePlastic
	PhysicalSurfaceFlesh
	PhysicalSurfaceSnow
	PhysicalSurfaceIce

	// PhysicalSurfaceMaximum bounds the defined range; it is not a surface.
	PhysicalSurfaceMaximum
)

var physicalSurfaceNames = [PhysicalSurfaceMaximum]string{
	PhysicalSurfaceNone:     "none",
	PhysicalSurfaceStone:    "stone",
	PhysicalSurfaceMetal:    "metal",
	PhysicalSurfaceWood:     "wood",
	PhysicalSurfaceConcrete: "concrete",
	PhysicalSurfaceDirt:     "dirt",
	PhysicalSurfaceGravel:   "gravel",
	PhysicalSurfaceSand:     "sand",
	PhysicalSurfaceGrass:    "grass",
	PhysicalSurfaceMud:      "mud",
	PhysicalSurfaceWater:    "water",
	PhysicalSurfaceGlass:    "glass",
	PhysicalSurfacePlastic:  "plastic",
	PhysicalSurfaceFlesh:    "flesh",
	PhysicalSurfaceSnow:     "snow",
	PhysicalSurfaceIce:      "ice",
}

// StringToPhysicalSurface is total: unknown names map to PhysicalSurfaceNone.
func StringToPhysicalSurface(name string) PhysicalSurface {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range physicalSurfaceNames {
		if n == name {
			return PhysicalSurface(i)
		}
	}
	return PhysicalSurfaceNone
}

// PhysicalSurfaceToString returns the canonical name; values at or past
// PhysicalSurfaceMaximum report "none".
func PhysicalSurfaceToString(s PhysicalSurface) string {
	if s >= PhysicalSurfaceMaximum {
		return physicalSurfaceNames[PhysicalSurfaceNone]
	}
	return physicalSurfaceNames[s]
}

func (s PhysicalSurface) String() string {
	return PhysicalSurfaceToString(s)
}
