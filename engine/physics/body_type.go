package physics

import "strings"

// BodyType tags the shape kind of a Testable. Level data refers to it by
// the lowercase names returned from FromBodyType.
type BodyType uint8

const (
	BodyTypeTriangleMesh BodyType = iota
	BodyTypePlane
	BodyTypeAABB
	BodyTypeSphere
)

// DefaultBodyType is what ToBodyType yields for names it does not know.
const DefaultBodyType = BodyTypeAABB

var bodyTypeNames = [...]string{
	BodyTypeTriangleMesh: "triangle_mesh",
	BodyTypePlane:        "plane",
	BodyTypeAABB:         "aabb",
	BodyTypeSphere:       "sphere",
}

// ToBodyType maps a level-data name to its BodyType. Matching ignores case
// and surrounding whitespace; anything unrecognised maps to
// DefaultBodyType so newer data files still load.
func ToBodyType(name string) BodyType {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range bodyTypeNames {
		if n == name {
			return BodyType(i)
		}
	}
	return DefaultBodyType
}

// FromBodyType returns the canonical name of t. Out of range values are
// reported with the default's name.
func FromBodyType(t BodyType) string {
	if int(t) >= len(bodyTypeNames) {
		return bodyTypeNames[DefaultBodyType]
	}
	return bodyTypeNames[t]
}

// BodyTypes lists every defined tag in declaration order.
func BodyTypes() []BodyType {
	return []BodyType{BodyTypeTriangleMesh, BodyTypePlane, BodyTypeAABB, BodyTypeSphere}
}

func (t BodyType) String() string {
	return FromBodyType(t)
}
