package lighting

import (
	"strings"

	"github.com/spaghettifunk/anima-spatial/engine/math"
)

type LightType uint8

const (
	LightTypeDirectional LightType = iota
	LightTypePoint
	LightTypeSpot
)

var lightTypeNames = [...]string{
	LightTypeDirectional: "directional",
	LightTypePoint:       "point",
	LightTypeSpot:        "spot",
}

func (t LightType) String() string {
	if int(t) >= len(lightTypeNames) {
		return "unknown"
	}
	return lightTypeNames[t]
}

// ToLightType maps a level-file name to a LightType. Unknown names
// become point lights.
func ToLightType(s string) LightType {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range lightTypeNames {
		if name == s {
			return LightType(i)
		}
	}
	return LightTypePoint
}

/**
 * @brief A light laid out for direct upload to a shading stage.
 * Four Vec4 groups, 64 bytes, no padding.
 */
type Light struct {
	/** @brief xyz world position, w LightType. */
	PositionType math.Vec4
	/** @brief xyz unit direction, w radius of influence. */
	DirectionRadius math.Vec4
	/** @brief rgb colour, w intensity. */
	ColorIntensity math.Vec4
	/** @brief x inner cone angle, y outer cone angle (radians). */
	SpotAngles math.Vec4
}

// FloatsPerLight is the packed size of one Light.
const FloatsPerLight = 16

func NewDirectionalLight(direction, color math.Vec3, intensity float32) Light {
	return Light{
		PositionType:    math.NewVec4(0, 0, 0, float32(LightTypeDirectional)),
		DirectionRadius: direction.Normalized().ToVec4(0),
		ColorIntensity:  color.ToVec4(intensity),
	}
}

func NewPointLight(position, color math.Vec3, intensity, radius float32) Light {
	return Light{
		PositionType:    position.ToVec4(float32(LightTypePoint)),
		DirectionRadius: math.NewVec4(0, 0, 0, radius),
		ColorIntensity:  color.ToVec4(intensity),
	}
}

// NewSpotLight takes cone angles in degrees.
func NewSpotLight(position, direction, color math.Vec3, intensity, radius, innerDeg, outerDeg float32) Light {
	return Light{
		PositionType:    position.ToVec4(float32(LightTypeSpot)),
		DirectionRadius: direction.Normalized().ToVec4(radius),
		ColorIntensity:  color.ToVec4(intensity),
		SpotAngles:      math.NewVec4(math.DegToRad(innerDeg), math.DegToRad(outerDeg), 0, 0),
	}
}

func (l Light) Type() LightType {
	return LightType(l.PositionType.W)
}

func (l Light) Position() math.Vec3 {
	return l.PositionType.ToVec3()
}

func (l Light) Direction() math.Vec3 {
	return l.DirectionRadius.ToVec3()
}

func (l Light) Radius() float32 {
	return l.DirectionRadius.W
}

func (l Light) Color() math.Vec3 {
	return l.ColorIntensity.ToVec3()
}

func (l Light) Intensity() float32 {
	return l.ColorIntensity.W
}

func (l Light) InnerAngle() float32 {
	return l.SpotAngles.X
}

func (l Light) OuterAngle() float32 {
	return l.SpotAngles.Y
}

func (l *Light) SetPosition(p math.Vec3) {
	l.PositionType = p.ToVec4(l.PositionType.W)
}

func (l *Light) SetIntensity(intensity float32) {
	l.ColorIntensity.W = intensity
}

// PackLights flattens lights in order into the upload layout.
func PackLights(lights []Light) []float32 {
	out := make([]float32, 0, len(lights)*FloatsPerLight)
	for _, l := range lights {
		for _, v := range [4]math.Vec4{l.PositionType, l.DirectionRadius, l.ColorIntensity, l.SpotAngles} {
			out = append(out, v.X, v.Y, v.Z, v.W)
		}
	}
	return out
}
