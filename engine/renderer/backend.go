package renderer

import (
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
)

type RendererBackend interface {
	Initialize(appName string) error
	Shutdown() error
	BeginFrame(deltaTime float64) error
	EndFrame(deltaTime float64) error
	// UploadLights receives the packed light buffer and one LightIndices
	// per cluster.
	UploadLights(packed []float32, clusters []lighting.LightIndices) error
	DrawDebug(primitive physics.DebugPrimitive)
}
