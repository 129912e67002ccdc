package renderer

import (
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
)

type RendererType uint8

const (
	Headless RendererType = iota
)

// RenderPacket is everything one frame hands to the renderer.
type RenderPacket struct {
	DeltaTime float64
	// Lights is the packed light buffer, lighting.FloatsPerLight per light.
	Lights []float32
	// Clusters holds the LightIndices of every cluster in grid order.
	Clusters []lighting.LightIndices
	// Debug is drained into the backend when set.
	Debug *physics.DebugQueue
}

type Renderer struct {
	backend RendererBackend
}

func New(rendererType RendererType) *Renderer {
	switch rendererType {
	case Headless:
		return NewWithBackend(NewHeadlessBackend())
	}
	core.LogWarn("unknown renderer type %d, using headless", rendererType)
	return NewWithBackend(NewHeadlessBackend())
}

func NewWithBackend(backend RendererBackend) *Renderer {
	return &Renderer{backend: backend}
}

func (r *Renderer) Backend() RendererBackend {
	return r.backend
}

func (r *Renderer) Initialize(appName string) error {
	return r.backend.Initialize(appName)
}

func (r *Renderer) Shutdown() error {
	return r.backend.Shutdown()
}

func (r *Renderer) DrawFrame(packet *RenderPacket) error {
	if err := r.backend.BeginFrame(packet.DeltaTime); err != nil {
		core.LogError(err.Error())
		return err
	}
	if err := r.backend.UploadLights(packet.Lights, packet.Clusters); err != nil {
		core.LogError("light upload failed: %s", err)
		_ = r.backend.EndFrame(packet.DeltaTime)
		return err
	}
	if packet.Debug != nil {
		if dropped := packet.Debug.Dropped(); dropped > 0 {
			core.LogWarn("debug queue full, %d primitives dropped", dropped)
		}
		packet.Debug.Drain(r.backend.DrawDebug)
	}
	if err := r.backend.EndFrame(packet.DeltaTime); err != nil {
		core.LogError("RendererEndFrame failed. Application shutting down...")
		return err
	}
	return nil
}
