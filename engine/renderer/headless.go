package renderer

import (
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
)

// FrameStats describes the last completed frame of a HeadlessBackend.
type FrameStats struct {
	Frame       uint64
	LightFloats int
	Clusters    int
	LitClusters int
	DebugBoxes  int
	DebugLines  int
}

// HeadlessBackend draws nothing. It records what each frame submitted so
// the engine can run without a window.
type HeadlessBackend struct {
	logger  *log.Logger
	inFrame bool
	current FrameStats
	last    FrameStats
}

func NewHeadlessBackend() *HeadlessBackend {
	return &HeadlessBackend{}
}

func (hb *HeadlessBackend) Initialize(appName string) error {
	hb.logger = core.NewSubLogger("renderer")
	hb.logger.Info("headless renderer initialized", "app", appName)
	return nil
}

func (hb *HeadlessBackend) Shutdown() error {
	if hb.logger != nil {
		hb.logger.Info("headless renderer shut down", "frames", hb.last.Frame)
	}
	return nil
}

func (hb *HeadlessBackend) BeginFrame(deltaTime float64) error {
	if hb.inFrame {
		return fmt.Errorf("frame %d already begun", hb.current.Frame)
	}
	hb.inFrame = true
	hb.current = FrameStats{Frame: hb.last.Frame + 1}
	return nil
}

func (hb *HeadlessBackend) EndFrame(deltaTime float64) error {
	if !hb.inFrame {
		return fmt.Errorf("no frame to end")
	}
	hb.inFrame = false
	hb.last = hb.current
	if hb.logger != nil {
		hb.logger.Debug("frame",
			"n", hb.last.Frame,
			"lit", hb.last.LitClusters,
			"clusters", hb.last.Clusters,
			"boxes", hb.last.DebugBoxes,
			"lines", hb.last.DebugLines,
		)
	}
	return nil
}

func (hb *HeadlessBackend) UploadLights(packed []float32, clusters []lighting.LightIndices) error {
	if len(packed)%lighting.FloatsPerLight != 0 {
		return fmt.Errorf("light buffer of %d floats is not a whole number of lights", len(packed))
	}
	hb.current.LightFloats = len(packed)
	hb.current.Clusters = len(clusters)
	for _, c := range clusters {
		if c.Count() > 0 {
			hb.current.LitClusters++
		}
	}
	return nil
}

func (hb *HeadlessBackend) DrawDebug(p physics.DebugPrimitive) {
	switch p.Kind {
	case physics.DebugPrimitiveBox:
		hb.current.DebugBoxes++
	case physics.DebugPrimitiveLine:
		hb.current.DebugLines++
	}
}

// Stats returns the last completed frame.
func (hb *HeadlessBackend) Stats() FrameStats {
	return hb.last
}
