package systems

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
)

var ErrTooManyLights = errors.New("light system is full")

/** @brief The light system configuration. */
type LightSystemConfig struct {
	/** @brief The maximum number of lights in one frame. */
	MaxLightCount int
	/** @brief Volume split into clusters. */
	ClusterBounds math.BoundingBox
	/** @brief Clusters per axis. */
	ClusterDims [3]uint32
	/** @brief Optional metrics registry. */
	Registerer prometheus.Registerer
}

// LightSystem holds the frame's lights and the per-cluster LightIndices
// derived from them.
type LightSystem struct {
	config    LightSystemConfig
	jobSystem *JobSystem

	mu      sync.RWMutex
	lights  []lighting.Light
	grid    *lighting.ClusterGrid
	indices []lighting.LightIndices

	truncated   prometheus.Counter
	assignments prometheus.Counter
	lightCount  prometheus.Gauge
}

func NewLightSystem(config LightSystemConfig, js *JobSystem) (*LightSystem, error) {
	if config.MaxLightCount <= 0 {
		err := fmt.Errorf("func NewLightSystem - config.MaxLightCount must be > 0")
		core.LogError(err.Error())
		return nil, err
	}
	grid, err := lighting.NewClusterGrid(config.ClusterBounds, config.ClusterDims)
	if err != nil {
		return nil, err
	}
	ls := &LightSystem{
		config:    config,
		jobSystem: js,
		lights:    make([]lighting.Light, 0, config.MaxLightCount),
		grid:      grid,
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Subsystem: "lighting",
			Name:      "truncated_lights_total",
			Help:      "Relevant lights dropped by the per-region cap.",
		}),
		assignments: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "anima",
			Subsystem: "lighting",
			Name:      "assignments_total",
			Help:      "Cluster light assignment passes.",
		}),
		lightCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "anima",
			Subsystem: "lighting",
			Name:      "lights",
			Help:      "Lights in the current frame.",
		}),
	}
	if config.Registerer != nil {
		for _, c := range []prometheus.Collector{ls.truncated, ls.assignments, ls.lightCount} {
			if err := config.Registerer.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return ls, nil
}

func (ls *LightSystem) Capacity() int {
	return ls.config.MaxLightCount
}

// Add appends a light and returns its index.
func (ls *LightSystem) Add(light lighting.Light) (int, error) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if len(ls.lights) >= ls.config.MaxLightCount {
		return -1, ErrTooManyLights
	}
	ls.lights = append(ls.lights, light)
	ls.lightCount.Set(float64(len(ls.lights)))
	return len(ls.lights) - 1, nil
}

// Set replaces every light, e.g. on level load.
func (ls *LightSystem) Set(lights []lighting.Light) error {
	if len(lights) > ls.config.MaxLightCount {
		return fmt.Errorf("%w: %d lights, max %d", ErrTooManyLights, len(lights), ls.config.MaxLightCount)
	}
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.lights = append(ls.lights[:0], lights...)
	ls.indices = nil
	ls.lightCount.Set(float64(len(ls.lights)))
	return nil
}

func (ls *LightSystem) Update(index int, light lighting.Light) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if index < 0 || index >= len(ls.lights) {
		return fmt.Errorf("light index %d out of range", index)
	}
	ls.lights[index] = light
	return nil
}

func (ls *LightSystem) Lights() []lighting.Light {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return append([]lighting.Light(nil), ls.lights...)
}

// Packed returns the lights in upload layout.
func (ls *LightSystem) Packed() []float32 {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return lighting.PackLights(ls.lights)
}

// SetClusterBounds rebuilds the cluster grid over bounds.
func (ls *LightSystem) SetClusterBounds(bounds math.BoundingBox) error {
	grid, err := lighting.NewClusterGrid(bounds, ls.config.ClusterDims)
	if err != nil {
		return err
	}
	ls.mu.Lock()
	ls.grid = grid
	ls.indices = nil
	ls.mu.Unlock()
	return nil
}

func (ls *LightSystem) Grid() *lighting.ClusterGrid {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.grid
}

// Assign recomputes LightIndices for every cluster, fanning regions out
// over the job system's workers.
func (ls *LightSystem) Assign(ctx context.Context) ([]lighting.LightIndices, error) {
	ls.mu.RLock()
	lights := append([]lighting.Light(nil), ls.lights...)
	regions := ls.grid.Regions()
	ls.mu.RUnlock()

	out := make([]lighting.LightIndices, len(regions))
	var truncated int64
	assign := func(_ context.Context, i int) error {
		indices, dropped := lighting.AssignLightsCounted(regions[i], lights)
		out[i] = indices
		if dropped > 0 {
			atomic.AddInt64(&truncated, int64(dropped))
		}
		return nil
	}

	if ls.jobSystem != nil {
		if err := ls.jobSystem.RunBatch(ctx, len(regions), assign); err != nil {
			return nil, err
		}
	} else {
		for i := range regions {
			_ = assign(ctx, i)
		}
	}

	ls.truncated.Add(float64(truncated))
	ls.assignments.Inc()

	ls.mu.Lock()
	ls.indices = out
	ls.mu.Unlock()
	return out, nil
}

// Indices returns the result of the last Assign.
func (ls *LightSystem) Indices() []lighting.LightIndices {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	return ls.indices
}

// IndicesAt returns the lights for the cluster containing point.
func (ls *LightSystem) IndicesAt(point math.Vec3) (lighting.LightIndices, bool) {
	ls.mu.RLock()
	defer ls.mu.RUnlock()
	idx, ok := ls.grid.ClusterOf(point)
	if !ok || idx >= len(ls.indices) {
		return lighting.NewLightIndices(), false
	}
	return ls.indices[idx], true
}

func (ls *LightSystem) Shutdown() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	ls.lights = ls.lights[:0]
	ls.indices = nil
	return nil
}
