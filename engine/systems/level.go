package systems

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"

	"github.com/spaghettifunk/anima-spatial/engine/assets"
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
	"github.com/spaghettifunk/anima-spatial/engine/resources"
)

var ErrNoLevelLoaded = errors.New("no level loaded")

// clusterMargin pads the cluster volume around a level's finite bodies.
const clusterMargin = 1

// LevelSystem turns level descriptions into world bodies and lights. A
// new level replaces every body the previous one added. File changes seen
// by the asset watcher are only recorded; ApplyPending reloads them from
// the frame's mutation phase.
type LevelSystem struct {
	world  *physics.World
	lights *LightSystem
	assets *assets.AssetManager
	events *core.EventSystem

	mu      sync.Mutex
	name    string
	path    string
	pending bool
	handles []physics.Handle
}

// NewLevelSystem wires the level system. assetManager and events may be
// nil; without an asset manager only Apply is usable.
func NewLevelSystem(world *physics.World, lights *LightSystem, assetManager *assets.AssetManager, events *core.EventSystem) *LevelSystem {
	ls := &LevelSystem{
		world:  world,
		lights: lights,
		assets: assetManager,
		events: events,
	}
	if assetManager != nil {
		assetManager.OnChange(ls.onAssetChanged)
	}
	return ls
}

// Load resolves name through the asset manager and applies it.
func (ls *LevelSystem) Load(name string) error {
	if ls.assets == nil {
		return fmt.Errorf("cannot load level %s without an asset manager", name)
	}
	info, err := ls.assets.Resolve(name, resources.ResourceTypeLevel)
	if err != nil {
		return err
	}
	res, err := ls.assets.LoadAsset(name, resources.ResourceTypeLevel, nil)
	if err != nil {
		return err
	}
	defer ls.assets.UnloadAsset(res)

	cfg, ok := res.Data.(*resources.LevelConfig)
	if !ok {
		return fmt.Errorf("resource %s is not a level", res.Name)
	}
	if err := ls.Apply(cfg); err != nil {
		return err
	}
	ls.mu.Lock()
	ls.path = info.Path
	ls.mu.Unlock()
	return nil
}

// Reload applies the current level file again.
func (ls *LevelSystem) Reload() error {
	ls.mu.Lock()
	path := ls.path
	ls.mu.Unlock()
	if path == "" {
		return ErrNoLevelLoaded
	}
	rel, err := filepath.Rel(ls.assets.Dir(), path)
	if err != nil {
		return err
	}
	return ls.Load(rel)
}

func (ls *LevelSystem) onAssetChanged(info assets.AssetInfo) {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	if ls.path == "" || info.Path != ls.path {
		return
	}
	ls.pending = true
	core.LogDebug("level %s changed on disk, reload queued", info.Path)
}

// Pending reports whether the current level file changed since it was
// last applied.
func (ls *LevelSystem) Pending() bool {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.pending
}

// ApplyPending reloads the current level if its file changed. It must run
// while no query phase is in progress. A failed reload keeps the previous
// level and is not retried until the file changes again.
func (ls *LevelSystem) ApplyPending() (bool, error) {
	ls.mu.Lock()
	pending := ls.pending
	ls.pending = false
	ls.mu.Unlock()
	if !pending {
		return false, nil
	}
	if err := ls.Reload(); err != nil {
		return false, err
	}
	return true, nil
}

// Apply builds every body and light of cfg, then swaps them in. On error
// the previous level stays in place.
func (ls *LevelSystem) Apply(cfg *resources.LevelConfig) error {
	bodies := make([]physics.Testable, 0, len(cfg.Bodies))
	for i, b := range cfg.Bodies {
		t, err := BuildBody(b)
		if err != nil {
			return fmt.Errorf("level %s body %d (%s): %w", cfg.Name, i, b.Name, err)
		}
		bodies = append(bodies, t)
	}
	lights := make([]lighting.Light, 0, len(cfg.Lights))
	for _, l := range cfg.Lights {
		lights = append(lights, BuildLight(l))
	}
	if ls.lights != nil && len(lights) > ls.lights.Capacity() {
		return fmt.Errorf("level %s: %w: %d lights", cfg.Name, ErrTooManyLights, len(lights))
	}

	if err := ls.swap(cfg.Name, bodies, lights); err != nil {
		return err
	}

	core.LogInfo("level %s loaded: %d bodies, %d lights", cfg.Name, len(bodies), len(lights))
	if ls.events != nil {
		ctx := core.EventContext{}
		ctx.Data.C[0] = cfg.Name
		ctx.Data.U32[0] = uint32(len(bodies))
		ctx.Data.U32[1] = uint32(len(lights))
		ls.events.Fire(core.EventCodeLevelLoaded, ls, ctx)
	}
	return nil
}

func (ls *LevelSystem) swap(name string, bodies []physics.Testable, lights []lighting.Light) error {
	ls.mu.Lock()
	defer ls.mu.Unlock()

	for _, h := range ls.handles {
		if err := ls.world.Remove(h); err != nil && !errors.Is(err, physics.ErrUnknownHandle) {
			return err
		}
	}
	ls.handles = ls.handles[:0]

	bounds, finite := math.BoundingBox{}, false
	for _, t := range bodies {
		h, err := ls.world.Add(t)
		if err != nil {
			return err
		}
		ls.handles = append(ls.handles, h)
		if b := t.GetBounds(); isFinite(b) {
			if finite {
				bounds = bounds.Union(b)
			} else {
				bounds, finite = b, true
			}
		}
	}

	if ls.lights != nil {
		if err := ls.lights.Set(lights); err != nil {
			return err
		}
		if finite {
			if err := ls.lights.SetClusterBounds(bounds.Expand(clusterMargin)); err != nil {
				return err
			}
		}
	}
	ls.name = name
	return nil
}

func (ls *LevelSystem) Name() string {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return ls.name
}

// Handles lists the bodies of the current level in file order.
func (ls *LevelSystem) Handles() []physics.Handle {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	return append([]physics.Handle(nil), ls.handles...)
}

func (ls *LevelSystem) Shutdown() error {
	ls.mu.Lock()
	defer ls.mu.Unlock()
	for _, h := range ls.handles {
		_ = ls.world.Remove(h)
	}
	ls.handles = nil
	ls.path = ""
	ls.pending = false
	return nil
}

type describable interface {
	SetName(name string)
	SetSurface(s physics.PhysicalSurface)
}

// BuildBody creates the shape named by cfg.Type. Unknown type names build
// an AABB and unknown surfaces become PhysicalSurfaceNone.
func BuildBody(cfg resources.BodyConfig) (physics.Testable, error) {
	var (
		t   physics.Testable
		err error
	)
	switch physics.ToBodyType(cfg.Type) {
	case physics.BodyTypeSphere:
		t, err = physics.NewSphere(vec3(cfg.Center), cfg.Radius)
	case physics.BodyTypePlane:
		t, err = physics.NewPlane(vec3(cfg.Normal), cfg.Distance)
	case physics.BodyTypeTriangleMesh:
		vertices := make([]math.Vec3, len(cfg.Vertices))
		for i, v := range cfg.Vertices {
			vertices[i] = vec3(v)
		}
		t, err = physics.NewTriangleMeshIndexed(vertices, cfg.Indices)
	default:
		t = physics.NewBox(math.NewBoundingBox(vec3(cfg.Min), vec3(cfg.Max)))
	}
	if err != nil {
		return nil, err
	}
	if d, ok := t.(describable); ok {
		d.SetName(cfg.Name)
		d.SetSurface(physics.StringToPhysicalSurface(cfg.Surface))
	}
	return t, nil
}

// BuildLight converts cfg; unknown light types become point lights.
func BuildLight(cfg resources.LightConfig) lighting.Light {
	color := vec3(cfg.Color)
	switch lighting.ToLightType(cfg.Type) {
	case lighting.LightTypeDirectional:
		return lighting.NewDirectionalLight(vec3(cfg.Direction), color, cfg.Intensity)
	case lighting.LightTypeSpot:
		return lighting.NewSpotLight(vec3(cfg.Position), vec3(cfg.Direction), color, cfg.Intensity, cfg.Radius, cfg.Inner, cfg.Outer)
	default:
		return lighting.NewPointLight(vec3(cfg.Position), color, cfg.Intensity, cfg.Radius)
	}
}

func vec3(v [3]float32) math.Vec3 {
	return math.NewVec3(v[0], v[1], v[2])
}

func isFinite(b math.BoundingBox) bool {
	const limit = math.K_INFINITY / 2
	for axis := 0; axis < 3; axis++ {
		if math.Abs(b.Min.Axis(axis)) >= limit || math.Abs(b.Max.Axis(axis)) >= limit {
			return false
		}
	}
	return true
}
