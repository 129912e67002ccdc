package testbed

import (
	"github.com/spaghettifunk/anima-spatial/engine"
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
)

const (
	spawnEvery    = 10
	maxBounces    = 3
	projectileTTL = 4.0
	crateCount    = 12
)

type TestGame struct {
	*engine.Game
}

type projectile struct {
	position math.Vec3
	next     math.Vec3
	velocity math.Vec3
	age      float64
	bounces  int
}

type gameState struct {
	rand        *math.Random
	emitter     physics.Handle
	platform    physics.Handle
	projectiles []*projectile
	tick        uint64

	shots, hits, expired int
	surfaces             map[physics.PhysicalSurface]int
}

func NewTestGame(config *engine.ApplicationConfig) *TestGame {
	tg := &TestGame{
		Game: &engine.Game{
			ApplicationConfig: config,
			State: &gameState{
				rand:     math.NewRandom(42),
				surfaces: make(map[physics.PhysicalSurface]int),
			},
		},
	}

	tg.FnInitialize = tg.Initialize
	tg.FnUpdate = tg.Update
	tg.FnQuery = tg.Query
	tg.FnShutdown = tg.Shutdown

	return tg
}

func (g *TestGame) state() *gameState {
	return g.State.(*gameState)
}

func (g *TestGame) Initialize() error {
	core.LogInfo("initializing testbed...")
	state := g.state()
	world := g.SystemManager.World()

	if world.Len() == 0 {
		if err := g.buildArena(); err != nil {
			return err
		}
	}

	emitter, err := physics.NewSphere(math.NewVec3(0, 1, 0), 0.5)
	if err != nil {
		return err
	}
	emitter.SetName("emitter")
	emitter.SetSurface(physics.PhysicalSurfaceMetal)
	if state.emitter, err = world.Add(emitter); err != nil {
		return err
	}

	platform := physics.NewBox(math.NewBoundingBoxCentered(math.NewVec3(0, 4, 0), math.NewVec3(2, 0.25, 2)))
	platform.SetName("platform")
	platform.SetSurface(physics.PhysicalSurfaceWood)
	if state.platform, err = world.Add(platform); err != nil {
		return err
	}
	return nil
}

// buildArena scatters crates over a floor when no level was loaded.
func (g *TestGame) buildArena() error {
	state := g.state()
	world := g.SystemManager.World()

	floor, err := physics.NewPlane(math.NewVec3Up(), 0)
	if err != nil {
		return err
	}
	floor.SetSurface(physics.PhysicalSurfaceConcrete)
	if _, err := world.Add(floor); err != nil {
		return err
	}

	area := math.NewBoundingBox(math.NewVec3(-12, 0.5, -12), math.NewVec3(12, 0.5, 12))
	surfaces := []physics.PhysicalSurface{physics.PhysicalSurfaceWood, physics.PhysicalSurfaceMetal, physics.PhysicalSurfaceStone}
	for i := 0; i < crateCount; i++ {
		center := state.rand.Vec3InBox(area)
		half := state.rand.InRange(0.25, 1)
		crate := physics.NewBox(math.NewBoundingBoxCentered(center, math.NewVec3(half, half, half)))
		crate.SetSurface(surfaces[state.rand.IntInRange(0, len(surfaces)-1)])
		if _, err := world.Add(crate); err != nil {
			return err
		}
	}

	lights := g.SystemManager.Lights()
	if _, err := lights.Add(lighting.NewDirectionalLight(math.NewVec3(0.3, -1, 0.2), math.NewVec3One(), 0.2)); err != nil {
		return err
	}
	for i := 0; i < 6; i++ {
		pos := state.rand.Vec3InBox(math.NewBoundingBox(math.NewVec3(-12, 2, -12), math.NewVec3(12, 6, 12)))
		if _, err := lights.Add(lighting.NewPointLight(pos, math.NewVec3One(), state.rand.InRange(2, 8), 8)); err != nil {
			return err
		}
	}
	return lights.SetClusterBounds(math.NewBoundingBox(math.NewVec3(-14, -1, -14), math.NewVec3(14, 8, 14)))
}

// Update is the mutation phase: the platform drifts and new projectiles
// are fired from the emitter.
func (g *TestGame) Update(deltaTime float64) error {
	state := g.state()
	state.tick++

	world := g.SystemManager.World()
	drift := float32(0.5 * deltaTime)
	if (state.tick/120)%2 == 1 {
		drift = -drift
	}
	if err := world.Modify(state.platform, func(t physics.Testable) {
		t.(*physics.Box).Translate(math.NewVec3(drift, 0, 0))
	}); err != nil {
		return err
	}

	if state.tick%spawnEvery == 0 {
		dir := math.NewVec3(state.rand.InRange(-1, 1), state.rand.InRange(-0.4, 0.6), state.rand.InRange(-1, 1)).Normalized()
		state.projectiles = append(state.projectiles, &projectile{
			position: math.NewVec3(0, 1, 0),
			velocity: dir.MulScalar(12),
		})
		state.shots++
	}

	for _, p := range state.projectiles {
		p.velocity = p.velocity.Add(math.NewVec3(0, -9.81*float32(deltaTime), 0))
		p.next = p.position.Add(p.velocity.MulScalar(float32(deltaTime)))
		p.age += deltaTime
	}
	return nil
}

// Query is the read phase: projectiles cast through the world, ignoring
// the emitter they start inside.
func (g *TestGame) Query(deltaTime float64) error {
	state := g.state()
	world := g.SystemManager.World()
	ignore := physics.NewIgnoreSet(state.emitter)

	alive := state.projectiles[:0]
	for _, p := range state.projectiles {
		hit := world.Cast(p.position, p.next, ignore)
		if hit.Hit {
			response := physics.ResolveCast(hit)
			state.hits++
			state.surfaces[response.Surface]++
			p.velocity = response.Reflect(p.velocity).MulScalar(0.6)
			p.position = response.Point.Add(response.Normal.MulScalar(math.K_GEOMETRY_EPSILON * 10))
			p.bounces++
		} else {
			p.position = p.next
		}
		if p.bounces > maxBounces || p.age > projectileTTL {
			state.expired++
			continue
		}
		alive = append(alive, p)
	}
	state.projectiles = alive

	if state.tick%uint64(g.ApplicationConfig.TickRate) == 0 {
		around := world.Query(math.NewBoundingBoxCentered(math.NewVec3(0, 1, 0), math.NewVec3(3, 3, 3)))
		indices, _ := g.SystemManager.Lights().IndicesAt(math.NewVec3(0, 1, 0))
		core.LogInfo("shots=%d hits=%d expired=%d live=%d near=%d lights=%v",
			state.shots, state.hits, state.expired, len(state.projectiles), around.Len(), indices)
	}
	return nil
}

func (g *TestGame) Shutdown() error {
	state := g.state()
	for s, n := range state.surfaces {
		core.LogInfo("surface %s hit %d times", s, n)
	}
	return nil
}
