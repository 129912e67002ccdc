package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer"
	"github.com/spaghettifunk/anima-spatial/engine/systems"
)

type Stage uint8

const (
	// Engine is in an uninitialized state
	EngineStageUninitialized Stage = iota
	// Engine is currently booting up
	EngineStageBooting
	// Engine completed boot process and is ready to be initialized
	EngineStageBootComplete
	// Engine is currently initializing
	EngineStageInitializing
	// Engine initialization is complete
	EngineStageInitialized
	// Engine is currently running
	EngineStageRunning
	// Engine is in the process of shutting down
	EngineStageShuttingDown
)

type Engine struct {
	currentStage  Stage
	gameInstance  *Game
	config        *ApplicationConfig
	events        *core.EventSystem
	registry      *prometheus.Registry
	systemManager *systems.SystemManager
	renderer      *renderer.Renderer
	debugQueue    *physics.DebugQueue
	metricsServer *metricsServer
	clock         *core.Clock
	frameMetrics  *core.FrameMetrics
	ticks         uint64

	running  atomic.Bool
	stop     chan struct{}
	stopOnce sync.Once
	done     chan struct{}

	teardownOnce sync.Once
	teardownErr  error
}

func New(g *Game) (*Engine, error) {
	if g.ApplicationConfig == nil {
		g.ApplicationConfig = DefaultApplicationConfig()
	}
	cfg := g.ApplicationConfig
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	core.SetLogLevel(cfg.LogLevelValue())

	e := &Engine{
		currentStage: EngineStageBooting,
		gameInstance: g,
		config:       cfg,
		events:       core.NewEventSystem(),
		registry:     prometheus.NewRegistry(),
		clock:        core.NewClock(),
		frameMetrics: core.NewFrameMetrics(),
		stop:         make(chan struct{}),
		done:         make(chan struct{}),
	}

	sm, err := systems.NewSystemManager(systems.SystemManagerConfig{
		Workers:       cfg.Workers,
		JobQueueSize:  cfg.Workers * 4,
		MaxLightCount: cfg.MaxLights,
		ClusterBounds: cfg.ClusterBounds(),
		ClusterDims:   cfg.ClusterDims,
		AssetsDir:     cfg.AssetsDir,
		WatchAssets:   cfg.WatchAssets,
		Registerer:    e.registry,
		Events:        e.events,
	})
	if err != nil {
		core.LogError(err.Error())
		return nil, err
	}
	e.systemManager = sm
	g.SystemManager = sm

	e.renderer = renderer.New(renderer.Headless)
	if cfg.DebugDraw {
		e.debugQueue = physics.NewDebugQueue(cfg.DebugQueueSize)
	}

	e.currentStage = EngineStageBootComplete
	return e, nil
}

func (e *Engine) Initialize() error {
	e.currentStage = EngineStageInitializing

	e.events.Register(core.EventCodeApplicationQuit, e, e.onEvent)

	if err := e.renderer.Initialize(e.config.Name); err != nil {
		return err
	}

	if e.config.Level != "" {
		if err := e.systemManager.Levels().Load(e.config.Level); err != nil {
			return fmt.Errorf("failed to load start level %s: %w", e.config.Level, err)
		}
	}

	if e.config.MetricsAddr != "" {
		e.metricsServer = startMetricsServer(e.config.MetricsAddr, e.registry)
	}

	if e.gameInstance.FnInitialize != nil {
		if err := e.gameInstance.FnInitialize(); err != nil {
			core.LogError("game failed to initialize")
			return err
		}
	}

	e.currentStage = EngineStageInitialized
	return nil
}

// Run ticks at the configured rate until ctx is cancelled, Shutdown is
// called, the game fails or MaxTicks is reached. Everything is torn down
// before Run returns.
func (e *Engine) Run(ctx context.Context) error {
	if e.currentStage != EngineStageInitialized {
		return fmt.Errorf("engine cannot run from stage %d", e.currentStage)
	}
	e.running.Store(true)
	defer close(e.done)

	e.currentStage = EngineStageRunning
	step := time.Second / time.Duration(e.config.TickRate)
	ticker := time.NewTicker(step)
	defer ticker.Stop()

	e.clock.Start()
	var runErr error

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-e.stop:
			break loop
		case <-ticker.C:
			if err := e.Tick(ctx, step.Seconds()); err != nil {
				core.LogError("tick %d failed, shutting down: %s", e.ticks, err)
				runErr = err
				break loop
			}
			if e.config.MaxTicks > 0 && e.ticks >= e.config.MaxTicks {
				break loop
			}
		}
	}

	e.clock.Stop()
	if err := e.teardown(); err != nil && runErr == nil {
		runErr = err
	}
	return runErr
}

// Tick runs one fixed step: the game's mutation phase, then its query
// phase, then light assignment and the frame.
func (e *Engine) Tick(ctx context.Context, deltaTime float64) error {
	frameStart := time.Now()

	// Level hot reloads land here, before the game's own mutations.
	if reloaded, err := e.systemManager.Levels().ApplyPending(); err != nil {
		core.LogError("failed to reload level: %s", err)
	} else if reloaded {
		core.LogInfo("level %s reloaded", e.systemManager.Levels().Name())
	}

	if e.gameInstance.FnUpdate != nil {
		if err := e.gameInstance.FnUpdate(deltaTime); err != nil {
			return fmt.Errorf("game update: %w", err)
		}
	}
	if e.gameInstance.FnQuery != nil {
		if err := e.gameInstance.FnQuery(deltaTime); err != nil {
			return fmt.Errorf("game query: %w", err)
		}
	}

	lights := e.systemManager.Lights()
	clusters, err := lights.Assign(ctx)
	if err != nil {
		return fmt.Errorf("light assignment: %w", err)
	}

	packet := &renderer.RenderPacket{
		DeltaTime: deltaTime,
		Lights:    lights.Packed(),
		Clusters:  clusters,
	}
	if e.debugQueue != nil {
		e.systemManager.World().Debug(e.debugQueue)
		packet.Debug = e.debugQueue
	}
	if err := e.renderer.DrawFrame(packet); err != nil {
		return err
	}

	e.ticks++
	e.frameMetrics.Update(time.Since(frameStart).Seconds())
	if e.ticks%uint64(e.config.TickRate) == 0 {
		e.clock.Update()
		fps, ms := e.frameMetrics.Frame()
		core.LogDebug("tick %d at %.1fs: %.0f fps, %.3f ms/frame", e.ticks, e.clock.ElapsedSeconds(), fps, ms)
	}
	return nil
}

func (e *Engine) Ticks() uint64 {
	return e.ticks
}

func (e *Engine) Stage() Stage {
	return e.currentStage
}

func (e *Engine) Events() *core.EventSystem {
	return e.events
}

func (e *Engine) Registry() *prometheus.Registry {
	return e.registry
}

func (e *Engine) Renderer() *renderer.Renderer {
	return e.renderer
}

// Shutdown stops a running engine and waits for Run to tear it down, or
// tears it down directly when Run was never started.
func (e *Engine) Shutdown() error {
	ctx := core.EventContext{}
	e.events.Fire(core.EventCodeApplicationQuit, e, ctx)
	e.requestStop()
	if e.running.Load() {
		<-e.done
		return e.teardownErr
	}
	return e.teardown()
}

func (e *Engine) requestStop() {
	e.stopOnce.Do(func() { close(e.stop) })
}

func (e *Engine) teardown() error {
	e.teardownOnce.Do(func() {
		e.currentStage = EngineStageShuttingDown
		var errs []error
		if e.gameInstance.FnShutdown != nil {
			errs = append(errs, e.gameInstance.FnShutdown())
		}
		if e.metricsServer != nil {
			errs = append(errs, e.metricsServer.Shutdown())
		}
		errs = append(errs,
			e.systemManager.Shutdown(),
			e.renderer.Shutdown(),
			e.events.Shutdown(),
		)
		e.teardownErr = errors.Join(errs...)
	})
	return e.teardownErr
}

func (e *Engine) onEvent(code core.SystemEventCode, sender interface{}, listener interface{}, data core.EventContext) bool {
	switch code {
	case core.EventCodeApplicationQuit:
		core.LogInfo("EventCodeApplicationQuit received, shutting down.")
		e.requestStop()
		return true
	}
	return false
}
