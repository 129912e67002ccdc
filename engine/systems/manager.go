package systems

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/spaghettifunk/anima-spatial/engine/assets"
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
)

/** @brief Configuration for every engine system. */
type SystemManagerConfig struct {
	Workers       int
	JobQueueSize  int
	MaxLightCount int
	ClusterBounds math.BoundingBox
	ClusterDims   [3]uint32
	AssetsDir     string
	WatchAssets   bool
	WorldCapacity int
	Registerer    prometheus.Registerer
	Events        *core.EventSystem
}

type SystemManager struct {
	jobSystem    *JobSystem
	assetManager *assets.AssetManager
	world        *physics.World
	lightSystem  *LightSystem
	levelSystem  *LevelSystem
}

func NewSystemManager(config SystemManagerConfig) (*SystemManager, error) {
	js, err := NewJobSystem(JobSystemConfig{
		Workers:   config.Workers,
		QueueSize: config.JobQueueSize,
	})
	if err != nil {
		return nil, err
	}

	var am *assets.AssetManager
	if config.AssetsDir != "" {
		am, err = assets.NewAssetManager(config.Events)
		if err != nil {
			return nil, err
		}
		if err := am.Initialize(config.AssetsDir, config.WatchAssets); err != nil {
			return nil, fmt.Errorf("failed to index assets in %s: %w", config.AssetsDir, err)
		}
	}

	metrics, err := physics.NewMetrics(config.Registerer)
	if err != nil {
		return nil, err
	}
	world := physics.NewWorld(physics.WorldConfig{
		InitialCapacity: config.WorldCapacity,
		Events:          config.Events,
		Metrics:         metrics,
	})

	ls, err := NewLightSystem(LightSystemConfig{
		MaxLightCount: config.MaxLightCount,
		ClusterBounds: config.ClusterBounds,
		ClusterDims:   config.ClusterDims,
		Registerer:    config.Registerer,
	}, js)
	if err != nil {
		return nil, err
	}

	return &SystemManager{
		jobSystem:    js,
		assetManager: am,
		world:        world,
		lightSystem:  ls,
		levelSystem:  NewLevelSystem(world, ls, am, config.Events),
	}, nil
}

func (sm *SystemManager) Jobs() *JobSystem {
	return sm.jobSystem
}

func (sm *SystemManager) Assets() *assets.AssetManager {
	return sm.assetManager
}

func (sm *SystemManager) World() *physics.World {
	return sm.world
}

func (sm *SystemManager) Lights() *LightSystem {
	return sm.lightSystem
}

func (sm *SystemManager) Levels() *LevelSystem {
	return sm.levelSystem
}

func (sm *SystemManager) Shutdown() error {
	if err := sm.levelSystem.Shutdown(); err != nil {
		return err
	}
	if err := sm.lightSystem.Shutdown(); err != nil {
		return err
	}
	if sm.assetManager != nil {
		if err := sm.assetManager.Shutdown(); err != nil {
			return err
		}
	}
	if err := sm.jobSystem.Shutdown(); err != nil {
		return err
	}
	return nil
}
