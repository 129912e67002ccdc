package engine

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
)

// DefaultConfigFile is read by LoadApplicationConfig when present.
const DefaultConfigFile = "anima.toml"

type ApplicationConfig struct {
	// The application name used in logs and by the renderer.
	Name string `toml:"name"`
	// One of debug, info, warn, error.
	LogLevel string `toml:"log_level"`
	// Root of the asset tree; empty disables asset loading.
	AssetsDir string `toml:"assets_dir"`
	// Level loaded at startup, resolved under AssetsDir/levels.
	Level string `toml:"level"`
	// Fixed update steps per second.
	TickRate uint32 `toml:"tick_rate"`
	// Stop after this many ticks; 0 runs until shut down.
	MaxTicks uint64 `toml:"max_ticks"`
	// Job system worker count.
	Workers int `toml:"workers"`
	// Maximum lights in a frame.
	MaxLights int `toml:"max_lights"`
	// Light clusters per axis.
	ClusterDims [3]uint32 `toml:"cluster_dims"`
	// Cluster volume used until a level provides bounds.
	ClusterMin [3]float32 `toml:"cluster_min"`
	ClusterMax [3]float32 `toml:"cluster_max"`
	// Emit debug primitives every frame.
	DebugDraw bool `toml:"debug_draw"`
	// Capacity of the per-frame debug queue.
	DebugQueueSize int `toml:"debug_queue_size"`
	// Reload assets when they change on disk.
	WatchAssets bool `toml:"watch_assets"`
	// Serve prometheus metrics on this address; empty disables it.
	MetricsAddr string `toml:"metrics_addr"`
}

func DefaultApplicationConfig() *ApplicationConfig {
	return &ApplicationConfig{
		Name:           "Anima Spatial",
		LogLevel:       "info",
		AssetsDir:      "assets",
		TickRate:       60,
		Workers:        4,
		MaxLights:      64,
		ClusterDims:    [3]uint32{4, 2, 4},
		ClusterMin:     [3]float32{-16, -4, -16},
		ClusterMax:     [3]float32{16, 12, 16},
		DebugQueueSize: 1024,
	}
}

// LoadApplicationConfig reads path over the defaults. A missing file is not
// an error.
func LoadApplicationConfig(path string) (*ApplicationConfig, error) {
	cfg := DefaultApplicationConfig()
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		core.LogDebug("no config at %s, using defaults", path)
		return cfg, nil
	}
	if err != nil {
		return nil, err
	}
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *ApplicationConfig) Validate() error {
	if c.TickRate == 0 {
		return errors.New("tick_rate must be > 0")
	}
	if c.Workers <= 0 {
		return errors.New("workers must be > 0")
	}
	if c.MaxLights <= 0 {
		return errors.New("max_lights must be > 0")
	}
	for i, d := range c.ClusterDims {
		if d == 0 {
			return fmt.Errorf("cluster_dims[%d] must be > 0", i)
		}
	}
	if !c.ClusterBounds().IsValid() {
		return errors.New("cluster_min must not exceed cluster_max")
	}
	return nil
}

func (c *ApplicationConfig) ClusterBounds() math.BoundingBox {
	return math.BoundingBox{
		Min: math.NewVec3(c.ClusterMin[0], c.ClusterMin[1], c.ClusterMin[2]),
		Max: math.NewVec3(c.ClusterMax[0], c.ClusterMax[1], c.ClusterMax[2]),
	}
}

func (c *ApplicationConfig) LogLevelValue() core.LogLevel {
	return core.ParseLogLevel(c.LogLevel)
}
