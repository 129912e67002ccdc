package engine

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-spatial/engine/math"
	"github.com/spaghettifunk/anima-spatial/engine/physics"
	"github.com/spaghettifunk/anima-spatial/engine/renderer"
)

func testConfig() *ApplicationConfig {
	cfg := DefaultApplicationConfig()
	cfg.AssetsDir = ""
	cfg.TickRate = 500
	cfg.Workers = 2
	cfg.LogLevel = "error"
	return cfg
}

func TestEngineRunsPhasesInOrder(t *testing.T) {
	cfg := testConfig()
	cfg.MaxTicks = 3
	cfg.DebugDraw = true

	var phases []string
	var hits int
	g := &Game{ApplicationConfig: cfg}
	g.FnInitialize = func() error {
		ball, err := physics.NewSphere(math.NewVec3(0, 0, 5), 1)
		if err != nil {
			return err
		}
		_, err = g.SystemManager.World().Add(ball)
		return err
	}
	g.FnUpdate = func(dt float64) error {
		phases = append(phases, "update")
		return nil
	}
	g.FnQuery = func(dt float64) error {
		phases = append(phases, "query")
		if g.SystemManager.World().Cast(math.Vec3{}, math.NewVec3(0, 0, 10), nil).Hit {
			hits++
		}
		return nil
	}
	shutdown := false
	g.FnShutdown = func() error {
		shutdown = true
		return nil
	}

	e, err := New(g)
	require.NoError(t, err)
	require.Equal(t, EngineStageBootComplete, e.Stage())
	require.NoError(t, e.Initialize())
	require.Equal(t, EngineStageInitialized, e.Stage())

	hb := e.Renderer().Backend().(*renderer.HeadlessBackend)

	require.NoError(t, e.Run(context.Background()))
	require.Equal(t, uint64(3), e.Ticks())
	require.Equal(t, []string{"update", "query", "update", "query", "update", "query"}, phases)
	require.Equal(t, 3, hits)
	require.True(t, shutdown)
	require.Equal(t, EngineStageShuttingDown, e.Stage())

	stats := hb.Stats()
	require.Equal(t, uint64(3), stats.Frame)
	require.Equal(t, 1, stats.DebugBoxes)
	require.Equal(t, 32, stats.Clusters)

	require.NoError(t, e.Shutdown(), "second shutdown is a no-op")
}

func TestEngineStopsOnGameError(t *testing.T) {
	boom := errors.New("boom")
	g := &Game{ApplicationConfig: testConfig()}
	g.FnUpdate = func(dt float64) error { return boom }

	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.ErrorIs(t, e.Run(context.Background()), boom)
	require.Equal(t, uint64(0), e.Ticks())
}

func TestEngineShutdownStopsRun(t *testing.T) {
	g := &Game{ApplicationConfig: testConfig()}
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())

	errCh := make(chan error, 1)
	go func() { errCh <- e.Run(context.Background()) }()

	require.Eventually(t, func() bool { return e.running.Load() }, time.Second, time.Millisecond)
	require.NoError(t, e.Shutdown())
	select {
	case err := <-errCh:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("run did not return")
	}
}

func TestEngineContextCancel(t *testing.T) {
	e, err := New(&Game{ApplicationConfig: testConfig()})
	require.NoError(t, err)
	require.Error(t, e.Run(context.Background()), "run before initialize")
	require.NoError(t, e.Initialize())

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	require.NoError(t, e.Run(ctx))
}

func TestEngineLoadsStartLevel(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "levels"), 0o755))
	level := "[[bodies]]\ntype = \"aabb\"\nmin = [0.0, 0.0, 0.0]\nmax = [2.0, 2.0, 2.0]\n\n[[lights]]\ntype = \"point\"\nposition = [1.0, 1.0, 1.0]\nintensity = 1.0\nradius = 1.0\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "levels", "box.toml"), []byte(level), 0o644))

	cfg := testConfig()
	cfg.AssetsDir = dir
	cfg.Level = "box"
	cfg.MaxTicks = 1
	g := &Game{ApplicationConfig: cfg}
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.Equal(t, 1, g.SystemManager.World().Len())
	require.Equal(t, "box", g.SystemManager.Levels().Name())

	hb := e.Renderer().Backend().(*renderer.HeadlessBackend)
	require.NoError(t, e.Run(context.Background()))
	require.Equal(t, 16, hb.Stats().LightFloats)
	require.Positive(t, hb.Stats().LitClusters)

	cfg = testConfig()
	cfg.AssetsDir = dir
	cfg.Level = "missing"
	e, err = New(&Game{ApplicationConfig: cfg})
	require.NoError(t, err)
	require.Error(t, e.Initialize())
	require.NoError(t, e.Shutdown())
}

func TestEngineAppliesLevelChangesBeforeUpdate(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "levels"), 0o755))
	path := filepath.Join(dir, "levels", "box.toml")
	one := "[[bodies]]\ntype = \"aabb\"\nmax = [1.0, 1.0, 1.0]\n"
	require.NoError(t, os.WriteFile(path, []byte(one), 0o644))

	cfg := testConfig()
	cfg.AssetsDir = dir
	cfg.Level = "box"
	cfg.WatchAssets = true

	var seen []int
	g := &Game{ApplicationConfig: cfg}
	g.FnUpdate = func(dt float64) error {
		seen = append(seen, g.SystemManager.World().Len())
		return nil
	}
	g.FnQuery = func(dt float64) error {
		seen = append(seen, g.SystemManager.World().Len())
		return nil
	}
	e, err := New(g)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	defer e.Shutdown()

	ctx := context.Background()
	require.NoError(t, e.Tick(ctx, 0.01))

	two := one + "\n[[bodies]]\ntype = \"sphere\"\ncenter = [4.0, 0.0, 0.0]\nradius = 1.0\n"
	tmp := filepath.Join(dir, "box.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte(two), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	levels := g.SystemManager.Levels()
	require.Eventually(t, levels.Pending, 5*time.Second, 10*time.Millisecond)
	require.Equal(t, 1, g.SystemManager.World().Len())

	require.NoError(t, e.Tick(ctx, 0.01))
	require.Equal(t, []int{1, 1, 2, 2}, seen)
	require.False(t, levels.Pending())
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.TickRate = 0
	_, err := New(&Game{ApplicationConfig: cfg})
	require.Error(t, err)
}
