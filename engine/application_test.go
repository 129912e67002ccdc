package engine

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/math"
)

func TestLoadApplicationConfig(t *testing.T) {
	cfg, err := LoadApplicationConfig(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	require.Equal(t, DefaultApplicationConfig(), cfg)

	path := filepath.Join(t.TempDir(), DefaultConfigFile)
	content := `
name = "yard"
log_level = "debug"
level = "yard"
tick_rate = 30
workers = 8
cluster_dims = [2, 2, 2]
cluster_min = [0.0, 0.0, 0.0]
cluster_max = [8.0, 8.0, 8.0]
debug_draw = true
watch_assets = true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	cfg, err = LoadApplicationConfig(path)
	require.NoError(t, err)
	require.Equal(t, "yard", cfg.Name)
	require.Equal(t, core.DebugLevel, cfg.LogLevelValue())
	require.Equal(t, uint32(30), cfg.TickRate)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, [3]uint32{2, 2, 2}, cfg.ClusterDims)
	require.Equal(t, math.NewBoundingBox(math.Vec3{}, math.NewVec3(8, 8, 8)), cfg.ClusterBounds())
	require.True(t, cfg.DebugDraw)
	require.True(t, cfg.WatchAssets)
	// untouched keys keep their defaults
	require.Equal(t, "assets", cfg.AssetsDir)
	require.Equal(t, 64, cfg.MaxLights)
}

func TestLoadApplicationConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"syntax", "name = \n"},
		{"zero tick rate", "tick_rate = 0\n"},
		{"zero cluster dim", "cluster_dims = [1, 0, 1]\n"},
		{"inverted bounds", "cluster_min = [1.0, 0.0, 0.0]\ncluster_max = [0.0, 1.0, 1.0]\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "bad.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.content), 0o644))
			_, err := LoadApplicationConfig(path)
			require.Error(t, err)
		})
	}
}
