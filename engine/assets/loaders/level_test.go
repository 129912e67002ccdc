package loaders

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-spatial/engine/resources"
)

const yardTOML = `
name = "yard"

[[bodies]]
type = "sphere"
surface = "metal"
center = [0.0, 1.0, 0.0]
radius = 0.5

[[bodies]]
name = "floor"
type = "plane"
surface = "grass"
normal = [0.0, 1.0, 0.0]
distance = 0.0

[[lights]]
type = "point"
position = [0.0, 3.0, 0.0]
color = [1.0, 1.0, 1.0]
intensity = 5.0
radius = 10.0
`

const yardYAML = `
bodies:
  - name: ramp
    type: triangle_mesh
    surface: concrete
    vertices:
      - [0.0, 0.0, 0.0]
      - [1.0, 0.0, 0.0]
      - [0.0, 1.0, 0.0]
    indices: [0, 1, 2]
  - type: aabb
    min: [0.0, 0.0, 0.0]
    max: [1.0, 1.0, 1.0]
lights:
  - type: directional
    direction: [0.0, -1.0, 0.0]
    intensity: 2.0
`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLevelLoaderTOML(t *testing.T) {
	ll := &LevelLoader{}
	res, err := ll.Load(writeFile(t, "yard.toml", yardTOML), resources.ResourceTypeLevel, nil)
	require.NoError(t, err)
	require.Equal(t, resources.ResourceTypeLevel, res.Type)
	require.Equal(t, "yard", res.Name)

	cfg, ok := res.Data.(*resources.LevelConfig)
	require.True(t, ok)
	require.Len(t, cfg.Bodies, 2)
	require.Equal(t, "sphere", cfg.Bodies[0].Type)
	require.Equal(t, [3]float32{0, 1, 0}, cfg.Bodies[0].Center)
	require.Equal(t, float32(0.5), cfg.Bodies[0].Radius)
	require.Equal(t, "floor", cfg.Bodies[1].Name)
	require.Len(t, cfg.Lights, 1)
	require.Equal(t, float32(10), cfg.Lights[0].Radius)

	_, err = uuid.Parse(cfg.Bodies[0].Name)
	require.NoError(t, err, "unnamed body gets a uuid")

	require.NoError(t, ll.Unload(res))
	require.Nil(t, res.Data)
}

func TestLevelLoaderYAML(t *testing.T) {
	ll := &LevelLoader{}
	res, err := ll.Load(writeFile(t, "ramp.yml", yardYAML), resources.ResourceTypeLevel, nil)
	require.NoError(t, err)
	require.Equal(t, "ramp", res.Name, "name falls back to the file name")

	cfg := res.Data.(*resources.LevelConfig)
	require.Len(t, cfg.Bodies, 2)
	require.Equal(t, "triangle_mesh", cfg.Bodies[0].Type)
	require.Equal(t, [][3]float32{{0, 0, 0}, {1, 0, 0}, {0, 1, 0}}, cfg.Bodies[0].Vertices)
	require.Equal(t, []uint32{0, 1, 2}, cfg.Bodies[0].Indices)
	require.Equal(t, [3]float32{1, 1, 1}, cfg.Bodies[1].Max)
	require.NotEmpty(t, cfg.Bodies[1].Name)
	require.Equal(t, "directional", cfg.Lights[0].Type)
}

func TestParseLevelErrors(t *testing.T) {
	_, err := ParseLevel([]byte("name: x"), ".json")
	require.ErrorIs(t, err, ErrUnsupportedLevelFormat)

	_, err = ParseLevel([]byte("colour = 3\n"), ".toml")
	require.Error(t, err, "unknown keys are rejected")

	_, err = ParseLevel([]byte("bodies: [{shape: sphere}]\n"), ".yaml")
	require.Error(t, err)

	cfg, err := ParseLevel(nil, ".yaml")
	require.NoError(t, err)
	require.Empty(t, cfg.Bodies)

	ll := &LevelLoader{}
	_, err = ll.Load("missing.toml", resources.ResourceTypeLevel, nil)
	require.Error(t, err)
	_, err = ll.Load("missing.toml", resources.ResourceTypeText, nil)
	require.Error(t, err)
}
