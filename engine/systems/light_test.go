package systems

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-spatial/engine/math"
	"github.com/spaghettifunk/anima-spatial/engine/renderer/lighting"
)

var white = math.NewVec3One()

func newTestLightSystem(t *testing.T, max int) *LightSystem {
	t.Helper()
	js, err := NewJobSystem(JobSystemConfig{Workers: 2})
	require.NoError(t, err)
	t.Cleanup(func() { js.Shutdown() })

	ls, err := NewLightSystem(LightSystemConfig{
		MaxLightCount: max,
		ClusterBounds: math.NewBoundingBox(math.Vec3{}, math.NewVec3(4, 2, 2)),
		ClusterDims:   [3]uint32{2, 1, 1},
		Registerer:    prometheus.NewRegistry(),
	}, js)
	require.NoError(t, err)
	return ls
}

func TestNewLightSystemValidation(t *testing.T) {
	_, err := NewLightSystem(LightSystemConfig{}, nil)
	require.Error(t, err)
	_, err = NewLightSystem(LightSystemConfig{MaxLightCount: 1, ClusterDims: [3]uint32{1, 1, 0}}, nil)
	require.Error(t, err)
}

func TestLightSystemAssign(t *testing.T) {
	ls := newTestLightSystem(t, 8)
	a, err := ls.Add(lighting.NewPointLight(math.NewVec3(1, 1, 1), white, 5, 0.5))
	require.NoError(t, err)
	b, err := ls.Add(lighting.NewPointLight(math.NewVec3(3, 1, 1), white, 5, 0.5))
	require.NoError(t, err)
	c, err := ls.Add(lighting.NewDirectionalLight(math.Vec3{Y: -1}, white, 1))
	require.NoError(t, err)
	require.Equal(t, []int{0, 1, 2}, []int{a, b, c})

	indices, err := ls.Assign(context.Background())
	require.NoError(t, err)
	require.Equal(t, []lighting.LightIndices{
		{0, 2, -1, -1},
		{1, 2, -1, -1},
	}, indices)
	require.Equal(t, indices, ls.Indices())

	at, ok := ls.IndicesAt(math.NewVec3(3.5, 0.5, 0.5))
	require.True(t, ok)
	require.Equal(t, lighting.LightIndices{1, 2, -1, -1}, at)
	_, ok = ls.IndicesAt(math.NewVec3(-1, 0, 0))
	require.False(t, ok)

	require.Len(t, ls.Packed(), 3*lighting.FloatsPerLight)
	require.Equal(t, 1.0, testutil.ToFloat64(ls.assignments))
	require.Equal(t, 0.0, testutil.ToFloat64(ls.truncated))
	require.Equal(t, 3.0, testutil.ToFloat64(ls.lightCount))

	require.NoError(t, ls.Update(0, lighting.NewPointLight(math.NewVec3(1, 1, 1), white, 0.5, 0.5)))
	indices, err = ls.Assign(context.Background())
	require.NoError(t, err)
	require.Equal(t, lighting.LightIndices{2, 0, -1, -1}, indices[0])
	require.Error(t, ls.Update(9, lighting.Light{}))
}

func TestLightSystemTruncation(t *testing.T) {
	ls := newTestLightSystem(t, 6)
	lights := make([]lighting.Light, 0, 6)
	for i := 0; i < 6; i++ {
		lights = append(lights, lighting.NewPointLight(math.NewVec3(1, 1, 1), white, float32(10-i), 10))
	}
	require.NoError(t, ls.Set(lights))

	_, err := ls.Add(lighting.Light{})
	require.ErrorIs(t, err, ErrTooManyLights)
	require.ErrorIs(t, ls.Set(make([]lighting.Light, 7)), ErrTooManyLights)

	indices, err := ls.Assign(context.Background())
	require.NoError(t, err)
	for _, li := range indices {
		require.Equal(t, lighting.LightIndices{0, 1, 2, 3}, li)
	}
	require.Equal(t, 4.0, testutil.ToFloat64(ls.truncated))
}

func TestLightSystemWithoutJobs(t *testing.T) {
	ls, err := NewLightSystem(LightSystemConfig{
		MaxLightCount: 2,
		ClusterBounds: math.NewBoundingBox(math.Vec3{}, math.NewVec3One()),
		ClusterDims:   [3]uint32{1, 1, 1},
	}, nil)
	require.NoError(t, err)
	_, err = ls.Add(lighting.NewPointLight(math.NewVec3(0.5, 0.5, 0.5), white, 1, 1))
	require.NoError(t, err)

	indices, err := ls.Assign(context.Background())
	require.NoError(t, err)
	require.Equal(t, []lighting.LightIndices{{0, -1, -1, -1}}, indices)

	require.NoError(t, ls.SetClusterBounds(math.NewBoundingBox(math.NewVec3(10, 10, 10), math.NewVec3(11, 11, 11))))
	require.Nil(t, ls.Indices())
	indices, err = ls.Assign(context.Background())
	require.NoError(t, err)
	require.Equal(t, []lighting.LightIndices{lighting.NewLightIndices()}, indices)

	require.NoError(t, ls.Shutdown())
	require.Empty(t, ls.Lights())
}
