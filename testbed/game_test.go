package testbed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-spatial/engine"
)

func runTestbed(t *testing.T, ticks uint64) *gameState {
	t.Helper()
	cfg := engine.DefaultApplicationConfig()
	cfg.AssetsDir = ""
	cfg.TickRate = 1000
	cfg.MaxTicks = ticks
	cfg.LogLevel = "error"

	tg := NewTestGame(cfg)
	e, err := engine.New(tg.Game)
	require.NoError(t, err)
	require.NoError(t, e.Initialize())
	require.NoError(t, e.Run(context.Background()))
	return tg.state()
}

func TestTestbedFiresProjectiles(t *testing.T) {
	state := runTestbed(t, 200)
	require.Equal(t, 20, state.shots)
	require.Equal(t, state.shots, len(state.projectiles)+state.expired)
}

func TestTestbedIsDeterministic(t *testing.T) {
	a := runTestbed(t, 300)
	b := runTestbed(t, 300)
	require.Equal(t, a.shots, b.shots)
	require.Equal(t, a.hits, b.hits)
	require.Equal(t, a.expired, b.expired)
	require.Equal(t, a.surfaces, b.surfaces)
}
