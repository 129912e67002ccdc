package assets

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/resources"
)

const level = "name = \"arena\"\n\n[[bodies]]\ntype = \"aabb\"\nmin = [0.0, 0.0, 0.0]\nmax = [1.0, 1.0, 1.0]\n"

func assetsDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "levels"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "levels", "arena.toml"), []byte(level), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "readme.txt"), []byte("hi"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "ignored.png"), []byte{0}, 0o644))
	return dir
}

func TestAssetManagerLoadLevel(t *testing.T) {
	dir := assetsDir(t)
	am, err := NewAssetManager(nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir, false))
	defer am.Shutdown()

	levels := am.Assets(resources.ResourceTypeLevel)
	require.Len(t, levels, 1)
	require.Equal(t, filepath.Join(dir, "levels", "arena.toml"), levels[0].Path)
	require.Len(t, am.Assets(resources.ResourceTypeText), 1)

	res, err := am.LoadAsset("arena", resources.ResourceTypeLevel, nil)
	require.NoError(t, err)
	cfg := res.Data.(*resources.LevelConfig)
	require.Equal(t, "arena", cfg.Name)
	require.Len(t, cfg.Bodies, 1)

	res, err = am.LoadAsset("levels/arena.toml", resources.ResourceTypeLevel, nil)
	require.NoError(t, err)
	require.NoError(t, am.UnloadAsset(res))

	_, err = am.LoadAsset("nowhere", resources.ResourceTypeLevel, nil)
	require.ErrorIs(t, err, ErrAssetNotFound)

	_, err = am.LoadAsset("readme.txt", resources.ResourceTypeText, nil)
	require.ErrorIs(t, err, ErrNoLoader)
}

func TestAssetManagerShutdownTwice(t *testing.T) {
	am, err := NewAssetManager(nil)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(t.TempDir(), false))
	require.NoError(t, am.Shutdown())
	require.ErrorIs(t, am.Shutdown(), ErrManagerClosed)
	require.ErrorIs(t, am.Initialize(t.TempDir(), false), ErrManagerClosed)
}

func TestAssetManagerWatch(t *testing.T) {
	dir := assetsDir(t)
	events := core.NewEventSystem()
	events.Initialize()

	fired := make(chan string, 8)
	events.Register(core.EventCodeAssetChanged, t, func(code core.SystemEventCode, sender, listener interface{}, ctx core.EventContext) bool {
		fired <- ctx.Data.C[0]
		return true
	})

	am, err := NewAssetManager(events)
	require.NoError(t, err)
	require.NoError(t, am.Initialize(dir, true))
	defer am.Shutdown()

	changed := make(chan AssetInfo, 8)
	am.OnChange(func(info AssetInfo) { changed <- info })

	path := filepath.Join(dir, "levels", "pit.yaml")
	require.NoError(t, os.WriteFile(path, []byte("name: pit\n"), 0o644))

	select {
	case info := <-changed:
		require.Equal(t, path, info.Path)
		require.Equal(t, resources.ResourceTypeLevel, info.Type)
	case <-time.After(5 * time.Second):
		t.Fatal("no change notification")
	}
	select {
	case p := <-fired:
		require.Equal(t, path, p)
	case <-time.After(5 * time.Second):
		t.Fatal("no asset event")
	}

	require.Eventually(t, func() bool {
		_, err := am.Resolve("pit", resources.ResourceTypeLevel)
		return err == nil
	}, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, os.Remove(path))
	require.Eventually(t, func() bool {
		_, err := am.Resolve("pit", resources.ResourceTypeLevel)
		return err != nil
	}, 5*time.Second, 10*time.Millisecond)
}
