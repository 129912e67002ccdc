package assets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/exp/slices"

	"github.com/spaghettifunk/anima-spatial/engine/assets/loaders"
	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/resources"
)

var (
	ErrManagerClosed = errors.New("asset manager already closed")
	ErrAssetNotFound = errors.New("asset not found")
	ErrNoLoader      = errors.New("no loader registered for asset type")
)

type AssetInfo struct {
	Path       string
	Type       resources.ResourceType
	LastLoaded time.Time
}

// FnOnAssetChanged is invoked from the watcher goroutine when an indexed
// asset is created or written.
type FnOnAssetChanged func(info AssetInfo)

type AssetManager struct {
	dir     string
	assets  map[string]AssetInfo
	loaders map[resources.ResourceType]Loader

	mutex sync.RWMutex

	events   *core.EventSystem
	onChange []FnOnAssetChanged

	done     chan struct{}
	stopped  chan struct{}
	fsnotify *fsnotify.Watcher
	isClosed bool
	watching bool
}

// NewAssetManager creates a manager. events may be nil; when set, every
// change also fires EventCodeAssetChanged.
func NewAssetManager(events *core.EventSystem) (*AssetManager, error) {
	fsWatch, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	return &AssetManager{
		assets:   make(map[string]AssetInfo),
		loaders:  make(map[resources.ResourceType]Loader),
		events:   events,
		fsnotify: fsWatch,
		done:     make(chan struct{}),
		stopped:  make(chan struct{}),
	}, nil
}

// Initialize indexes assetsDir and registers the built-in loaders. With
// watch set, the directory tree is watched for changes until Shutdown.
func (am *AssetManager) Initialize(assetsDir string, watch bool) error {
	if am.isClosed {
		return ErrManagerClosed
	}
	am.dir = assetsDir

	// Register loaders
	am.RegisterLoader(resources.ResourceTypeLevel, &loaders.LevelLoader{})

	if err := am.watchRecursive(assetsDir, watch); err != nil {
		return err
	}
	if watch {
		am.watching = true
		go am.start()
	}
	return nil
}

// Shutdown stops the watcher and waits for it to exit.
func (am *AssetManager) Shutdown() error {
	if am.isClosed {
		return ErrManagerClosed
	}
	am.isClosed = true
	close(am.done)
	if am.watching {
		<-am.stopped
	}
	return am.fsnotify.Close()
}

// Dir is the indexed assets directory.
func (am *AssetManager) Dir() string {
	return am.dir
}

// Register loaders for each asset type
func (am *AssetManager) RegisterLoader(assetType resources.ResourceType, loader Loader) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.loaders[assetType] = loader
}

// OnChange registers fn for asset change notifications.
func (am *AssetManager) OnChange(fn FnOnAssetChanged) {
	am.mutex.Lock()
	defer am.mutex.Unlock()
	am.onChange = append(am.onChange, fn)
}

// Assets lists the indexed assets of the given type, sorted by path.
func (am *AssetManager) Assets(assetType resources.ResourceType) []AssetInfo {
	am.mutex.RLock()
	defer am.mutex.RUnlock()
	out := []AssetInfo{}
	for _, a := range am.assets {
		if a.Type == assetType {
			out = append(out, a)
		}
	}
	sortInfos(out)
	return out
}

// Resolve finds the indexed file for name. name is either a path relative
// to the assets directory or a bare name looked up in the type's folder.
func (am *AssetManager) Resolve(name string, resourceType resources.ResourceType) (AssetInfo, error) {
	am.mutex.RLock()
	defer am.mutex.RUnlock()

	candidates := []string{filepath.Join(am.dir, name)}
	if filepath.Ext(name) == "" {
		folder := typeFolder(resourceType)
		for _, ext := range typeExtensions(resourceType) {
			candidates = append(candidates, filepath.Join(am.dir, folder, name+ext))
		}
	}
	for _, path := range candidates {
		if asset, ok := am.assets[path]; ok && asset.Type == resourceType {
			return asset, nil
		}
	}
	return AssetInfo{}, fmt.Errorf("%w: %s %s", ErrAssetNotFound, resourceType, name)
}

// Load an asset using the appropriate loader
func (am *AssetManager) LoadAsset(name string, resourceType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	asset, err := am.Resolve(name, resourceType)
	if err != nil {
		return nil, err
	}

	am.mutex.Lock()
	loader, loaderExists := am.loaders[asset.Type]
	asset.LastLoaded = time.Now()
	am.assets[asset.Path] = asset
	am.mutex.Unlock()

	if !loaderExists {
		return nil, fmt.Errorf("%w: %s", ErrNoLoader, asset.Type)
	}
	return loader.Load(asset.Path, resourceType, params)
}

func (am *AssetManager) UnloadAsset(asset *resources.Resource) error {
	am.mutex.RLock()
	loader, ok := am.loaders[asset.Type]
	am.mutex.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNoLoader, asset.Type)
	}
	return loader.Unload(asset)
}

func (am *AssetManager) start() {
	defer close(am.stopped)
	for {
		select {

		case e, ok := <-am.fsnotify.Events:
			if !ok {
				return
			}
			s, err := os.Stat(e.Name)
			if err == nil && s != nil && s.IsDir() {
				if e.Op&fsnotify.Create != 0 {
					if err := am.watchRecursive(e.Name, true); err != nil {
						core.LogWarn("failed to watch %s: %s", e.Name, err)
					}
				}
				continue
			}
			// Handle create or modify events
			if e.Op&(fsnotify.Create|fsnotify.Write) != 0 {
				if info, ok := am.handleFileEvent(e.Name); ok {
					am.notify(info)
				}
			}
			// Can't stat a deleted path, so drop it from both the index and the watch list.
			if e.Op&(fsnotify.Remove|fsnotify.Rename) != 0 {
				am.removeAsset(e.Name)
				_ = am.fsnotify.Remove(e.Name)
			}

		case err, ok := <-am.fsnotify.Errors:
			if !ok {
				return
			}
			core.LogError(err.Error())

		case <-am.done:
			return
		}
	}
}

// watchRecursive indexes every file under path and, with watch set, adds
// every directory to the watch list.
func (am *AssetManager) watchRecursive(path string, watch bool) error {
	return filepath.Walk(path, func(walkPath string, fi os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if fi.IsDir() {
			if watch {
				return am.fsnotify.Add(walkPath)
			}
			return nil
		}
		am.handleFileEvent(walkPath)
		return nil
	})
}

// Handle the creation or modification of a file
func (am *AssetManager) handleFileEvent(path string) (AssetInfo, bool) {
	assetType := determineAssetType(path)
	if assetType == resources.ResourceTypeNone {
		return AssetInfo{}, false
	}

	am.mutex.Lock()
	defer am.mutex.Unlock()
	path = filepath.Clean(path)
	info := AssetInfo{
		Path:       path,
		Type:       assetType,
		LastLoaded: am.assets[path].LastLoaded,
	}
	am.assets[info.Path] = info
	return info, true
}

func (am *AssetManager) notify(info AssetInfo) {
	am.mutex.RLock()
	callbacks := append([]FnOnAssetChanged(nil), am.onChange...)
	am.mutex.RUnlock()

	core.LogDebug("asset changed: %s", info.Path)
	for _, fn := range callbacks {
		fn(info)
	}
	if am.events != nil {
		ctx := core.EventContext{}
		ctx.Data.C[0] = info.Path
		am.events.Fire(core.EventCodeAssetChanged, am, ctx)
	}
}

// Remove the asset from the index if it was deleted
func (am *AssetManager) removeAsset(path string) {
	am.mutex.Lock()
	defer am.mutex.Unlock()

	delete(am.assets, filepath.Clean(path))
}

func determineAssetType(path string) resources.ResourceType {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml", ".yaml", ".yml":
		return resources.ResourceTypeLevel
	case ".txt", ".md":
		return resources.ResourceTypeText
	case ".bin":
		return resources.ResourceTypeBinary
	default:
		return resources.ResourceTypeNone
	}
}

func typeFolder(t resources.ResourceType) string {
	switch t {
	case resources.ResourceTypeLevel:
		return "levels"
	default:
		return ""
	}
}

func typeExtensions(t resources.ResourceType) []string {
	switch t {
	case resources.ResourceTypeLevel:
		return []string{".toml", ".yaml", ".yml"}
	case resources.ResourceTypeText:
		return []string{".txt", ".md"}
	case resources.ResourceTypeBinary:
		return []string{".bin"}
	default:
		return nil
	}
}

func sortInfos(infos []AssetInfo) {
	slices.SortFunc(infos, func(a, b AssetInfo) int {
		return strings.Compare(a.Path, b.Path)
	})
}
