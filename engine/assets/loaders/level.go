package loaders

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/spaghettifunk/anima-spatial/engine/core"
	"github.com/spaghettifunk/anima-spatial/engine/resources"
)

var ErrUnsupportedLevelFormat = errors.New("unsupported level format")

// LevelLoader reads level descriptions from TOML or YAML files.
type LevelLoader struct{}

func (ll *LevelLoader) Load(path string, assetType resources.ResourceType, params interface{}) (*resources.Resource, error) {
	if assetType != resources.ResourceTypeLevel {
		return nil, fmt.Errorf("level loader cannot load %s resources", assetType)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg, err := ParseLevel(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", path, err)
	}
	if cfg.Name == "" {
		cfg.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	core.LogDebug("loaded level %s: %d bodies, %d lights", cfg.Name, len(cfg.Bodies), len(cfg.Lights))
	return &resources.Resource{
		Type:     resources.ResourceTypeLevel,
		Name:     cfg.Name,
		FullPath: path,
		DataSize: uint64(len(data)),
		Data:     cfg,
	}, nil
}

func (ll *LevelLoader) Unload(res *resources.Resource) error {
	if res == nil {
		return errors.New("cannot unload a nil level")
	}
	res.Data = nil
	res.DataSize = 0
	return nil
}

// ParseLevel decodes a level from data in the format named by ext
// (".toml", ".yaml" or ".yml"). Unknown keys are rejected and every
// unnamed body gets a generated name.
func ParseLevel(data []byte, ext string) (*resources.LevelConfig, error) {
	cfg := &resources.LevelConfig{}
	switch strings.ToLower(ext) {
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(cfg); err != nil {
			return nil, err
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedLevelFormat, ext)
	}

	for i := range cfg.Bodies {
		if cfg.Bodies[i].Name == "" {
			cfg.Bodies[i].Name = uuid.New().String()
		}
	}
	return cfg, nil
}
