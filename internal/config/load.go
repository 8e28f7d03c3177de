package config

import (
	"fmt"

	"github.com/dshills/vgacon/internal/config/loader"
)

// Source reads one configuration layer.
type Source interface {
	Load() (map[string]any, error)
}

// Load builds a Config from the defaults, the TOML file at path (if it
// exists) and the VGACON_* environment, then validates it. An empty path
// skips the file layer.
func Load(path string) (*Config, error) {
	return LoadFrom(loader.NewTOMLLoader(path), loader.NewEnvLoader(loader.DefaultEnvPrefix))
}

// LoadFrom decodes the given layers, lowest precedence first, over the
// defaults and validates the result.
func LoadFrom(sources ...Source) (*Config, error) {
	var merged map[string]any
	for _, src := range sources {
		layer, err := src.Load()
		if err != nil {
			return nil, err
		}
		merged = loader.DeepMerge(merged, layer)
	}

	cfg := Default()
	if len(merged) > 0 {
		if err := loader.Decode("configuration", merged, cfg); err != nil {
			return nil, err
		}
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}
