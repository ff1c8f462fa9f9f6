// Package configurator builds a module's materialized configuration from
// its self-declared defaults, an optional per-module YAML file in the
// project, and overrides stored in the host's key-value store.
package configurator

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"

	"github.com/botpress-labs/botpress/internal/extension"
	"github.com/botpress-labs/botpress/internal/kvstore"
)

// kvBucket is the key-value store bucket holding per-module overrides,
// stored as JSON objects keyed by module name.
const kvBucket = "module-config"

// configDirName is the project subdirectory holding per-module YAML files.
const configDirName = "config"

// Build materializes the configuration for one module. Precedence, lowest
// first: declared defaults, then config/<module>.yaml in the project, then
// key-value store overrides. A nil kv handle skips the override layer.
func Build(kv *kvstore.Store, moduleName, botfile, projectRoot string, defaults map[string]any) (extension.Config, error) {
	cfg := make(extension.Config, len(defaults))
	for k, v := range defaults {
		cfg[k] = v
	}

	if botfile != "" {
		cfg["botfile"] = botfile
	}

	if err := overlayFile(cfg, projectRoot, moduleName); err != nil {
		return nil, err
	}
	if err := overlayStore(cfg, kv, moduleName); err != nil {
		return nil, err
	}
	return cfg, nil
}

// overlayFile merges config/<module>.yaml into cfg when the file exists.
func overlayFile(cfg extension.Config, projectRoot, moduleName string) error {
	path := filepath.Join(projectRoot, configDirName, moduleName+".yaml")
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading module config %s: %w", path, err)
	}

	var overlay map[string]any
	if err := yaml.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing module config %s: %w", path, err)
	}
	for k, v := range overlay {
		cfg[k] = v
	}
	return nil
}

// overlayStore merges JSON overrides from the key-value store into cfg.
func overlayStore(cfg extension.Config, kv *kvstore.Store, moduleName string) error {
	if kv == nil {
		return nil
	}
	data, err := kv.Get(kvBucket, moduleName)
	if errors.Is(err, kvstore.ErrNotFound) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading stored config for %s: %w", moduleName, err)
	}

	var overlay map[string]any
	if err := json.Unmarshal(data, &overlay); err != nil {
		return fmt.Errorf("parsing stored config for %s: %w", moduleName, err)
	}
	for k, v := range overlay {
		cfg[k] = v
	}
	return nil
}

// SaveOverrides persists override values for a module into the key-value
// store, replacing any previous overrides.
func SaveOverrides(kv *kvstore.Store, moduleName string, overrides map[string]any) error {
	if kv == nil {
		return fmt.Errorf("no key-value store configured")
	}
	data, err := json.Marshal(overrides)
	if err != nil {
		return fmt.Errorf("encoding overrides for %s: %w", moduleName, err)
	}
	return kv.Put(kvBucket, moduleName, data)
}
