// Package loader turns scanned candidate descriptors into loaded
// extensions. Candidates are processed strictly one at a time in input
// order: modules may register shared capabilities consumed by modules
// loaded after them, so parallel loading is not allowed.
package loader

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/botpress-labs/botpress/internal/extension"
	"github.com/botpress-labs/botpress/internal/scanner"
)

// LoadedExtension is one successfully loaded module. Loaded extensions
// live for the rest of the process; there is no unload.
type LoadedExtension struct {
	Name          string
	Version       string
	Handlers      extension.Bundle
	Configuration extension.Config
}

// ConfigFunc builds a module's configuration. The loader treats failures
// as non-fatal: the module stays loaded with nil configuration.
type ConfigFunc func(host *extension.HostContext, moduleName string, defaults map[string]any) (extension.Config, error)

// Loader resolves candidates against the extension registry and runs
// their initialization hooks.
type Loader struct {
	registry    *extension.Registry
	buildConfig ConfigFunc
	helpers     extension.Helpers
	logger      *log.Logger
}

// New creates a Loader. A nil logger falls back to log.Default().
func New(registry *extension.Registry, buildConfig ConfigFunc, helpers extension.Helpers, logger *log.Logger) *Loader {
	if logger == nil {
		logger = log.Default()
	}
	return &Loader{
		registry:    registry,
		buildConfig: buildConfig,
		helpers:     helpers,
		logger:      logger,
	}
}

// Load processes candidates in order and returns the mapping of loaded
// extensions by name. A single module's failure never aborts the batch:
//
//   - unresolvable or failing entry point: error log, module skipped
//   - nil capability bundle: warning, module skipped
//   - configuration failure: error log, module kept with nil configuration
//   - init hook failure: warning, module kept
func (l *Loader) Load(ctx context.Context, candidates []scanner.Candidate, host *extension.HostContext) map[string]*LoadedExtension {
	loaded := make(map[string]*LoadedExtension)
	count := 0

	for _, c := range candidates {
		bundle, ok := l.resolve(c)
		if !ok {
			continue
		}

		cfg := l.configure(host, c.Name, bundle)

		if init, ok := bundle.(extension.Initializer); ok {
			if err := init.Init(ctx, host, cfg, l.helpers); err != nil {
				l.logger.Warn("module initialization failed", "module", c.Name, "err", err)
			}
		}

		loaded[c.Name] = &LoadedExtension{
			Name:          c.Name,
			Version:       c.Version,
			Handlers:      bundle,
			Configuration: cfg,
		}
		count++
	}

	if count > 0 {
		l.logger.Info("loaded modules", "count", count)
	}
	return loaded
}

// resolve looks up and invokes the candidate's entry point factory.
func (l *Loader) resolve(c scanner.Candidate) (extension.Bundle, bool) {
	factory, ok := l.registry.Resolve(c.Name)
	if !ok {
		l.logger.Error("no entry point registered for module", "module", c.Name)
		return nil, false
	}

	bundle, err := factory()
	if err != nil {
		l.logger.Error("failed to load module entry point", "module", c.Name, "err", err)
		return nil, false
	}
	if bundle == nil {
		l.logger.Warn("module entry point is not a capability bundle, ignoring", "module", c.Name)
		return nil, false
	}
	return bundle, true
}

// configure builds the module's configuration from its declared defaults.
// On failure the module proceeds with nil configuration.
func (l *Loader) configure(host *extension.HostContext, name string, bundle extension.Bundle) extension.Config {
	if l.buildConfig == nil {
		return nil
	}
	defaults := bundle.Options()
	if defaults == nil {
		defaults = map[string]any{}
	}
	cfg, err := l.buildConfig(host, name, defaults)
	if err != nil {
		l.logger.Error("failed to build module configuration", "module", name, "err", err)
		return nil
	}
	return cfg
}
