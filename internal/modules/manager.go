// Package modules exposes the host-facing surface for extension modules:
// scanning the project, loading discovered modules, and listing the
// community catalog.
package modules

import (
	"context"

	"github.com/charmbracelet/log"

	"github.com/botpress-labs/botpress/internal/catalog"
	"github.com/botpress-labs/botpress/internal/configurator"
	"github.com/botpress-labs/botpress/internal/display"
	"github.com/botpress-labs/botpress/internal/extension"
	"github.com/botpress-labs/botpress/internal/kvstore"
	"github.com/botpress-labs/botpress/internal/loader"
	"github.com/botpress-labs/botpress/internal/scanner"
)

// Options configures a Manager.
type Options struct {
	ProjectRoot string
	DataDir     string
	BotFile     string
	CatalogURL  string
	HostVersion string

	// FallbackHero is the community-hero identity served when the
	// catalog is empty.
	FallbackHero string

	// Developing also scans development-only dependencies.
	Developing bool

	// Registry defaults to the process-wide table.
	Registry *extension.Registry

	// KV is optional; without it module configuration skips the
	// stored-overrides layer.
	KV *kvstore.Store

	Logger *log.Logger
}

// InstalledModule is a light record of a module present in the project.
type InstalledModule struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Root    string `json:"root"`
}

// Manager wires the scanner, loader, catalog cache, and display mapper.
type Manager struct {
	opts    Options
	scanner *scanner.Scanner
	loader  *loader.Loader
	cache   *catalog.Cache
	logger  *log.Logger
}

// New creates a Manager from opts.
func New(opts Options) *Manager {
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Registry == nil {
		opts.Registry = extension.Default()
	}

	s := scanner.New(opts.Logger)
	s.Developing = opts.Developing

	buildConfig := func(host *extension.HostContext, name string, defaults map[string]any) (extension.Config, error) {
		return configurator.Build(host.KV, name, host.BotFile, host.ProjectDir, defaults)
	}
	helpers := extension.NewHelpers(&extension.HostContext{
		ProjectDir: opts.ProjectRoot,
		DataDir:    opts.DataDir,
	}, opts.HostVersion)

	return &Manager{
		opts:    opts,
		scanner: s,
		loader:  loader.New(opts.Registry, buildConfig, helpers, opts.Logger),
		cache:   catalog.NewCache(opts.DataDir, opts.CatalogURL, opts.Logger),
		logger:  opts.Logger,
	}
}

// Scan discovers candidate extension modules in the project.
func (m *Manager) Scan() ([]scanner.Candidate, error) {
	return m.scanner.Scan(m.opts.ProjectRoot)
}

// Load loads the given candidates sequentially and returns the mapping of
// loaded extensions. See the loader package for failure semantics.
func (m *Manager) Load(ctx context.Context, candidates []scanner.Candidate) map[string]*loader.LoadedExtension {
	host := &extension.HostContext{
		ProjectDir: m.opts.ProjectRoot,
		DataDir:    m.opts.DataDir,
		BotFile:    m.opts.BotFile,
		KV:         m.opts.KV,
		Logger:     m.logger,
	}
	return m.loader.Load(ctx, candidates, host)
}

// ScanAndLoad runs the full discovery-and-load workflow.
func (m *Manager) ScanAndLoad(ctx context.Context) (map[string]*loader.LoadedExtension, error) {
	candidates, err := m.Scan()
	if err != nil {
		return nil, err
	}
	return m.Load(ctx, candidates), nil
}

// ListInstalled returns a light record per module present in the project.
func (m *Manager) ListInstalled() ([]InstalledModule, error) {
	candidates, err := m.Scan()
	if err != nil {
		return nil, err
	}
	out := make([]InstalledModule, 0, len(candidates))
	for _, c := range candidates {
		out = append(out, InstalledModule{
			Name:    c.Name,
			Version: c.Version,
			Root:    c.InstallRoot,
		})
	}
	return out, nil
}

// ListAllCommunityModules returns the community catalog, display-ready.
// The catalog cache decides whether a refresh is needed.
func (m *Manager) ListAllCommunityModules(ctx context.Context) ([]display.Module, error) {
	raw, err := m.cache.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	mapper := display.NewMapper(m.opts.ProjectRoot, m.logger)
	return mapper.MapForDisplay(raw), nil
}

// GetRandomCommunityHero samples one contributor from the community
// catalog, falling back to the configured identity on an empty catalog.
func (m *Manager) GetRandomCommunityHero(ctx context.Context) (display.Hero, error) {
	raw, err := m.cache.ListAll(ctx)
	if err != nil {
		return display.Hero{}, err
	}
	fallback := display.FallbackHero(m.opts.FallbackHero, m.opts.FallbackHero)
	return display.PickRandomContributor(raw, fallback), nil
}
