// Package scanner discovers candidate extension modules by reading the
// host project's package manifest and resolving each matching dependency's
// installed package under node_modules.
package scanner

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/charmbracelet/log"

	"github.com/botpress-labs/botpress/internal/manifest"
)

// nodeModulesDir is where installed dependency packages live, relative to
// the project root.
const nodeModulesDir = "node_modules"

// defaultEntryFile is assumed when a package manifest has no main field.
const defaultEntryFile = "index.js"

// Candidate describes a discovered extension module. It is immutable once
// produced; the loader consumes it as-is.
type Candidate struct {
	Name             string
	InstallRoot      string         // package root directory on disk
	Homepage         string         // optional
	DeclaredSettings map[string]any // the sub-manifest's extension section, opaque
	Version          string         // semantic version from the sub-manifest
	EntryPath        string         // the package's entry artifact
}

// Scanner scans a host project for installed extension modules.
type Scanner struct {
	logger *log.Logger

	// Developing also merges development-only dependencies into the
	// candidate set. Production entries win on name conflicts.
	Developing bool
}

// New creates a Scanner. A nil logger falls back to log.Default().
func New(logger *log.Logger) *Scanner {
	if logger == nil {
		logger = log.Default()
	}
	return &Scanner{logger: logger}
}

// Scan reads the project manifest at projectRoot and returns one Candidate
// per dependency that follows the extension naming convention, resolves on
// disk, and declares a genuine extension section in its own manifest.
// Candidates preserve the manifest's dependency order.
//
// A missing project manifest is not an error: it logs a warning and yields
// nothing.
func (s *Scanner) Scan(projectRoot string) ([]Candidate, error) {
	if !manifest.Exists(projectRoot) {
		s.logger.Warn("no package manifest found, skipping module scan", "dir", projectRoot)
		return nil, nil
	}

	pkg, err := manifest.ParseDir(projectRoot)
	if err != nil {
		return nil, err
	}

	deps := pkg.Dependencies
	if s.Developing {
		deps.Merge(&pkg.DevDependencies)
	}

	var candidates []Candidate
	for _, name := range deps.Names() {
		if !manifest.IsExtensionName(name) {
			continue
		}
		c, ok := s.resolve(projectRoot, name)
		if !ok {
			continue
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// resolve locates an installed dependency and builds its Candidate.
// Any resolution failure skips the dependency without error.
func (s *Scanner) resolve(projectRoot, name string) (Candidate, bool) {
	pkgDir := filepath.Join(projectRoot, nodeModulesDir, name)
	if !manifest.Exists(pkgDir) {
		s.logger.Debug("module not installed, skipping", "module", name)
		return Candidate{}, false
	}

	sub, err := manifest.ParseDir(pkgDir)
	if err != nil {
		s.logger.Debug("unreadable module manifest, skipping", "module", name, "err", err)
		return Candidate{}, false
	}

	entryPath := filepath.Join(pkgDir, entryFile(sub))
	if _, err := os.Stat(entryPath); err != nil {
		s.logger.Debug("module entry point missing, skipping", "module", name, "entry", entryPath)
		return Candidate{}, false
	}

	// The entry file may live in a subdirectory; the enclosing package
	// root is the nearest ancestor carrying a manifest.
	installRoot, err := manifest.FindPackageRoot(filepath.Dir(entryPath))
	if err != nil {
		s.logger.Debug("no package root for entry point, skipping", "module", name)
		return Candidate{}, false
	}

	root, err := manifest.ParseDir(installRoot)
	if err != nil {
		s.logger.Debug("unreadable package root manifest, skipping", "module", name, "err", err)
		return Candidate{}, false
	}

	// Matching the naming convention is not enough: only packages that
	// declare the extension section are genuine host extensions.
	if !root.HasExtensionSection() {
		s.logger.Debug("dependency matches naming convention but declares no extension section, skipping", "module", name)
		return Candidate{}, false
	}

	s.validateSection(name, root.Botpress)

	return Candidate{
		Name:             name,
		InstallRoot:      installRoot,
		Homepage:         root.Homepage,
		DeclaredSettings: root.Botpress,
		Version:          normalizeVersion(root.Version),
		EntryPath:        entryPath,
	}, true
}

// validateSection runs advisory schema validation over the extension
// section. Issues are logged, never fatal: the presence of the section is
// the contract.
func (s *Scanner) validateSection(name string, section map[string]any) {
	res, err := manifest.ValidateExtensionSection(section)
	if err != nil {
		s.logger.Debug("extension section validation unavailable", "module", name, "err", err)
		return
	}
	for _, issue := range res.Issues {
		s.logger.Warn("extension declaration issue", "module", name, "path", issue.Path, "issue", issue.Message)
	}
}

// entryFile returns the manifest's main file, defaulting to index.js.
func entryFile(pkg *manifest.PackageJSON) string {
	if pkg.Main != "" {
		return filepath.FromSlash(pkg.Main)
	}
	return defaultEntryFile
}

// normalizeVersion strips a leading "v" and reformats the version through
// semver when it parses; unparseable versions pass through unchanged.
func normalizeVersion(version string) string {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return version
	}
	return v.String()
}
