// Package branding provides compile-time identity values for the CLI.
//
// Forkers edit branding.yaml in this package; Go's //go:embed bakes it
// into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName      string `yaml:"cli_name"`
	DisplayName  string `yaml:"display_name"`
	Description  string `yaml:"description"`
	HomeDir      string `yaml:"home_dir"`
	EnvPrefix    string `yaml:"env_prefix"`
	GoModule     string `yaml:"go_module"`
	ModulePrefix string `yaml:"module_prefix"`
	CatalogURL   string `yaml:"catalog_url"`
	FallbackHero string `yaml:"fallback_hero"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:      "botpress",
			DisplayName:  "Botpress",
			Description:  "Modular bot platform with community-published extension modules",
			HomeDir:      ".botpress",
			EnvPrefix:    "BOTPRESS",
			GoModule:     "github.com/botpress-labs/botpress",
			ModulePrefix: "botpress-",
			CatalogURL:   "https://modules.botpress.io/all-modules.json",
			FallbackHero: "botpress",
		}
		// Overlay with embedded YAML values.
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "botpress").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the per-user data directory name (e.g., ".botpress").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "BOTPRESS").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ModulePrefix returns the package naming convention that marks a
// dependency as a host extension module (e.g., "botpress-").
func ModulePrefix() string { load(); return defaults.ModulePrefix }

// CatalogURL returns the community module catalog endpoint.
func CatalogURL() string { load(); return defaults.CatalogURL }

// FallbackHero returns the default community-hero identity used when the
// catalog is empty.
func FallbackHero() string { load(); return defaults.FallbackHero }

// EnvVar builds a fully-prefixed environment variable name.
func EnvVar(suffix string) string {
	return EnvPrefix() + "_" + strings.ToUpper(suffix)
}
