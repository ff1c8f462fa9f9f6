// Package extension defines the capability surface a module exposes to the
// host and the registration table through which module entry points are
// resolved. Entry points are registered at startup; the host never loads
// code from paths computed at runtime.
package extension

import (
	"context"
	"path/filepath"

	"github.com/charmbracelet/log"

	"github.com/botpress-labs/botpress/internal/kvstore"
)

// Config is a module's materialized configuration.
type Config map[string]any

// Bundle is the capability object a module's entry point provides.
type Bundle interface {
	// Options returns the module's self-declared default configuration
	// options. May return nil for modules with no options.
	Options() map[string]any
}

// Initializer is implemented by bundles that need an initialization hook.
// Init runs once at load time, after configuration is built.
type Initializer interface {
	Init(ctx context.Context, host *HostContext, cfg Config, helpers Helpers) error
}

// HostContext is what the host exposes to modules during loading.
type HostContext struct {
	ProjectDir string
	DataDir    string
	BotFile    string // the host's bot-file descriptor
	KV         *kvstore.Store
	Logger     *log.Logger
}

// Helpers is the fixed utilities bundle handed to every init hook.
type Helpers struct {
	// HostVersion is the host application version.
	HostVersion string

	// ProjectPath joins path elements onto the project directory.
	ProjectPath func(elem ...string) string

	// DataPath joins path elements onto the host data directory.
	DataPath func(elem ...string) string
}

// NewHelpers builds the helpers bundle for a host context.
func NewHelpers(host *HostContext, hostVersion string) Helpers {
	return Helpers{
		HostVersion: hostVersion,
		ProjectPath: func(elem ...string) string {
			return filepath.Join(append([]string{host.ProjectDir}, elem...)...)
		},
		DataPath: func(elem ...string) string {
			return filepath.Join(append([]string{host.DataDir}, elem...)...)
		},
	}
}
