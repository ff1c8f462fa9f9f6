// Package cli implements the botpress command-line interface: module
// discovery and loading, community catalog browsing, and user settings.
// Commands support --verbose (-v) for debug-level logging; the logger is
// constructed once and injected into every component.
package cli
