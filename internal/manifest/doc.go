// Package manifest parses package.json manifests: the host project's
// dependency declarations and each extension package's sub-manifest with
// its botpress declaration section.
package manifest
