// Package config manages user-level settings stored at ~/.botpress/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the community catalog URL and the fallback hero identity.
package config
