package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/botpress-labs/botpress/internal/branding"
	"github.com/spf13/viper"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Dir returns the path to the Botpress data directory (~/.botpress/).
// The modules cache and the key-value store live under this directory.
func Dir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", branding.HomeDir())
	}
	return filepath.Join(home, branding.HomeDir())
}

// FilePath returns the full path to the config file (~/.botpress/config.yaml).
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// EnsureDir creates the data directory if it does not exist.
func EnsureDir() error {
	dir := Dir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating data directory %s: %w", dir, err)
	}
	return nil
}

// Load initializes Viper to read from the config file and environment.
func Load() {
	viper.SetConfigFile(FilePath())
	viper.SetConfigType(fileType)
	viper.SetEnvPrefix(branding.EnvPrefix())
	viper.AutomaticEnv()

	// Ignore error if config file doesn't exist yet.
	_ = viper.ReadInConfig()
}

// Get returns a config value by key. Returns empty string if not set.
func Get(key string) string {
	return viper.GetString(key)
}

// GetBool returns a boolean config value by key.
func GetBool(key string) bool {
	return viper.GetBool(key)
}

// Set writes a config key-value pair and saves the config file.
func Set(key, value string) error {
	if err := EnsureDir(); err != nil {
		return err
	}

	viper.Set(key, value)

	configFile := FilePath()

	// Create the file if it doesn't exist.
	if _, err := os.Stat(configFile); os.IsNotExist(err) {
		f, err := os.Create(configFile)
		if err != nil {
			return fmt.Errorf("creating config file %s: %w", configFile, err)
		}
		f.Close()
	}

	if err := viper.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}

	return nil
}

// CatalogURL returns the community catalog endpoint, checking (in order):
// 1. <PREFIX>_CATALOG_URL env var
// 2. config key "catalog_url"
// 3. branding.CatalogURL()
func CatalogURL() string {
	if v := os.Getenv(branding.EnvVar("CATALOG_URL")); v != "" {
		return v
	}
	if v := Get("catalog_url"); v != "" {
		return v
	}
	return branding.CatalogURL()
}

// FallbackHero returns the community-hero fallback identity, checking the
// "community.fallback_hero" config key before the branding default.
func FallbackHero() string {
	if v := Get("community.fallback_hero"); v != "" {
		return v
	}
	return branding.FallbackHero()
}
