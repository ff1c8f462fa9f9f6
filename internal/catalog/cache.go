// Package catalog maintains a locally cached copy of the community module
// catalog, refreshed lazily from the remote registry when stale.
//
// The cache file has no concurrent-writer protection: the design assumes a
// single logical owner process per data directory. Two processes sharing
// one data directory can interleave read-modify-write cycles; the worst
// outcome is a lost refresh, never a torn file, since writes go through a
// full rewrite.
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
)

const (
	// cacheFileName is the cache document under the data directory.
	cacheFileName = "modules-cache.json"

	// DefaultMaxAge is the freshness window after which the cached
	// catalog is considered stale.
	DefaultMaxAge = 30 * time.Minute

	// fetchTimeout bounds the single best-effort catalog fetch. There is
	// no retry and no backoff.
	fetchTimeout = 5 * time.Second
)

// Cache serves the community catalog from a local JSON cache file,
// refreshing it from the remote registry when the freshness window has
// passed. Safe to call repeatedly; every refresh is triggered lazily.
type Cache struct {
	dataDir string
	url     string
	logger  *log.Logger

	maxAge time.Duration
	client *http.Client
	now    func() time.Time
}

// NewCache creates a Cache over dataDir fetching from url. A nil logger
// falls back to log.Default().
func NewCache(dataDir, url string, logger *log.Logger) *Cache {
	if logger == nil {
		logger = log.Default()
	}
	return &Cache{
		dataDir: dataDir,
		url:     url,
		logger:  logger,
		maxAge:  DefaultMaxAge,
		client:  &http.Client{Timeout: fetchTimeout},
		now:     time.Now,
	}
}

// FilePath returns the cache file location.
func (c *Cache) FilePath() string {
	return filepath.Join(c.dataDir, cacheFileName)
}

// ListAll returns the current catalog entries, consulting the cache first.
//
// Fresh cache: the cached modules are returned with no network call.
// Stale cache (or never refreshed): one fetch is attempted. A non-empty
// result overwrites the cache with a fresh timestamp. An empty result or
// a failed fetch falls back to the existing cached modules; an empty
// result over an empty cache persists an empty-but-timestamped document.
func (c *Cache) ListAll(ctx context.Context) ([]RawModule, error) {
	cf, err := c.load()
	if err != nil {
		return nil, err
	}

	if cf.Updated != nil && c.now().Sub(*cf.Updated) <= c.maxAge {
		return cf.Modules, nil
	}

	fetched, err := c.fetch(ctx)
	if err != nil {
		c.logger.Error("fetching community modules failed, serving cached catalog", "err", err)
		return cf.Modules, nil
	}

	if len(fetched) == 0 && len(cf.Modules) > 0 {
		c.logger.Debug("catalog fetch returned no data, serving cached catalog")
		return cf.Modules, nil
	}

	now := c.now()
	if err := c.save(&CacheFile{Modules: fetched, Updated: &now}); err != nil {
		c.logger.Error("writing modules cache failed", "err", err)
	}
	return fetched, nil
}

// load reads the cache file, bootstrapping an empty never-refreshed
// document when the file does not exist yet.
func (c *Cache) load() (*CacheFile, error) {
	path := c.FilePath()

	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		cf := &CacheFile{Modules: []RawModule{}}
		if err := c.save(cf); err != nil {
			return nil, err
		}
		return cf, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading modules cache: %w", err)
	}

	var cf CacheFile
	if err := json.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("parsing modules cache: %w", err)
	}
	return &cf, nil
}

// save writes the cache document, creating the data directory on demand.
func (c *Cache) save(cf *CacheFile) error {
	if err := os.MkdirAll(c.dataDir, 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}

	data, err := json.MarshalIndent(cf, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling modules cache: %w", err)
	}
	if err := os.WriteFile(c.FilePath(), data, 0644); err != nil {
		return fmt.Errorf("writing modules cache: %w", err)
	}
	return nil
}

// fetch performs the single best-effort catalog request.
func (c *Cache) fetch(ctx context.Context) ([]RawModule, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching catalog: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog returned status %d", resp.StatusCode)
	}

	var modules []RawModule
	if err := json.NewDecoder(resp.Body).Decode(&modules); err != nil {
		return nil, fmt.Errorf("parsing catalog response: %w", err)
	}
	return modules, nil
}
