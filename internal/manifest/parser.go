package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Parse reads and decodes a package manifest file.
func Parse(path string) (*PackageJSON, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}

	var pkg PackageJSON
	if err := json.Unmarshal(data, &pkg); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &pkg, nil
}

// ParseDir reads the package manifest at dir/package.json.
func ParseDir(dir string) (*PackageJSON, error) {
	return Parse(filepath.Join(dir, FileName))
}

// Exists reports whether a package manifest is present in dir.
func Exists(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, FileName))
	return err == nil && !info.IsDir()
}

// FindPackageRoot walks up from start to the nearest ancestor directory
// containing a package manifest. start itself is checked first.
func FindPackageRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", start, err)
	}

	for {
		if Exists(dir) {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("no %s found in any ancestor of %s", FileName, start)
		}
		dir = parent
	}
}
