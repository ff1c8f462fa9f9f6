package manifest

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/botpress-labs/botpress/internal/branding"
)

// FileName is the package manifest filename at a project or package root.
const FileName = "package.json"

// PackageJSON represents the fields of a package manifest this tool
// consumes. Everything else in the file is ignored.
type PackageJSON struct {
	Name            string         `json:"name"`
	Version         string         `json:"version"`
	Description     string         `json:"description,omitempty"`
	Main            string         `json:"main,omitempty"`
	Homepage        string         `json:"homepage,omitempty"`
	License         string         `json:"license,omitempty"`
	Author          Author         `json:"author,omitempty"`
	Dependencies    DependencyMap  `json:"dependencies,omitempty"`
	DevDependencies DependencyMap  `json:"devDependencies,omitempty"`
	Botpress        map[string]any `json:"botpress,omitempty"`
}

// HasExtensionSection reports whether the manifest carries the
// extension-declaration section that marks it as a genuine host extension.
func (p *PackageJSON) HasExtensionSection() bool {
	return p.Botpress != nil
}

// Author is a manifest author field, which may be either a plain string
// ("Jane <jane@example.com>") or a structured object ({"name": "Jane"}).
type Author struct {
	Name  string
	Email string
	URL   string
	Raw   string // set when the field was a plain string
}

// DisplayName prefers the structured name and falls back to the raw value.
func (a Author) DisplayName() string {
	if a.Name != "" {
		return a.Name
	}
	return a.Raw
}

// IsZero reports whether the author field was absent.
func (a Author) IsZero() bool {
	return a.Name == "" && a.Email == "" && a.URL == "" && a.Raw == ""
}

// UnmarshalJSON accepts both string and object author forms.
func (a *Author) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" {
		return nil
	}
	if data[0] == '"' {
		return json.Unmarshal(data, &a.Raw)
	}
	var obj struct {
		Name  string `json:"name"`
		Email string `json:"email"`
		URL   string `json:"url"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("parsing author field: %w", err)
	}
	a.Name = obj.Name
	a.Email = obj.Email
	a.URL = obj.URL
	return nil
}

// MarshalJSON writes the string form when only Raw is set, the object
// form otherwise.
func (a Author) MarshalJSON() ([]byte, error) {
	if a.Name == "" && a.Email == "" && a.URL == "" {
		return json.Marshal(a.Raw)
	}
	return json.Marshal(struct {
		Name  string `json:"name,omitempty"`
		Email string `json:"email,omitempty"`
		URL   string `json:"url,omitempty"`
	}{a.Name, a.Email, a.URL})
}

// DependencyMap is a name -> version-range mapping that preserves the
// manifest's key order. Go maps do not keep insertion order, and scan
// output must be deterministic, so the order is recorded at decode time.
type DependencyMap struct {
	keys   []string
	values map[string]string
}

// Names returns the dependency names in manifest order.
func (m *DependencyMap) Names() []string {
	return append([]string(nil), m.keys...)
}

// Get returns the declared version range for name.
func (m *DependencyMap) Get(name string) (string, bool) {
	v, ok := m.values[name]
	return v, ok
}

// Has reports whether name is declared.
func (m *DependencyMap) Has(name string) bool {
	_, ok := m.values[name]
	return ok
}

// Len returns the number of declared dependencies.
func (m *DependencyMap) Len() int {
	return len(m.keys)
}

// Merge adds entries from other that are not already present. Existing
// keys win; the union keeps this map's order first, then other's.
func (m *DependencyMap) Merge(other *DependencyMap) {
	if other == nil {
		return
	}
	for _, k := range other.keys {
		if m.Has(k) {
			continue
		}
		m.put(k, other.values[k])
	}
}

func (m *DependencyMap) put(name, version string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, ok := m.values[name]; !ok {
		m.keys = append(m.keys, name)
	}
	m.values[name] = version
}

// UnmarshalJSON decodes the object token-by-token to keep key order.
func (m *DependencyMap) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return fmt.Errorf("parsing dependency map: %w", err)
	}
	if tok == nil {
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("dependency map must be a JSON object, got %v", tok)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return fmt.Errorf("parsing dependency name: %w", err)
		}
		name, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("dependency name must be a string, got %v", keyTok)
		}
		var version string
		if err := dec.Decode(&version); err != nil {
			return fmt.Errorf("parsing version for %q: %w", name, err)
		}
		m.put(name, version)
	}

	if _, err := dec.Token(); err != nil {
		return fmt.Errorf("parsing dependency map: %w", err)
	}
	return nil
}

// MarshalJSON writes the entries in recorded order.
func (m DependencyMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(m.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// IsExtensionName reports whether a dependency name follows the host's
// extension naming convention (the "botpress-" prefix).
func IsExtensionName(name string) bool {
	return strings.HasPrefix(name, branding.ModulePrefix())
}
