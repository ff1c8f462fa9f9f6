package manifest

import (
	"os"
	"path/filepath"
	"testing"
)

func writeManifest(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing manifest: %v", err)
	}
	return path
}

func TestParse_Basic(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		"name": "botpress-analytics",
		"version": "1.0.3",
		"main": "lib/index.js",
		"homepage": "https://example.com/analytics",
		"botpress": {"menuIcon": "timeline", "menuText": "Analytics"}
	}`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkg.Name != "botpress-analytics" {
		t.Errorf("Name = %q, want %q", pkg.Name, "botpress-analytics")
	}
	if pkg.Version != "1.0.3" {
		t.Errorf("Version = %q, want %q", pkg.Version, "1.0.3")
	}
	if !pkg.HasExtensionSection() {
		t.Error("HasExtensionSection should be true")
	}
	if got := pkg.Botpress["menuIcon"]; got != "timeline" {
		t.Errorf("menuIcon = %v, want timeline", got)
	}
}

func TestParse_NoExtensionSection(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{"name": "lodash", "version": "4.0.0"}`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if pkg.HasExtensionSection() {
		t.Error("HasExtensionSection should be false without a botpress section")
	}
}

func TestParse_Invalid(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{not json`)

	if _, err := Parse(path); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestParse_Missing(t *testing.T) {
	if _, err := Parse(filepath.Join(t.TempDir(), FileName)); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDependencyMap_Order(t *testing.T) {
	dir := t.TempDir()
	path := writeManifest(t, dir, `{
		"name": "bot",
		"dependencies": {
			"botpress-zeta": "1.0.0",
			"lodash": "4.0.0",
			"botpress-alpha": "2.0.0",
			"axios": "0.19.0"
		}
	}`)

	pkg, err := Parse(path)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}

	want := []string{"botpress-zeta", "lodash", "botpress-alpha", "axios"}
	got := pkg.Dependencies.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	if v, ok := pkg.Dependencies.Get("lodash"); !ok || v != "4.0.0" {
		t.Errorf("Get(lodash) = %q, %v", v, ok)
	}
}

func TestDependencyMap_Merge(t *testing.T) {
	var a, b DependencyMap
	a.put("botpress-abc", "1.0.0")
	a.put("lodash", "4.0.0")
	b.put("lodash", "9.9.9") // existing keys must not be overridden
	b.put("botpress-dev", "0.1.0")

	a.Merge(&b)

	if v, _ := a.Get("lodash"); v != "4.0.0" {
		t.Errorf("merge overrode existing key: lodash = %q", v)
	}
	want := []string{"botpress-abc", "lodash", "botpress-dev"}
	got := a.Names()
	if len(got) != len(want) {
		t.Fatalf("Names() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestAuthor_Forms(t *testing.T) {
	tests := []struct {
		name    string
		json    string
		display string
	}{
		{"string form", `{"name": "x", "author": "Jane <jane@example.com>"}`, "Jane <jane@example.com>"},
		{"object form", `{"name": "x", "author": {"name": "Jane", "email": "jane@example.com"}}`, "Jane"},
		{"absent", `{"name": "x"}`, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			path := writeManifest(t, dir, tt.json)
			pkg, err := Parse(path)
			if err != nil {
				t.Fatalf("Parse failed: %v", err)
			}
			if got := pkg.Author.DisplayName(); got != tt.display {
				t.Errorf("DisplayName() = %q, want %q", got, tt.display)
			}
		})
	}
}

func TestFindPackageRoot(t *testing.T) {
	root := t.TempDir()
	writeManifest(t, root, `{"name": "pkg"}`)
	nested := filepath.Join(root, "lib", "deep")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	got, err := FindPackageRoot(nested)
	if err != nil {
		t.Fatalf("FindPackageRoot failed: %v", err)
	}
	// Resolve symlinks so macOS /tmp vs /private/tmp doesn't flake.
	wantResolved, _ := filepath.EvalSymlinks(root)
	gotResolved, _ := filepath.EvalSymlinks(got)
	if gotResolved != wantResolved {
		t.Errorf("FindPackageRoot = %q, want %q", gotResolved, wantResolved)
	}
}

func TestIsExtensionName(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"botpress-analytics", true},
		{"botpress-", true},
		{"lodash", false},
		{"my-botpress-thing", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := IsExtensionName(tt.name); got != tt.want {
			t.Errorf("IsExtensionName(%q) = %v, want %v", tt.name, got, tt.want)
		}
	}
}
