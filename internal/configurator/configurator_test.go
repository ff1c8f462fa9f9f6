package configurator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/botpress-labs/botpress/internal/kvstore"
)

func TestBuild_DefaultsOnly(t *testing.T) {
	cfg, err := Build(nil, "botpress-abc", "bot.yaml", t.TempDir(), map[string]any{
		"enabled": true,
		"limit":   10,
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg["enabled"] != true {
		t.Errorf("enabled = %v", cfg["enabled"])
	}
	if cfg["limit"] != 10 {
		t.Errorf("limit = %v", cfg["limit"])
	}
	if cfg["botfile"] != "bot.yaml" {
		t.Errorf("botfile = %v", cfg["botfile"])
	}
}

func TestBuild_FileOverlay(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "config")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := "limit: 25\nextra: hello\n"
	if err := os.WriteFile(filepath.Join(dir, "botpress-abc.yaml"), []byte(content), 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	cfg, err := Build(nil, "botpress-abc", "", root, map[string]any{"limit": 10})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if cfg["limit"] != 25 {
		t.Errorf("file overlay should win over defaults: limit = %v", cfg["limit"])
	}
	if cfg["extra"] != "hello" {
		t.Errorf("extra = %v", cfg["extra"])
	}
}

func TestBuild_FileOverlayInvalid(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "config")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "botpress-abc.yaml"), []byte("limit: [unclosed"), 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	if _, err := Build(nil, "botpress-abc", "", root, nil); err == nil {
		t.Error("expected error for unparseable overlay file")
	}
}

func TestBuild_StoreOverrides(t *testing.T) {
	kv, err := kvstore.Open(filepath.Join(t.TempDir(), "kv"))
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	defer kv.Close()

	if err := SaveOverrides(kv, "botpress-abc", map[string]any{"limit": 99}); err != nil {
		t.Fatalf("SaveOverrides failed: %v", err)
	}

	cfg, err := Build(kv, "botpress-abc", "", t.TempDir(), map[string]any{"limit": 10, "enabled": true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	// JSON round-trips numbers as float64.
	if cfg["limit"] != float64(99) {
		t.Errorf("store override should win: limit = %v (%T)", cfg["limit"], cfg["limit"])
	}
	if cfg["enabled"] != true {
		t.Errorf("untouched default lost: enabled = %v", cfg["enabled"])
	}
}

func TestBuild_DoesNotMutateDefaults(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "config")
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "botpress-abc.yaml"), []byte("limit: 25\n"), 0644); err != nil {
		t.Fatalf("writing overlay: %v", err)
	}

	defaults := map[string]any{"limit": 10}
	if _, err := Build(nil, "botpress-abc", "", root, defaults); err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if defaults["limit"] != 10 {
		t.Errorf("Build mutated the defaults map: %v", defaults)
	}
}
