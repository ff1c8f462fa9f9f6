package extension

import (
	"testing"
)

type nopBundle struct{}

func (nopBundle) Options() map[string]any { return nil }

func TestRegistry_RegisterResolve(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("botpress-abc", func() (Bundle, error) { return nopBundle{}, nil }); err != nil {
		t.Fatalf("Register failed: %v", err)
	}

	f, ok := r.Resolve("botpress-abc")
	if !ok {
		t.Fatal("Resolve should find registered module")
	}
	b, err := f()
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if b == nil {
		t.Error("factory returned nil bundle")
	}

	if _, ok := r.Resolve("botpress-missing"); ok {
		t.Error("Resolve should miss unregistered module")
	}
}

func TestRegistry_DuplicateRejected(t *testing.T) {
	r := NewRegistry()
	f := func() (Bundle, error) { return nopBundle{}, nil }
	if err := r.Register("botpress-abc", f); err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if err := r.Register("botpress-abc", f); err == nil {
		t.Error("expected error on duplicate registration")
	}
}

func TestRegistry_Validation(t *testing.T) {
	r := NewRegistry()
	if err := r.Register("", func() (Bundle, error) { return nopBundle{}, nil }); err == nil {
		t.Error("expected error for empty name")
	}
	if err := r.Register("botpress-abc", nil); err == nil {
		t.Error("expected error for nil factory")
	}
}

func TestRegistry_Names(t *testing.T) {
	r := NewRegistry()
	f := func() (Bundle, error) { return nopBundle{}, nil }
	for _, name := range []string{"botpress-z", "botpress-a", "botpress-m"} {
		if err := r.Register(name, f); err != nil {
			t.Fatalf("Register failed: %v", err)
		}
	}
	names := r.Names()
	want := []string{"botpress-a", "botpress-m", "botpress-z"}
	if len(names) != len(want) {
		t.Fatalf("Names() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("Names()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestNewHelpers_Paths(t *testing.T) {
	host := &HostContext{ProjectDir: "/proj", DataDir: "/data"}
	h := NewHelpers(host, "1.2.3")

	if h.HostVersion != "1.2.3" {
		t.Errorf("HostVersion = %q", h.HostVersion)
	}
	if got := h.ProjectPath("config", "x.yaml"); got == "" || got == "config/x.yaml" {
		t.Errorf("ProjectPath should be rooted at the project dir, got %q", got)
	}
	if got := h.DataPath("modules-cache.json"); got == "" || got == "modules-cache.json" {
		t.Errorf("DataPath should be rooted at the data dir, got %q", got)
	}
}
