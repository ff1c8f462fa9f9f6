package manifest

import "testing"

func TestValidateExtensionSection_Valid(t *testing.T) {
	res, err := ValidateExtensionSection(map[string]any{
		"menuIcon":    "timeline",
		"menuText":    "Analytics",
		"noInterface": false,
		"liteModes":   []any{"fullscreen"},
	})
	if err != nil {
		t.Fatalf("ValidateExtensionSection failed: %v", err)
	}
	if !res.Valid {
		t.Errorf("expected valid, got issues: %+v", res.Issues)
	}
}

func TestValidateExtensionSection_WrongTypes(t *testing.T) {
	res, err := ValidateExtensionSection(map[string]any{
		"menuIcon":    42,
		"noInterface": "yes",
	})
	if err != nil {
		t.Fatalf("ValidateExtensionSection failed: %v", err)
	}
	if res.Valid {
		t.Fatal("expected invalid result")
	}
	if len(res.Issues) == 0 {
		t.Error("expected at least one issue")
	}
}

func TestValidateExtensionSection_UnknownKeysAllowed(t *testing.T) {
	res, err := ValidateExtensionSection(map[string]any{
		"customSetting": map[string]any{"nested": true},
	})
	if err != nil {
		t.Fatalf("ValidateExtensionSection failed: %v", err)
	}
	if !res.Valid {
		t.Errorf("unknown keys should be allowed, got issues: %+v", res.Issues)
	}
}
