package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	result := String("seed")

	if !strings.HasPrefix(result, "seed version ") {
		t.Errorf("String() = %q, should start with 'seed version'", result)
	}
	if !strings.Contains(result, Version) {
		t.Errorf("String() = %q, should contain version %q", result, Version)
	}
	if !strings.Contains(result, "built "+BuildTime) {
		t.Errorf("String() = %q, should contain build time", result)
	}
}

func TestDefaultValues(t *testing.T) {
	if Version != "dev" {
		t.Errorf("Version = %q, want 'dev'", Version)
	}
	if BuildTime != "unknown" {
		t.Errorf("BuildTime = %q, want 'unknown'", BuildTime)
	}
}
