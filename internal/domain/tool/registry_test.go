package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/audit"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

type noopTool struct{}

func (noopTool) Execute(_ context.Context, _ *payroll.Dataset, _ Request) (json.RawMessage, error) {
	return json.RawMessage(`{"ok":true}`), nil
}

func (noopTool) Describe() Descriptor {
	return Descriptor{Type: "function", Function: Function{Name: "noop", Parameters: json.RawMessage(`{}`)}}
}

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	r := NewRegistry()
	if err := r.Register("noop", noopTool{}); err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if _, err := r.Get("noop"); err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if err := r.Register("noop", noopTool{}); !errors.Is(err, ErrToolAlreadyRegistered) {
		t.Fatalf("expected ErrToolAlreadyRegistered, got: %v", err)
	}
	if _, err := r.Get("missing"); !errors.Is(err, ErrToolNotRegistered) {
		t.Fatalf("expected ErrToolNotRegistered, got: %v", err)
	}
	if err := r.Register("  ", noopTool{}); !errors.Is(err, ErrToolNotRegistered) {
		t.Fatalf("expected ErrToolNotRegistered for blank name, got: %v", err)
	}
}

func TestValidateParams_MinimalSchema(t *testing.T) {
	t.Parallel()

	schema := json.RawMessage(`{"type":"object","required":["title"],"properties":{"title":{"type":"string"}},"additionalProperties":false}`)

	if err := ValidateParams(schema, json.RawMessage(`{"title":"x"}`)); err != nil {
		t.Fatalf("ValidateParams() error = %v", err)
	}
	if err := ValidateParams(schema, json.RawMessage(`{}`)); !errors.Is(err, ErrToolValidationFailed) {
		t.Fatalf("expected missing required field error, got: %v", err)
	}
	if err := ValidateParams(schema, json.RawMessage(`{"title":"x","extra":1}`)); !errors.Is(err, ErrToolValidationFailed) {
		t.Fatalf("expected unknown field error, got: %v", err)
	}
	if err := ValidateParams(schema, json.RawMessage(`{"title":`)); !errors.Is(err, ErrToolValidationFailed) {
		t.Fatalf("expected invalid json error, got: %v", err)
	}
}

func TestCatalogs_FiveInterfacesOfTwelve(t *testing.T) {
	t.Parallel()

	catalogs := Catalogs()
	if len(catalogs) != 5 {
		t.Fatalf("len(Catalogs()) = %d, want 5", len(catalogs))
	}

	seen := map[string]string{}
	for _, c := range catalogs {
		if len(c.Tools) != 12 {
			t.Fatalf("%s has %d tools, want 12", c.Interface, len(c.Tools))
		}
		for _, def := range c.Tools {
			if prev, dup := seen[def.Name]; dup {
				t.Fatalf("tool %s appears in %s and %s", def.Name, prev, c.Interface)
			}
			seen[def.Name] = c.Interface
			if def.Description == "" {
				t.Fatalf("tool %s has no description", def.Name)
			}
		}

		registry, err := NewCatalogRegistry(c, audit.NewWriter())
		if err != nil {
			t.Fatalf("NewCatalogRegistry(%s) error = %v", c.Interface, err)
		}
		if names := registry.Names(); len(names) != 12 || names[0] != c.Tools[0].Name {
			t.Fatalf("registry names = %v", names)
		}
	}
}
