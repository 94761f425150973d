package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

var (
	ErrToolAlreadyRegistered = errors.New("tool already registered")
	ErrToolNotRegistered     = errors.New("tool not registered")
	ErrToolValidationFailed  = errors.New("tool params validation failed")
)

// Registry maps tool names to implementations, keeping registration order.
type Registry struct {
	tools map[string]Tool
	order []string
}

func NewRegistry() *Registry {
	return &Registry{tools: make(map[string]Tool)}
}

func (r *Registry) Register(name string, t Tool) error {
	name = strings.TrimSpace(name)
	if name == "" || t == nil {
		return ErrToolNotRegistered
	}
	if _, exists := r.tools[name]; exists {
		return ErrToolAlreadyRegistered
	}
	r.tools[name] = t
	r.order = append(r.order, name)
	return nil
}

func (r *Registry) Get(name string) (Tool, error) {
	t, ok := r.tools[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrToolNotRegistered, name)
	}
	return t, nil
}

// Names lists tools in registration order.
func (r *Registry) Names() []string {
	return append([]string(nil), r.order...)
}

// Descriptors lists tool descriptors in registration order.
func (r *Registry) Descriptors() []Descriptor {
	out := make([]Descriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.tools[name].Describe())
	}
	return out
}

// Result is the outcome of Invoke. Output is always a JSON object; Halted
// is set when it is a halt payload.
type Result struct {
	Output json.RawMessage
	Halted bool
}

// Invoke parses args, checks them against the tool's parameter schema and
// runs it. Halts come back as a Result, not an error.
func Invoke(ctx context.Context, t Tool, store *payroll.Dataset, args json.RawMessage) (Result, error) {
	req, err := ParseRequest(args)
	if err != nil {
		return Result{}, err
	}
	if err := ValidateParams(t.Describe().Function.Parameters, req.Raw); err != nil {
		return Result{}, err
	}

	out, err := t.Execute(ctx, store, req)
	var halt *HaltError
	if errors.As(err, &halt) {
		return Result{Output: halt.Payload(), Halted: true}, nil
	}
	if err != nil {
		return Result{}, err
	}
	return Result{Output: out}, nil
}

// ValidateParams applies the minimal schema subset we rely on: required
// keys and additionalProperties.
func ValidateParams(schemaRaw, params json.RawMessage) error {
	if len(params) == 0 {
		params = json.RawMessage(`{}`)
	}

	var input map[string]any
	if err := json.Unmarshal(params, &input); err != nil {
		return fmt.Errorf("%w: params must be a json object", ErrToolValidationFailed)
	}

	var schema map[string]any
	if err := json.Unmarshal(schemaRaw, &schema); err != nil {
		return fmt.Errorf("%w: invalid schema", ErrToolValidationFailed)
	}

	return validateAgainstMinimalSchema(input, schema)
}

func validateAgainstMinimalSchema(input, schema map[string]any) error {
	requiredKeys := extractStringSlice(schema["required"])
	for _, key := range requiredKeys {
		if _, ok := input[key]; !ok {
			return fmt.Errorf("%w: missing required field %q", ErrToolValidationFailed, key)
		}
	}

	allowAdditional := true
	if v, ok := schema["additionalProperties"].(bool); ok {
		allowAdditional = v
	}

	allowedProps := map[string]struct{}{}
	if props, ok := schema["properties"].(map[string]any); ok {
		for key := range props {
			allowedProps[key] = struct{}{}
		}
	}

	if !allowAdditional {
		for key := range input {
			if _, ok := allowedProps[key]; !ok {
				return fmt.Errorf("%w: unknown field %q", ErrToolValidationFailed, key)
			}
		}
	}

	return nil
}

func extractStringSlice(v any) []string {
	arr, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(arr))
	for _, item := range arr {
		s, ok := item.(string)
		if ok && strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// marshalNoEscape encodes v without HTML escaping and without the trailing
// newline json.Encoder adds.
func marshalNoEscape(v any) (json.RawMessage, error) {
	buf := &bytes.Buffer{}
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
