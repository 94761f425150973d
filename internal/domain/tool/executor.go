package tool

import (
	"context"
	"encoding/json"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

// Tool defines the runtime contract for environment tools.
// Execute may mutate store; callers serialise access to it.
type Tool interface {
	Execute(ctx context.Context, store *payroll.Dataset, req Request) (json.RawMessage, error)
	Describe() Descriptor
}

// Descriptor is the function-calling schema handed to agents.
type Descriptor struct {
	Type     string   `json:"type"`
	Function Function `json:"function"`
}

type Function struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Parameters  json.RawMessage `json:"parameters"`
}

// stubParameters is shared by every stub tool.
const stubParameters = `{"type":"object","properties":{"acting_user_id":{"type":"string","description":"User performing the action (for authorization & audit)"},"payload":{"type":"object","description":"Tool-specific payload (fields vary by tool)"}},"required":[]}`

// HaltError ends a tool call with a structured halt payload instead of a
// failure. The harness keeps the episode running.
type HaltError struct {
	Reason string
}

func (e *HaltError) Error() string { return "Halt: " + e.Reason }

// Payload renders the halt as the JSON object returned to the caller.
func (e *HaltError) Payload() json.RawMessage {
	out, _ := marshalNoEscape(map[string]string{"error": e.Error()})
	return out
}
