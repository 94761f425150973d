package tool

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/audit"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

// StubTool validates the acting user, writes one audit row and echoes its
// arguments. It performs no domain mutation.
type StubTool struct {
	def   Definition
	audit *audit.Writer
}

func NewStubTool(def Definition, w *audit.Writer) *StubTool {
	return &StubTool{def: def, audit: w}
}

type stubResult struct {
	Tool     string          `json:"tool"`
	OK       bool            `json:"ok"`
	Received json.RawMessage `json:"received"`
}

func (s *StubTool) Describe() Descriptor {
	return Descriptor{
		Type: "function",
		Function: Function{
			Name:        s.def.Name,
			Description: s.def.Description,
			Parameters:  json.RawMessage(stubParameters),
		},
	}
}

func (s *StubTool) Execute(ctx context.Context, store *payroll.Dataset, req Request) (json.RawMessage, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := req.checkActingUser(store); err != nil {
		return nil, err
	}

	received := req.Raw
	if len(received) == 0 {
		received = json.RawMessage(`{}`)
	}
	out, err := marshalNoEscape(stubResult{Tool: s.def.Name, OK: true, Received: received})
	if err != nil {
		return nil, err
	}

	if _, err := s.audit.Append(store, audit.ToolRead(req.ActingUserID, s.def.Name)); err != nil {
		return nil, fmt.Errorf("%s: write audit: %w", s.def.Name, err)
	}
	return out, nil
}
