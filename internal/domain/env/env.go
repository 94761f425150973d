// Package env is the payroll environment: the shared dataset, the five
// interface tool registries and the policy text, behind one lock.
package env

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/audit"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/policy"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/tool"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/eventbus"
)

// TopicToolInvoked carries an InvocationEvent for every Invoke call.
const TopicToolInvoked = "tool.invoked"

var ErrUnknownInterface = errors.New("unknown interface")

// InvocationEvent describes one finished tool call.
type InvocationEvent struct {
	SessionID string
	Interface string
	Tool      string
	Outcome   audit.Outcome
	AuditID   string // empty unless a row was written
	Duration  time.Duration
}

// InterfaceInfo summarises one interface catalog.
type InterfaceInfo struct {
	Name      string `json:"name"`
	Title     string `json:"title"`
	ToolCount int    `json:"tool_count"`
}

type Options struct {
	Bus       eventbus.EventBus // optional
	Logger    *zerolog.Logger   // optional; nop when nil
	SessionID string            // generated when empty
}

// Environment serialises every tool call with a mutex: tools read and
// append to the dataset, and transports call in concurrently.
type Environment struct {
	mu sync.Mutex

	data       *payroll.Dataset
	policy     *policy.Policy
	catalogs   []tool.Catalog
	interfaces map[string]*tool.Registry

	bus       eventbus.EventBus
	log       zerolog.Logger
	sessionID string
}

// New builds an environment over ds. ds is owned by the environment from
// here on.
func New(ds *payroll.Dataset, pol *policy.Policy, opts Options) (*Environment, error) {
	if ds == nil {
		return nil, errors.New("env: dataset is required")
	}
	if pol == nil {
		return nil, errors.New("env: policy is required")
	}

	e := &Environment{
		data:       ds,
		policy:     pol,
		catalogs:   tool.Catalogs(),
		interfaces: make(map[string]*tool.Registry),
		bus:        opts.Bus,
		log:        zerolog.Nop(),
		sessionID:  opts.SessionID,
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	if e.sessionID == "" {
		e.sessionID = uuid.NewString()
	}

	writer := audit.NewWriter()
	for _, c := range e.catalogs {
		registry, err := tool.NewCatalogRegistry(c, writer)
		if err != nil {
			return nil, fmt.Errorf("env: %s: %w", c.Interface, err)
		}
		e.interfaces[c.Interface] = registry
	}
	return e, nil
}

func (e *Environment) SessionID() string { return e.sessionID }

// Interfaces lists the catalogs in interface order.
func (e *Environment) Interfaces() []InterfaceInfo {
	out := make([]InterfaceInfo, 0, len(e.catalogs))
	for _, c := range e.catalogs {
		out = append(out, InterfaceInfo{Name: c.Interface, Title: c.Title, ToolCount: len(c.Tools)})
	}
	return out
}

// Tools returns the descriptors of one interface.
func (e *Environment) Tools(iface string) ([]tool.Descriptor, error) {
	registry, err := e.registry(iface)
	if err != nil {
		return nil, err
	}
	return registry.Descriptors(), nil
}

// Invoke runs a tool and returns its JSON string result. Halts are results,
// not errors.
func (e *Environment) Invoke(ctx context.Context, iface, name string, args json.RawMessage) (string, error) {
	registry, err := e.registry(iface)
	if err != nil {
		return "", err
	}
	t, err := registry.Get(name)
	if err != nil {
		return "", err
	}

	e.mu.Lock()
	start := time.Now()
	before := e.data.AuditLogs.Len()
	res, err := tool.Invoke(ctx, t, e.data, args)
	var auditID string
	if ids := e.data.AuditLogs.IDs(); len(ids) > before {
		auditID = ids[len(ids)-1]
	}
	elapsed := time.Since(start)
	e.mu.Unlock()

	evt := InvocationEvent{
		SessionID: e.sessionID,
		Interface: iface,
		Tool:      name,
		Outcome:   audit.OutcomeSuccess,
		AuditID:   auditID,
		Duration:  elapsed,
	}
	switch {
	case err != nil:
		evt.Outcome = audit.OutcomeError
		e.log.Warn().Err(err).Str("interface", iface).Str("tool", name).Msg("tool invocation failed")
	case res.Halted:
		evt.Outcome = audit.OutcomeHalted
		e.log.Info().Str("interface", iface).Str("tool", name).RawJSON("result", res.Output).Msg("tool halted")
	default:
		e.log.Debug().Str("interface", iface).Str("tool", name).Str("audit_id", auditID).Msg("tool invoked")
	}
	e.publish(evt)

	if err != nil {
		return "", err
	}
	return string(res.Output), nil
}

// Rules returns the business rule sections in order.
func (e *Environment) Rules() []policy.Section { return e.policy.Rules() }

// Wiki returns the HR policy text.
func (e *Environment) Wiki() string { return e.policy.Wiki() }

// Dataset returns the live dataset. Use View for access concurrent with
// Invoke.
func (e *Environment) Dataset() *payroll.Dataset { return e.data }

// View runs fn with the dataset while holding the invocation lock.
func (e *Environment) View(fn func(ds *payroll.Dataset) error) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fn(e.data)
}

// EncodeTable encodes one table under the invocation lock.
func (e *Environment) EncodeTable(name string) ([]byte, error) {
	var out []byte
	err := e.View(func(ds *payroll.Dataset) error {
		var encErr error
		out, encErr = ds.EncodeTable(name)
		return encErr
	})
	return out, err
}

// Counts returns row counts per table under the invocation lock.
func (e *Environment) Counts() map[string]int {
	var counts map[string]int
	_ = e.View(func(ds *payroll.Dataset) error {
		counts = ds.Counts()
		return nil
	})
	return counts
}

func (e *Environment) registry(iface string) (*tool.Registry, error) {
	registry, ok := e.interfaces[iface]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownInterface, iface)
	}
	return registry, nil
}

func (e *Environment) publish(evt InvocationEvent) {
	if e.bus == nil {
		return
	}
	e.bus.Publish(TopicToolInvoked, evt)
}
