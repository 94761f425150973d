package env

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/audit"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/policy"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/seed"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/tool"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/eventbus"
)

func newTestEnv(t *testing.T, bus eventbus.EventBus) *Environment {
	t.Helper()
	ds, err := seed.Generate(seed.DefaultOptions())
	require.NoError(t, err)
	pol, err := policy.Load()
	require.NoError(t, err)
	e, err := New(ds, pol, Options{Bus: bus, SessionID: "test-session"})
	require.NoError(t, err)
	return e
}

func nextEvent(t *testing.T, ch <-chan eventbus.Event) InvocationEvent {
	t.Helper()
	select {
	case evt := <-ch:
		payload, ok := evt.Payload.(InvocationEvent)
		require.True(t, ok, "unexpected payload %T", evt.Payload)
		return payload
	case <-time.After(time.Second):
		t.Fatal("timeout waiting for tool.invoked event")
		return InvocationEvent{}
	}
}

func TestNew_BuildsFiveInterfaces(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t, nil)
	infos := e.Interfaces()
	require.Len(t, infos, 5)
	for i, info := range infos {
		assert.Equal(t, tool.Catalogs()[i].Interface, info.Name)
		assert.Equal(t, 12, info.ToolCount)

		descs, err := e.Tools(info.Name)
		require.NoError(t, err)
		assert.Len(t, descs, 12)
	}
	assert.Equal(t, "test-session", e.SessionID())
}

func TestNew_GeneratesSessionID(t *testing.T) {
	t.Parallel()

	pol, err := policy.Load()
	require.NoError(t, err)
	e, err := New(payroll.NewDataset(), pol, Options{})
	require.NoError(t, err)
	assert.Len(t, e.SessionID(), 36)
}

func TestTools_UnknownInterface(t *testing.T) {
	t.Parallel()

	_, err := newTestEnv(t, nil).Tools("interface_9")
	require.ErrorIs(t, err, ErrUnknownInterface)
}

func TestInvoke_AppendsAuditAndPublishes(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	events := bus.Subscribe(TopicToolInvoked)
	e := newTestEnv(t, bus)

	out, err := e.Invoke(context.Background(), tool.Interface4, "approve_payroll_run", nil)
	require.NoError(t, err)
	assert.JSONEq(t, `{"tool":"approve_payroll_run","ok":true,"received":{}}`, out)

	row, ok := e.Dataset().AuditLogs.Get("26")
	require.True(t, ok)
	assert.Equal(t, audit.ActorSystem, row.UserID)
	assert.Equal(t, "approve_payroll_run", row.RecordID)

	evt := nextEvent(t, events)
	assert.Equal(t, audit.OutcomeSuccess, evt.Outcome)
	assert.Equal(t, "26", evt.AuditID)
	assert.Equal(t, tool.Interface4, evt.Interface)
	assert.Equal(t, "test-session", evt.SessionID)
}

func TestInvoke_HaltPublishesHaltedOutcome(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	events := bus.Subscribe(TopicToolInvoked)
	e := newTestEnv(t, bus)

	out, err := e.Invoke(context.Background(), tool.Interface1, "lookup_user", json.RawMessage(`{"acting_user_id":"999999"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":"Halt: Invalid acting user"}`, out)
	assert.Equal(t, 25, e.Counts()[payroll.TableAuditLogs])

	evt := nextEvent(t, events)
	assert.Equal(t, audit.OutcomeHalted, evt.Outcome)
	assert.Empty(t, evt.AuditID)
}

func TestInvoke_Errors(t *testing.T) {
	t.Parallel()

	bus := eventbus.New()
	events := bus.Subscribe(TopicToolInvoked)
	e := newTestEnv(t, bus)
	ctx := context.Background()

	_, err := e.Invoke(ctx, "interface_0", "lookup_user", nil)
	require.ErrorIs(t, err, ErrUnknownInterface)

	_, err = e.Invoke(ctx, tool.Interface1, "approve_payroll_run", nil)
	require.ErrorIs(t, err, tool.ErrToolNotRegistered)

	_, err = e.Invoke(ctx, tool.Interface1, "lookup_user", json.RawMessage(`[1]`))
	require.ErrorIs(t, err, tool.ErrToolValidationFailed)
	assert.Equal(t, audit.OutcomeError, nextEvent(t, events).Outcome)
}

func TestInvoke_ConcurrentCallsGetDistinctAuditIDs(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t, nil)
	const calls = 40

	var wg sync.WaitGroup
	for i := 0; i < calls; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.Invoke(context.Background(), tool.Interface5, "record_approval", json.RawMessage(`{"acting_user_id":"1"}`))
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	err := e.View(func(ds *payroll.Dataset) error {
		ids := ds.AuditLogs.IDs()
		require.Len(t, ids, 25+calls)
		maxID, ok := ds.AuditLogs.MaxNumericID()
		require.True(t, ok)
		assert.Equal(t, 25+calls, maxID)
		return nil
	})
	require.NoError(t, err)
}

func TestRulesAndWiki(t *testing.T) {
	t.Parallel()

	e := newTestEnv(t, nil)
	rules := e.Rules()
	require.Len(t, rules, 4)
	assert.Equal(t, "payroll_processing", rules[0].Name)
	assert.Contains(t, e.Wiki(), "Payroll Management Domain")

	raw, err := e.EncodeTable(payroll.TableUsers)
	require.NoError(t, err)
	assert.True(t, json.Valid(raw))
}
