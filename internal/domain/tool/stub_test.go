package tool

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/audit"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

func newStoreForTest(t *testing.T) *payroll.Dataset {
	t.Helper()
	ds := payroll.NewDataset()
	for _, id := range []string{"1", "2", "3"} {
		ds.Users.Put(id, payroll.User{UserID: id, Role: payroll.RoleEmployee, Status: payroll.StatusActive})
	}
	for _, id := range []string{"1", "2", "5"} {
		ds.AuditLogs.Put(id, payroll.AuditLog{AuditID: id})
	}
	return ds
}

func newLookupUser() *StubTool {
	return NewStubTool(Definition{Name: "lookup_user", Description: "Find a user by email."}, audit.NewWriter())
}

func TestStubTool_UnknownActingUserHalts(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	res, err := Invoke(context.Background(), newLookupUser(), store, json.RawMessage(`{"acting_user_id":"999999"}`))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !res.Halted {
		t.Fatalf("expected halt, got %s", res.Output)
	}
	if got, want := string(res.Output), `{"error":"Halt: Invalid acting user"}`; got != want {
		t.Fatalf("Output = %s, want %s", got, want)
	}
	if store.AuditLogs.Len() != 3 {
		t.Fatalf("halt must not write audit rows, len = %d", store.AuditLogs.Len())
	}
}

func TestStubTool_NonStringActingUserHalts(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	res, err := Invoke(context.Background(), newLookupUser(), store, json.RawMessage(`{"acting_user_id":2}`))
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if !res.Halted {
		t.Fatalf("expected halt for numeric acting_user_id, got %s", res.Output)
	}
}

func TestStubTool_EmptyArgsWritesSystemAudit(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	res, err := Invoke(context.Background(), newLookupUser(), store, nil)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}
	if got, want := string(res.Output), `{"tool":"lookup_user","ok":true,"received":{}}`; got != want {
		t.Fatalf("Output = %s, want %s", got, want)
	}

	row, ok := store.AuditLogs.Get("6")
	if !ok {
		t.Fatalf("expected audit row 6, ids = %v", store.AuditLogs.IDs())
	}
	if row.UserID != audit.ActorSystem || row.TableName != "meta" || row.Action != "read" || row.RecordID != "lookup_user" {
		t.Fatalf("unexpected audit row: %+v", row)
	}
	if row.Timestamp != "2025-10-01T00:00:00Z" {
		t.Fatalf("Timestamp = %q", row.Timestamp)
	}
}

func TestStubTool_FalsyActingUserIsSystem(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	for _, args := range []string{`{"acting_user_id":""}`, `{"acting_user_id":null}`, `{"acting_user_id":0}`} {
		res, err := Invoke(context.Background(), newLookupUser(), store, json.RawMessage(args))
		if err != nil {
			t.Fatalf("Invoke(%s) error = %v", args, err)
		}
		if res.Halted {
			t.Fatalf("Invoke(%s) halted", args)
		}
	}
	for _, row := range audit.ListByRecord(store, audit.MetaTable, "lookup_user") {
		if row.UserID != audit.ActorSystem {
			t.Fatalf("UserID = %q, want system", row.UserID)
		}
	}
}

func TestStubTool_EchoesArgumentsInOrder(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	args := json.RawMessage(`{"zeta": 1, "acting_user_id": "2", "payload": {"email": "a&b@example.com"}}`)
	res, err := Invoke(context.Background(), newLookupUser(), store, args)
	if err != nil {
		t.Fatalf("Invoke() error = %v", err)
	}

	want := `{"tool":"lookup_user","ok":true,"received":{"zeta":1,"acting_user_id":"2","payload":{"email":"a&b@example.com"}}}`
	if string(res.Output) != want {
		t.Fatalf("Output = %s, want %s", res.Output, want)
	}
	row, _ := store.AuditLogs.Get("6")
	if row.UserID != "2" {
		t.Fatalf("UserID = %q, want 2", row.UserID)
	}
}

func TestInvoke_RejectsNonObjectArgs(t *testing.T) {
	t.Parallel()

	store := newStoreForTest(t)
	for _, args := range []string{`[]`, `"x"`, `null`, `{`} {
		if _, err := Invoke(context.Background(), newLookupUser(), store, json.RawMessage(args)); !errors.Is(err, ErrToolValidationFailed) {
			t.Fatalf("Invoke(%s) error = %v, want ErrToolValidationFailed", args, err)
		}
	}
}

func TestInvoke_CancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := Invoke(ctx, newLookupUser(), newStoreForTest(t), nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("Invoke() error = %v, want context.Canceled", err)
	}
}

func TestStubTool_Describe(t *testing.T) {
	t.Parallel()

	raw, err := marshalNoEscape(newLookupUser().Describe())
	if err != nil {
		t.Fatalf("marshal descriptor: %v", err)
	}
	s := string(raw)
	for _, fragment := range []string{
		`"type":"function"`,
		`"name":"lookup_user"`,
		`"description":"Find a user by email."`,
		`"description":"User performing the action (for authorization & audit)"`,
		`"required":[]`,
	} {
		if !strings.Contains(s, fragment) {
			t.Fatalf("descriptor %s missing %s", s, fragment)
		}
	}
}
