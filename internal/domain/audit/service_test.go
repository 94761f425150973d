package audit

import (
	"errors"
	"testing"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

func TestNextID_EmptyTable(t *testing.T) {
	t.Parallel()

	if got := NextID(payroll.NewTable[payroll.AuditLog]()); got != "1" {
		t.Fatalf("NextID() = %q, want %q", got, "1")
	}
}

func TestNextID_SkipsNonNumericKeys(t *testing.T) {
	t.Parallel()

	logs := payroll.NewTable[payroll.AuditLog]()
	logs.Put("3", payroll.AuditLog{AuditID: "3"})
	logs.Put("legacy-a", payroll.AuditLog{AuditID: "legacy-a"})
	logs.Put("12", payroll.AuditLog{AuditID: "12"})

	if got := NextID(logs); got != "13" {
		t.Fatalf("NextID() = %q, want %q", got, "13")
	}
}

func TestAppend_ToolRead(t *testing.T) {
	t.Parallel()

	ds := payroll.NewDataset()
	ds.AuditLogs.Put("7", payroll.AuditLog{AuditID: "7"})

	row, err := NewWriter().Append(ds, ToolRead("", "list_units"))
	if err != nil {
		t.Fatalf("Append() error = %v", err)
	}
	if row.AuditID != "8" {
		t.Fatalf("AuditID = %q, want %q", row.AuditID, "8")
	}
	if row.UserID != ActorSystem || row.TableName != MetaTable || row.Action != payroll.AuditActionRead {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.RecordID != "list_units" || row.Timestamp != ToolTimestamp {
		t.Fatalf("unexpected row: %+v", row)
	}
	if row.Field != nil || row.OldValue != nil || row.NewValue != nil {
		t.Fatalf("field-level values must be null: %+v", row)
	}

	stored, ok := ds.AuditLogs.Get("8")
	if !ok || stored.RecordID != "list_units" {
		t.Fatalf("row not stored: %+v", stored)
	}
	if ids := ds.AuditLogs.IDs(); ids[len(ids)-1] != "8" {
		t.Fatalf("new row must be last, ids = %v", ids)
	}
}

func TestAppend_RejectsInvalidEntry(t *testing.T) {
	t.Parallel()

	ds := payroll.NewDataset()
	entry := ToolRead("4", "lookup_user")
	entry.Action = "rename"

	if _, err := NewWriter().Append(ds, entry); !errors.Is(err, ErrInvalidEntry) {
		t.Fatalf("Append() error = %v, want ErrInvalidEntry", err)
	}
	if ds.AuditLogs.Len() != 0 {
		t.Fatalf("rejected entry must not be stored")
	}
}

func TestListByActorAndRecord(t *testing.T) {
	t.Parallel()

	ds := payroll.NewDataset()
	w := NewWriter()
	for _, e := range []Entry{
		ToolRead("4", "lookup_user"),
		ToolRead("", "list_units"),
		ToolRead("4", "list_units"),
	} {
		if _, err := w.Append(ds, e); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}

	if got := ListByActor(ds, "4"); len(got) != 2 {
		t.Fatalf("ListByActor() len = %d, want 2", len(got))
	}
	got := ListByRecord(ds, MetaTable, "list_units")
	if len(got) != 2 || got[0].UserID != ActorSystem || got[1].UserID != "4" {
		t.Fatalf("ListByRecord() = %+v", got)
	}
}
