package audit

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

var ErrInvalidEntry = errors.New("invalid audit entry")

// NextID returns max(numeric audit_id)+1 as a string, or "1" for an empty
// table. Keys that are not integers are skipped.
func NextID(logs *payroll.Table[payroll.AuditLog]) string {
	maxID, ok := logs.MaxNumericID()
	if !ok {
		return "1"
	}
	return strconv.Itoa(maxID + 1)
}

// Writer appends rows to audit_logs.
// All operations are append-only; no updates or deletes are supported
type Writer struct{}

// NewWriter creates a new audit writer
func NewWriter() *Writer {
	return &Writer{}
}

// Append stores e under the next free audit ID and returns the stored row.
// This is the ONLY way tools create audit rows
func (w *Writer) Append(ds *payroll.Dataset, e Entry) (payroll.AuditLog, error) {
	if err := validateEntry(e); err != nil {
		return payroll.AuditLog{}, err
	}

	row := payroll.AuditLog{
		AuditID:   NextID(ds.AuditLogs),
		UserID:    e.UserID,
		TableName: e.TableName,
		Action:    e.Action,
		RecordID:  e.RecordID,
		Field:     e.Field,
		OldValue:  e.OldValue,
		NewValue:  e.NewValue,
		Timestamp: e.Timestamp,
	}
	ds.AuditLogs.Put(row.AuditID, row)
	return row, nil
}

// ListByActor returns the rows written by userID, in insertion order.
func ListByActor(ds *payroll.Dataset, userID string) []payroll.AuditLog {
	return filter(ds, func(row payroll.AuditLog) bool { return row.UserID == userID })
}

// ListByRecord returns the rows touching one record of one table.
func ListByRecord(ds *payroll.Dataset, table, recordID string) []payroll.AuditLog {
	return filter(ds, func(row payroll.AuditLog) bool {
		return row.TableName == table && row.RecordID == recordID
	})
}

func filter(ds *payroll.Dataset, keep func(payroll.AuditLog) bool) []payroll.AuditLog {
	var out []payroll.AuditLog
	for _, row := range ds.AuditLogs.Rows() {
		if keep(row) {
			out = append(out, row)
		}
	}
	return out
}

func validateEntry(e Entry) error {
	switch {
	case e.UserID == "":
		return fmt.Errorf("%w: user_id is required", ErrInvalidEntry)
	case e.TableName == "":
		return fmt.Errorf("%w: table_name is required", ErrInvalidEntry)
	case e.RecordID == "":
		return fmt.Errorf("%w: record_id is required", ErrInvalidEntry)
	case !payroll.Contains(payroll.AuditActions, e.Action):
		return fmt.Errorf("%w: unknown action %q", ErrInvalidEntry, e.Action)
	case e.Timestamp == "":
		return fmt.Errorf("%w: timestamp is required", ErrInvalidEntry)
	}
	return nil
}
