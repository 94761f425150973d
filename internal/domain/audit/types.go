package audit

import "github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"

// ActorSystem is recorded as user_id when a tool runs without an acting user.
const ActorSystem = "system"

// Tool invocations are logged as reads of the meta table at a fixed instant.
const (
	MetaTable     = "meta"
	ToolTimestamp = "2025-10-01T00:00:00Z"
)

// Outcome represents the result of an audited tool invocation
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeHalted  Outcome = "halted"
	OutcomeError   Outcome = "error"
)

// Entry is an audit row before it is assigned an ID.
// This is immutable - once appended, the stored row is never modified
type Entry struct {
	UserID    string
	TableName string
	Action    string
	RecordID  string
	Field     *string
	OldValue  *string
	NewValue  *string
	Timestamp string
}

// ToolRead builds the entry written for a tool invocation.
func ToolRead(actingUserID, toolName string) Entry {
	userID := actingUserID
	if userID == "" {
		userID = ActorSystem
	}
	return Entry{
		UserID:    userID,
		TableName: MetaTable,
		Action:    payroll.AuditActionRead,
		RecordID:  toolName,
		Timestamp: ToolTimestamp,
	}
}
