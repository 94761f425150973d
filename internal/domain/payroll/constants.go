// Package payroll holds the table models and closed vocabularies of the payroll
// management dataset, plus the ordered dict-of-records container used to read
// and write the data directory.
package payroll

// User roles.
const (
	RoleEmployee             = "employee"
	RoleManager              = "manager"
	RolePayrollAdministrator = "payroll_administrator"
	RoleFinanceOfficer       = "finance_officer"
	RoleHRDirector           = "hr_director"
	RoleITAdministrator      = "it_administrator"
	RoleComplianceOfficer    = "compliance_officer"
)

// Status values shared by several tables.
const (
	StatusActive    = "active"
	StatusInactive  = "inactive"
	StatusPending   = "pending"
	StatusSubmitted = "submitted"
	StatusApproved  = "approved"
	StatusRejected  = "rejected"
	StatusPaid      = "paid"
	StatusFailed    = "failed"
	StatusDraft     = "draft"
	StatusSuspended = "suspended"
	StatusBlocked   = "blocked"
)

// Calculation methods for deductions.
const (
	MethodPercent = "percent"
	MethodFixed   = "fixed"
)

// Approval actions.
const (
	ApprovalActionPayrollRun    = "payroll_run"
	ApprovalActionReimbursement = "reimbursement"
	ApprovalActionBenefitsPlan  = "benefits_plan"
)

// Audit actions.
const (
	AuditActionCreate  = "create"
	AuditActionRead    = "read"
	AuditActionUpdate  = "update"
	AuditActionDelete  = "delete"
	AuditActionApprove = "approve"
	AuditActionReject  = "reject"
	AuditActionLogin   = "login"
	AuditActionLogout  = "logout"
	AuditActionExport  = "export"
)

// Closed vocabularies. Order matters: the generator enumerates them cyclically.
var (
	UserRoles = []string{
		RoleEmployee, RoleManager, RolePayrollAdministrator, RoleFinanceOfficer,
		RoleHRDirector, RoleITAdministrator, RoleComplianceOfficer,
	}
	UserStatuses          = []string{StatusActive, StatusInactive, StatusSuspended}
	PayFrequencies        = []string{"weekly", "biweekly", "semimonthly", "monthly"}
	EmploymentStatuses    = []string{StatusActive, "on_leave", "terminated"}
	Departments           = []string{"Engineering", "HR", "Finance", "Operations", "Sales", "Support"}
	TimesheetStatuses     = []string{StatusSubmitted, StatusApproved, StatusRejected}
	PayrollRunStatuses    = []string{StatusDraft, StatusApproved, StatusPaid, StatusFailed}
	BenefitPlanTypes      = []string{"health", "dental", "vision", "retirement", "commuter", "life"}
	LifecycleStatuses     = []string{StatusActive, StatusInactive, StatusPending}
	DeductionTypes        = []string{"tax", "social_security", "benefit", "garnishment", "custom"}
	CalcMethods           = []string{MethodPercent, MethodFixed}
	ReimbursementStatuses = []string{StatusSubmitted, StatusApproved, StatusRejected, StatusPaid}
	LeaveTypes            = []string{"annual", "sick", "fmla", "personal", "bereavement", "jury_duty"}
	ApprovalStatuses      = []string{StatusApproved, StatusRejected, StatusPending}
	ApprovalActions       = []string{ApprovalActionPayrollRun, ApprovalActionReimbursement, ApprovalActionBenefitsPlan}
	AuditActions          = []string{
		AuditActionCreate, AuditActionRead, AuditActionUpdate, AuditActionDelete, AuditActionApprove,
		AuditActionReject, AuditActionLogin, AuditActionLogout, AuditActionExport,
	}
	VendorStatuses  = []string{StatusActive, StatusInactive, StatusBlocked}
	PaymentStatuses = []string{StatusSubmitted, StatusApproved, StatusRejected, StatusPaid, StatusFailed}
	CorrectionFields = []string{"gross_pay", "total_deductions", "net_pay"}
)

// Timestamp layouts used across the dataset.
const (
	TimestampLayout = "2006-01-02T15:04:05"
	DateLayout      = "2006-01-02"
)

// Contains reports whether v is one of the values in vocab.
func Contains(vocab []string, v string) bool {
	for _, item := range vocab {
		if item == v {
			return true
		}
	}
	return false
}
