package payroll

// User is an account that can act in the environment.
type User struct {
	UserID    string `json:"user_id"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	Role      string `json:"role"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// Employee links a user to employment data.
type Employee struct {
	EmployeeID       string  `json:"employee_id"`
	UserID           string  `json:"user_id"`
	ManagerUserID    *string `json:"manager_user_id"`
	Department       string  `json:"department"`
	HireDate         string  `json:"hire_date"`
	EmploymentStatus string  `json:"employment_status"`
	SalaryBase       Money   `json:"salary_base"`
	PayFrequency     string  `json:"pay_frequency"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type Timesheet struct {
	TimesheetID    string  `json:"timesheet_id"`
	EmployeeID     string  `json:"employee_id"`
	WorkDate       string  `json:"work_date"`
	ClockIn        string  `json:"clock_in"`
	ClockOut       string  `json:"clock_out"`
	TotalHours     float64 `json:"total_hours"`
	Status         string  `json:"status"`
	ApproverUserID *string `json:"approver_user_id"`
	CreatedAt      string  `json:"created_at"`
	UpdatedAt      string  `json:"updated_at"`
}

type PayrollRun struct {
	PayrollRunID      string  `json:"payroll_run_id"`
	PeriodStart       string  `json:"period_start"`
	PeriodEnd         string  `json:"period_end"`
	Status            string  `json:"status"`
	InitiatedByUserID string  `json:"initiated_by_user_id"`
	ApprovedByUserID  *string `json:"approved_by_user_id"`
	ProcessedAt       *string `json:"processed_at"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

type PayrollLineItem struct {
	LineItemID      string `json:"line_item_id"`
	PayrollRunID    string `json:"payroll_run_id"`
	EmployeeID      string `json:"employee_id"`
	GrossPay        Money  `json:"gross_pay"`
	TotalDeductions Money  `json:"total_deductions"`
	NetPay          Money  `json:"net_pay"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

type Deduction struct {
	DeductionID   string  `json:"deduction_id"`
	Name          string  `json:"name"`
	DeductionType string  `json:"deduction_type"`
	Method        string  `json:"method"`
	Rate          float64 `json:"rate"`
	Active        bool    `json:"active"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     string  `json:"updated_at"`
}

type EmployeeDeduction struct {
	EmployeeDeductionID string  `json:"employee_deduction_id"`
	EmployeeID          string  `json:"employee_id"`
	DeductionID         string  `json:"deduction_id"`
	Method              string  `json:"method"`
	Rate                float64 `json:"rate"`
	StartDate           string  `json:"start_date"`
	EndDate             *string `json:"end_date"`
	Active              bool    `json:"active"`
	CreatedAt           string  `json:"created_at"`
	UpdatedAt           string  `json:"updated_at"`
}

// PayrollCorrection records a field-level adjustment; old and new values are
// kept as decimal strings.
type PayrollCorrection struct {
	CorrectionID     string  `json:"correction_id"`
	PayrollRunID     string  `json:"payroll_run_id"`
	EmployeeID       string  `json:"employee_id"`
	Reason           string  `json:"reason"`
	FieldChanged     string  `json:"field_changed"`
	OldValue         string  `json:"old_value"`
	NewValue         string  `json:"new_value"`
	ApprovedByUserID *string `json:"approved_by_user_id"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type BenefitsPlan struct {
	PlanID                  string  `json:"plan_id"`
	Name                    string  `json:"name"`
	PlanType                string  `json:"plan_type"`
	Status                  string  `json:"status"`
	StartDate               string  `json:"start_date"`
	EndDate                 *string `json:"end_date"`
	EmployerContributionPct float64 `json:"employer_contribution_pct"`
	CreatedAt               string  `json:"created_at"`
	UpdatedAt               string  `json:"updated_at"`
}

type EmployeeBenefit struct {
	EmployeeBenefitID  string  `json:"employee_benefit_id"`
	EmployeeID         string  `json:"employee_id"`
	PlanID             string  `json:"plan_id"`
	Status             string  `json:"status"`
	ContributionPct    float64 `json:"contribution_pct"`
	ContributionAmount Money   `json:"contribution_amount"`
	Beneficiary        string  `json:"beneficiary"`
	CreatedAt          string  `json:"created_at"`
	UpdatedAt          string  `json:"updated_at"`
}

type ExpenseReimbursement struct {
	ReimbursementID  string  `json:"reimbursement_id"`
	EmployeeID       string  `json:"employee_id"`
	Amount           Money   `json:"amount"`
	Description      string  `json:"description"`
	Status           string  `json:"status"`
	ApprovedByUserID *string `json:"approved_by_user_id"`
	PaymentDate      *string `json:"payment_date"`
	ReceiptFilePath  string  `json:"receipt_file_path"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type LeaveRequest struct {
	LeaveRequestID   string  `json:"leave_request_id"`
	EmployeeID       string  `json:"employee_id"`
	LeaveType        string  `json:"leave_type"`
	StartDate        string  `json:"start_date"`
	EndDate          string  `json:"end_date"`
	RequestedDays    int     `json:"requested_days"`
	Status           string  `json:"status"`
	RemainingBalance int     `json:"remaining_balance"`
	ApprovedByUserID *string `json:"approved_by_user_id"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}

type Approval struct {
	ApprovalID        string `json:"approval_id"`
	Action            string `json:"action"`
	RequestedByUserID string `json:"requested_by_user_id"`
	ApproverUserID    string `json:"approver_user_id"`
	Status            string `json:"status"`
	Notes             string `json:"notes"`
	CreatedAt         string `json:"created_at"`
	UpdatedAt         string `json:"updated_at"`
}

// AuditLog is an append-only record of an action against the store.
type AuditLog struct {
	AuditID   string  `json:"audit_id"`
	UserID    string  `json:"user_id"`
	TableName string  `json:"table_name"`
	Action    string  `json:"action"`
	RecordID  string  `json:"record_id"`
	Field     *string `json:"field"`
	OldValue  *string `json:"old_value"`
	NewValue  *string `json:"new_value"`
	Timestamp string  `json:"timestamp"`
}

type Vendor struct {
	VendorID    string `json:"vendor_id"`
	Name        string `json:"name"`
	TIN         string `json:"tin"`
	BankAccount string `json:"bank_account"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

type VendorPayment struct {
	VendorPaymentID  string  `json:"vendor_payment_id"`
	VendorID         string  `json:"vendor_id"`
	InvoiceNo        string  `json:"invoice_no"`
	Amount           Money   `json:"amount"`
	Status           string  `json:"status"`
	ApprovedByUserID *string `json:"approved_by_user_id"`
	PaidAt           *string `json:"paid_at"`
	CreatedAt        string  `json:"created_at"`
	UpdatedAt        string  `json:"updated_at"`
}
