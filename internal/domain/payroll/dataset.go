package payroll

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Table names. The file for each table is <name>.json.
const (
	TableUsers                 = "users"
	TableEmployees             = "employees"
	TableTimesheets            = "timesheets"
	TablePayrollRuns           = "payroll_runs"
	TablePayrollLineItems      = "payroll_line_items"
	TableDeductions            = "deductions"
	TableEmployeeDeductions    = "employee_deductions"
	TablePayrollCorrections    = "payroll_corrections"
	TableBenefitsPlans         = "benefits_plans"
	TableEmployeeBenefits      = "employee_benefits"
	TableExpenseReimbursements = "expense_reimbursements"
	TableLeaveRequests         = "leave_requests"
	TableApprovals             = "approvals"
	TableAuditLogs             = "audit_logs"
	TableVendors               = "vendors"
	TableVendorPayments        = "vendor_payments"
)

var ErrUnknownTable = errors.New("unknown table")

// Dataset is the in-memory store shared by the generator, the tools and the checker.
type Dataset struct {
	Users                 *Table[User]
	Employees             *Table[Employee]
	Timesheets            *Table[Timesheet]
	PayrollRuns           *Table[PayrollRun]
	PayrollLineItems      *Table[PayrollLineItem]
	Deductions            *Table[Deduction]
	EmployeeDeductions    *Table[EmployeeDeduction]
	PayrollCorrections    *Table[PayrollCorrection]
	BenefitsPlans         *Table[BenefitsPlan]
	EmployeeBenefits      *Table[EmployeeBenefit]
	ExpenseReimbursements *Table[ExpenseReimbursement]
	LeaveRequests         *Table[LeaveRequest]
	Approvals             *Table[Approval]
	AuditLogs             *Table[AuditLog]
	Vendors               *Table[Vendor]
	VendorPayments        *Table[VendorPayment]
}

// NewDataset returns a dataset with every table allocated and empty.
func NewDataset() *Dataset {
	return &Dataset{
		Users:                 NewTable[User](),
		Employees:             NewTable[Employee](),
		Timesheets:            NewTable[Timesheet](),
		PayrollRuns:           NewTable[PayrollRun](),
		PayrollLineItems:      NewTable[PayrollLineItem](),
		Deductions:            NewTable[Deduction](),
		EmployeeDeductions:    NewTable[EmployeeDeduction](),
		PayrollCorrections:    NewTable[PayrollCorrection](),
		BenefitsPlans:         NewTable[BenefitsPlan](),
		EmployeeBenefits:      NewTable[EmployeeBenefit](),
		ExpenseReimbursements: NewTable[ExpenseReimbursement](),
		LeaveRequests:         NewTable[LeaveRequest](),
		Approvals:             NewTable[Approval](),
		AuditLogs:             NewTable[AuditLog](),
		Vendors:               NewTable[Vendor](),
		VendorPayments:        NewTable[VendorPayment](),
	}
}

type tableCodec interface {
	json.Marshaler
	json.Unmarshaler
	Len() int
	IDs() []string
}

type namedTable struct {
	name  string
	table tableCodec
}

// tables lists every table in file order.
func (d *Dataset) tables() []namedTable {
	return []namedTable{
		{TableUsers, d.Users},
		{TableEmployees, d.Employees},
		{TableTimesheets, d.Timesheets},
		{TablePayrollRuns, d.PayrollRuns},
		{TablePayrollLineItems, d.PayrollLineItems},
		{TableDeductions, d.Deductions},
		{TableEmployeeDeductions, d.EmployeeDeductions},
		{TablePayrollCorrections, d.PayrollCorrections},
		{TableBenefitsPlans, d.BenefitsPlans},
		{TableEmployeeBenefits, d.EmployeeBenefits},
		{TableExpenseReimbursements, d.ExpenseReimbursements},
		{TableLeaveRequests, d.LeaveRequests},
		{TableApprovals, d.Approvals},
		{TableAuditLogs, d.AuditLogs},
		{TableVendors, d.Vendors},
		{TableVendorPayments, d.VendorPayments},
	}
}

// TableNames returns the sixteen table names in file order.
func TableNames() []string {
	tables := NewDataset().tables()
	out := make([]string, 0, len(tables))
	for _, t := range tables {
		out = append(out, t.name)
	}
	return out
}

func (d *Dataset) lookup(name string) (tableCodec, error) {
	for _, t := range d.tables() {
		if t.name == name {
			return t.table, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTable, name)
}

// Counts returns the number of rows per table.
func (d *Dataset) Counts() map[string]int {
	out := make(map[string]int, 16)
	for _, t := range d.tables() {
		out[t.name] = t.table.Len()
	}
	return out
}

// TableIDs returns the record IDs of the named table in insertion order.
func (d *Dataset) TableIDs(name string) ([]string, error) {
	t, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	return t.IDs(), nil
}

// EncodeTable renders one table in the on-disk format: two-space indent,
// insertion-ordered keys, no HTML escaping, no trailing newline.
func (d *Dataset) EncodeTable(name string) ([]byte, error) {
	t, err := d.lookup(name)
	if err != nil {
		return nil, err
	}
	return encodeIndented(t)
}

func encodeIndented(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// WriteDir writes one <table>.json file per table into dir, creating it if needed.
func WriteDir(dir string, d *Dataset) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("payroll.WriteDir: create %q: %w", dir, err)
	}
	for _, t := range d.tables() {
		raw, err := encodeIndented(t.table)
		if err != nil {
			return fmt.Errorf("payroll.WriteDir: encode %s: %w", t.name, err)
		}
		path := filepath.Join(dir, t.name+".json")
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return fmt.Errorf("payroll.WriteDir: write %q: %w", path, err)
		}
	}
	return nil
}

// LoadDir reads every table file from dir. A missing file is an error.
func LoadDir(dir string) (*Dataset, error) {
	d := NewDataset()
	for _, t := range d.tables() {
		path := filepath.Join(dir, t.name+".json")
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("payroll.LoadDir: read %q: %w", path, err)
		}
		if err := t.table.UnmarshalJSON(raw); err != nil {
			return nil, fmt.Errorf("payroll.LoadDir: decode %s: %w", t.name, err)
		}
	}
	return d, nil
}
