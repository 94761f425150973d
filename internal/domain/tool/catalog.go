package tool

import (
	"fmt"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/audit"
)

// Definition names a tool and describes it to agents.
type Definition struct {
	Name        string
	Description string
}

// Catalog is the tool set exposed by one interface.
type Catalog struct {
	Interface string
	Title     string
	Tools     []Definition
}

const (
	Interface1 = "interface_1"
	Interface2 = "interface_2"
	Interface3 = "interface_3"
	Interface4 = "interface_4"
	Interface5 = "interface_5"
)

// Catalogs returns the five interface catalogs, twelve tools each. Roles
// overlap between interfaces; names never do.
func Catalogs() []Catalog {
	return []Catalog{
		{
			Interface: Interface1,
			Title:     "Provisioning & Departments",
			Tools: []Definition{
				{"register_account", "Provision a user account (validation, optional approvals, audit)."},
				{"create_unit", "Create a department/unit with manager and budget."},
				{"revise_unit", "Update a department/unit manager or budget."},
				{"record_audit", "Write a generic audit log entry (used across flows)."},
				{"add_rbac_role", "Grant an additional role to an existing user."},
				{"suspend_user", "Set user status to suspended with reason."},
				{"activate_user", "Set user status to active (reactivation)."},
				{"request_admin_approval", "Create an approval record for elevated access."},
				{"approve_request", "Approve a pending approval request."},
				{"reject_request", "Reject a pending approval request."},
				{"list_units", "List departments/units optionally filtered by manager."},
				{"lookup_user", "Find a user by email."},
			},
		},
		{
			Interface: Interface2,
			Title:     "Recruiting & Interviews",
			Tools: []Definition{
				{"create_position", "Create a job position (draft/open/closed)."},
				{"publish_opening", "Move a draft position to open (post opening)."},
				{"close_opening", "Close an open position."},
				{"add_candidate", "Add a candidate profile."},
				{"file_application", "Create a job application for a candidate & position."},
				{"advance_stage", "Progress an application stage (with checks)."},
				{"book_interview", "Schedule an interview."},
				{"finalize_interview", "Record interview outcome and update application."},
				{"withdraw_application", "Withdraw an application."},
				{"link_application_doc", "Attach a document pointer to an application."},
				{"list_open_positions", "List currently open positions."},
				{"flag_compliance_case", "Create a compliance record tied to an application."},
			},
		},
		{
			Interface: Interface3,
			Title:     "Employees & Documents",
			Tools: []Definition{
				{"onboard_employee", "Onboard a new employee (creates employee record)."},
				{"update_employee_profile", "Update employee fields with manager-chain checks."},
				{"offboard_employee", "Terminate/Deactivate employee per SOP."},
				{"upload_document", "Upload/record a document metadata pointer."},
				{"set_manager", "Set or change an employee's manager."},
				{"deactivate_user_account", "Deactivate a user account."},
				{"verify_compliance_docs", "Mark eligibility/compliance document verification."},
				{"assign_training", "Enroll employee in a training program."},
				{"complete_training", "Mark employee training as completed."},
				{"start_review_cycle", "Start a performance review draft."},
				{"submit_review", "Submit/approve a performance review."},
				{"list_employee_docs", "List documents uploaded by or for an employee."},
			},
		},
		{
			Interface: Interface4,
			Title:     "Timesheets, Payroll, Reimbursements, Leave",
			Tools: []Definition{
				{"submit_timesheet", "Submit a timesheet entry (overlap checks)."},
				{"approve_timesheet", "Approve a timesheet (authorized approver only)."},
				{"start_payroll_run", "Create a draft payroll run for a period."},
				{"approve_payroll_run", "Approve a draft payroll run (Finance approval)."},
				{"pay_payroll_run", "Mark a payroll run as paid (after approval)."},
				{"correct_payroll", "Create a payroll correction entry."},
				{"request_leave", "Create a leave request with balance checks."},
				{"process_reimbursement", "Approve/reject/pay a reimbursement."},
				{"update_reimbursement", "Modify a submitted reimbursement (amount/desc/receipt)."},
				{"list_timesheets", "List timesheets by employee/date window."},
				{"compute_leave_balance", "Compute available leave for an employee in 2025."},
				{"gen_payroll_line_items", "Aggregate approved hours into line items (draft)."},
			},
		},
		{
			Interface: Interface5,
			Title:     "Benefits, Approvals, Training",
			Tools: []Definition{
				{"create_benefits_plan", "Create a benefits plan (HR Dir/Finance approval)."},
				{"update_benefits_plan", "Update fields on a benefits plan (with approvals)."},
				{"enroll_benefit", "Enroll an employee into a benefits plan."},
				{"terminate_benefit", "Deactivate an employee benefits enrollment."},
				{"record_approval", "Insert a generic approval record."},
				{"approve_item", "Approve an approval item by id."},
				{"reject_item", "Reject an approval item by id."},
				{"create_training_program", "Create a training program (mandatory flag)."},
				{"enroll_training", "Enroll employee in a training program."},
				{"complete_training_prog", "Mark completion for a training enrollment."},
				{"start_performance_review", "Start a performance review record."},
				{"submit_approve_review", "Submit or approve a review (HR Manager approval)."},
			},
		},
	}
}

// NewCatalogRegistry registers a stub for every tool in c.
func NewCatalogRegistry(c Catalog, w *audit.Writer) (*Registry, error) {
	registry := NewRegistry()
	for _, def := range c.Tools {
		if err := registerStub(registry, def, w); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

func registerStub(registry *Registry, def Definition, w *audit.Writer) error {
	if err := registry.Register(def.Name, NewStubTool(def, w)); err != nil {
		return fmt.Errorf("register %s: %w", def.Name, err)
	}
	return nil
}
