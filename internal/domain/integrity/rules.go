package integrity

// sqlRule selects (record_id, detail) for every record breaking the rule.
type sqlRule struct {
	name  string
	table string
	query string
}

// roleRules check that references point at users holding the right role.
// Nullable approvers are only checked when set; the generator leaves them
// empty when the role pool is.
var roleRules = []sqlRule{
	{"manager_role", "employees", `
		SELECT e.employee_id, 'manager ' || e.manager_user_id || ' has role ' || u.role
		FROM employees e JOIN users u ON u.user_id = e.manager_user_id
		WHERE u.role <> 'manager'`},
	{"timesheet_approver_role", "timesheets", `
		SELECT t.timesheet_id, 'approver ' || t.approver_user_id || ' has role ' || u.role
		FROM timesheets t JOIN users u ON u.user_id = t.approver_user_id
		WHERE u.role <> 'payroll_administrator'`},
	{"run_initiator_role", "payroll_runs", `
		SELECT r.payroll_run_id, 'initiator ' || r.initiated_by_user_id || ' has role ' || u.role
		FROM payroll_runs r JOIN users u ON u.user_id = r.initiated_by_user_id
		WHERE u.role <> 'payroll_administrator'
		  AND EXISTS (SELECT 1 FROM users WHERE role = 'payroll_administrator')`},
	{"run_approver_role", "payroll_runs", `
		SELECT r.payroll_run_id, 'approver ' || r.approved_by_user_id || ' has role ' || u.role
		FROM payroll_runs r JOIN users u ON u.user_id = r.approved_by_user_id
		WHERE u.role <> 'finance_officer'`},
	{"correction_approver_role", "payroll_corrections", `
		SELECT c.correction_id, 'approver ' || c.approved_by_user_id || ' has role ' || u.role
		FROM payroll_corrections c JOIN users u ON u.user_id = c.approved_by_user_id
		WHERE u.role <> 'finance_officer'`},
	{"reimbursement_approver_role", "expense_reimbursements", `
		SELECT r.reimbursement_id, 'approver ' || r.approved_by_user_id || ' has role ' || u.role
		FROM expense_reimbursements r JOIN users u ON u.user_id = r.approved_by_user_id
		WHERE u.role <> 'finance_officer'`},
	{"leave_approver_role", "leave_requests", `
		SELECT l.leave_request_id, 'approver ' || l.approved_by_user_id || ' has role ' || u.role
		FROM leave_requests l JOIN users u ON u.user_id = l.approved_by_user_id
		WHERE u.role <> 'manager'`},
	{"vendor_payment_approver_role", "vendor_payments", `
		SELECT p.vendor_payment_id, 'approver ' || p.approved_by_user_id || ' has role ' || u.role
		FROM vendor_payments p JOIN users u ON u.user_id = p.approved_by_user_id
		WHERE u.role <> 'finance_officer'`},
	{"approval_approver_role", "approvals", `
		SELECT a.approval_id, a.action || ' approver ' || a.approver_user_id || ' has role ' || u.role
		FROM approvals a JOIN users u ON u.user_id = a.approver_user_id
		WHERE a.approver_user_id <> '1' AND NOT (
			(a.action = 'payroll_run'   AND u.role IN ('finance_officer', 'payroll_administrator')) OR
			(a.action = 'reimbursement' AND u.role = 'finance_officer') OR
			(a.action = 'benefits_plan' AND u.role IN ('hr_director', 'finance_officer')))`},
	{"audit_actor", "audit_logs", `
		SELECT audit_id, 'unknown user ' || user_id
		FROM audit_logs
		WHERE user_id <> 'system' AND user_id NOT IN (SELECT user_id FROM users)`},
}

// fieldRules check fields whose presence depends on another field.
var fieldRules = []sqlRule{
	{"run_processed_iff_approved", "payroll_runs", `
		SELECT payroll_run_id, 'status ' || status || ' with processed_at ' || IFNULL(json_extract(doc, '$.processed_at'), 'null')
		FROM payroll_runs
		WHERE (status IN ('approved', 'paid')) <> (json_extract(doc, '$.processed_at') IS NOT NULL)`},
	{"run_approver_requires_approval", "payroll_runs", `
		SELECT payroll_run_id, 'status ' || status || ' has an approver'
		FROM payroll_runs
		WHERE approved_by_user_id IS NOT NULL AND status NOT IN ('approved', 'paid')`},
	{"reimbursement_approver_requires_approval", "expense_reimbursements", `
		SELECT reimbursement_id, 'status ' || status || ' has an approver'
		FROM expense_reimbursements
		WHERE approved_by_user_id IS NOT NULL AND status NOT IN ('approved', 'paid')`},
	{"reimbursement_payment_date_iff_paid", "expense_reimbursements", `
		SELECT reimbursement_id, 'status ' || status || ' with payment_date ' || IFNULL(json_extract(doc, '$.payment_date'), 'null')
		FROM expense_reimbursements
		WHERE (status = 'paid') <> (json_extract(doc, '$.payment_date') IS NOT NULL)`},
	{"vendor_payment_approver_requires_approval", "vendor_payments", `
		SELECT vendor_payment_id, 'status ' || status || ' has an approver'
		FROM vendor_payments
		WHERE approved_by_user_id IS NOT NULL AND status NOT IN ('approved', 'paid')`},
	{"vendor_payment_paid_at_iff_paid", "vendor_payments", `
		SELECT vendor_payment_id, 'status ' || status || ' with paid_at ' || IFNULL(json_extract(doc, '$.paid_at'), 'null')
		FROM vendor_payments
		WHERE (status = 'paid') <> (json_extract(doc, '$.paid_at') IS NOT NULL)`},
	{"leave_approver_requires_decision", "leave_requests", `
		SELECT leave_request_id, 'pending request has an approver'
		FROM leave_requests
		WHERE approved_by_user_id IS NOT NULL AND status = 'pending'`},
	{"employee_deduction_active_iff_open", "employee_deductions", `
		SELECT employee_deduction_id, 'active ' || json_extract(doc, '$.active') || ' with end_date ' || IFNULL(json_extract(doc, '$.end_date'), 'null')
		FROM employee_deductions
		WHERE (json_extract(doc, '$.end_date') IS NULL) <> json_extract(doc, '$.active')`},
	{"benefits_plan_active_iff_open", "benefits_plans", `
		SELECT plan_id, 'status ' || json_extract(doc, '$.status') || ' with end_date ' || IFNULL(json_extract(doc, '$.end_date'), 'null')
		FROM benefits_plans
		WHERE (json_extract(doc, '$.end_date') IS NULL) <> (json_extract(doc, '$.status') = 'active')`},
	{"audit_create_delete_without_field", "audit_logs", `
		SELECT audit_id, action || ' row carries field ' || json_extract(doc, '$.field')
		FROM audit_logs
		WHERE action IN ('create', 'delete') AND json_extract(doc, '$.field') IS NOT NULL`},
}
