package seed

import (
	"fmt"
	"time"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

const leaveAllowanceDays = 15

func (g *generator) expenseReimbursements() {
	for i := 1; i <= g.n; i++ {
		rid := idStr(i)
		amount := payroll.NewMoney(g.uniform(20, 500))
		status := cyclePick(payroll.ReimbursementStatuses, i)

		var approvedBy, paymentDate *string
		if isOneOf(status, payroll.StatusApproved, payroll.StatusPaid) {
			approvedBy = g.pickFrom(g.pools.finance)
		}
		if status == payroll.StatusPaid {
			paymentDate = ptr(dateStr(date(2025, time.September, 20, i)))
		}
		description := "Reimbursement for " + g.fake.Word()
		receipt := ""
		if g.chance(0.8) {
			receipt = fmt.Sprintf("/receipts/%s.pdf", rid)
		}
		created := at(22+i, 0)

		g.ds.ExpenseReimbursements.Put(rid, payroll.ExpenseReimbursement{
			ReimbursementID:  rid,
			EmployeeID:       g.wrapID(i),
			Amount:           amount,
			Description:      description,
			Status:           status,
			ApprovedByUserID: approvedBy,
			PaymentDate:      paymentDate,
			ReceiptFilePath:  receipt,
			CreatedAt:        stamp(created),
			UpdatedAt:        stamp(updatedAfter(created, 1)),
		})
	}
}

// leaveRequests spans one to five extra days; the remaining balance is what
// is left of the yearly allowance, floored at zero.
func (g *generator) leaveRequests() {
	for i := 1; i <= g.n; i++ {
		lrid := idStr(i)
		ltype := cyclePick(payroll.LeaveTypes, i)
		start := date(2025, time.October, 1, i)
		end := start.AddDate(0, 0, g.randInt(1, 5))
		requested := int(end.Sub(start).Hours()/24) + 1
		remaining := max(0, leaveAllowanceDays-requested-i%5)
		status := cyclePick(payroll.LifecycleStatuses, i+3)

		var approvedBy *string
		if status != payroll.StatusPending {
			approvedBy = g.pickFrom(g.pools.managers)
		}
		created := at(25+i, 0)

		g.ds.LeaveRequests.Put(lrid, payroll.LeaveRequest{
			LeaveRequestID:   lrid,
			EmployeeID:       g.wrapID(i),
			LeaveType:        ltype,
			StartDate:        dateStr(start),
			EndDate:          dateStr(end),
			RequestedDays:    requested,
			Status:           status,
			RemainingBalance: remaining,
			ApprovedByUserID: approvedBy,
			CreatedAt:        stamp(created),
			UpdatedAt:        stamp(updatedAfter(created, 1)),
		})
	}
}

// approverPool returns the users allowed to approve action, falling back
// to user 1 when no suitable role holder exists.
func (g *generator) approverPool(action string) []string {
	var candidates [][]string
	switch action {
	case payroll.ApprovalActionPayrollRun:
		candidates = [][]string{g.pools.finance, g.pools.payrollAdmins}
	case payroll.ApprovalActionReimbursement:
		candidates = [][]string{g.pools.finance}
	default:
		candidates = [][]string{g.pools.hrDirectors, g.pools.finance}
	}
	for _, pool := range candidates {
		if len(pool) > 0 {
			return pool
		}
	}
	return []string{idStr(1)}
}

func (g *generator) approvals() {
	for i := 1; i <= g.n; i++ {
		aid := idStr(i)
		action := cyclePick(payroll.ApprovalActions, i)
		approver := g.pick(g.approverPool(action))
		status := cyclePick(payroll.ApprovalStatuses, i)
		created := at(27+i, 0)

		g.ds.Approvals.Put(aid, payroll.Approval{
			ApprovalID:        aid,
			Action:            action,
			RequestedByUserID: g.wrapID(i),
			ApproverUserID:    approver,
			Status:            status,
			Notes:             fmt.Sprintf("%s approval %s", action, status),
			CreatedAt:         stamp(created),
			UpdatedAt:         stamp(updatedAfter(created, 1)),
		})
	}
}
