package seed

import (
	"fmt"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

func (g *generator) vendors() {
	for i := 1; i <= g.n; i++ {
		vid := idStr(i)
		created := at(8+i, 0)
		name := g.fake.Company()
		tin := g.randInt(10_000_000, 99_999_999)
		account := g.randInt(10_000_000, 99_999_999)

		g.ds.Vendors.Put(vid, payroll.Vendor{
			VendorID:    vid,
			Name:        name,
			TIN:         idStr(tin),
			BankAccount: fmt.Sprintf("ACCT-%d", account),
			Status:      cyclePick(payroll.VendorStatuses, i),
			CreatedAt:   stamp(created),
			UpdatedAt:   stamp(updatedAfter(created, 1)),
		})
	}
}

func (g *generator) vendorPayments() {
	for i := 1; i <= g.n; i++ {
		vpid := idStr(i)
		status := cyclePick(payroll.PaymentStatuses, i)

		var approvedBy, paidAt *string
		if isOneOf(status, payroll.StatusApproved, payroll.StatusPaid) {
			approvedBy = g.pickFrom(g.pools.finance)
		}
		if status == payroll.StatusPaid {
			paidAt = ptr(dateStr(processedTime))
		}
		amount := payroll.NewMoney(g.uniform(200, 20000))
		created := at(12+i, 0)

		g.ds.VendorPayments.Put(vpid, payroll.VendorPayment{
			VendorPaymentID:  vpid,
			VendorID:         idStr(i),
			InvoiceNo:        fmt.Sprintf("INV-2025%03d", i),
			Amount:           amount,
			Status:           status,
			ApprovedByUserID: approvedBy,
			PaidAt:           paidAt,
			CreatedAt:        stamp(created),
			UpdatedAt:        stamp(updatedAfter(created, 1)),
		})
	}
}

// auditedTables are the tables referenced by seeded audit rows.
var auditedTables = []string{
	payroll.TablePayrollRuns, payroll.TablePayrollLineItems, payroll.TableEmployeeDeductions,
	payroll.TableExpenseReimbursements, payroll.TableLeaveRequests, payroll.TableVendorPayments,
	payroll.TableBenefitsPlans, payroll.TableEmployeeBenefits, payroll.TableTimesheets,
}

var auditNewValues = []string{payroll.StatusApproved, payroll.StatusPaid, payroll.StatusDraft}

// auditLogs seeds historical entries. Create and delete rows carry no
// field-level change.
func (g *generator) auditLogs() {
	for i := 1; i <= g.n; i++ {
		aid := idStr(i)
		table := g.pick(auditedTables)
		action := cyclePick(payroll.AuditActions, i)

		row := payroll.AuditLog{
			AuditID:   aid,
			UserID:    g.wrapID(i),
			TableName: table,
			Action:    action,
			RecordID:  g.wrapID(i),
			Timestamp: stamp(at(50+i, 0)),
		}
		if !isOneOf(action, payroll.AuditActionCreate, payroll.AuditActionDelete) {
			row.Field = ptr("status")
			row.OldValue = ptr(payroll.StatusPending)
			row.NewValue = ptr(cyclePick(auditNewValues, i))
		}
		g.ds.AuditLogs.Put(aid, row)
	}
}
