package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

func (g *generator) payrollRuns() {
	for i := 1; i <= g.n; i++ {
		rid := idStr(i)
		periodStart := date(2025, time.August, 1, (i-1)*14)
		initiatedBy := idStr(1)
		if len(g.pools.payrollAdmins) > 0 {
			initiatedBy = g.pick(g.pools.payrollAdmins)
		}
		status := cyclePick(payroll.PayrollRunStatuses, i)

		var approvedBy, processedAt *string
		if isOneOf(status, payroll.StatusApproved, payroll.StatusPaid) {
			approvedBy = g.pickFrom(g.pools.finance)
			processedAt = ptr(stamp(processedTime))
		}
		created := at(40+i, 0)

		g.ds.PayrollRuns.Put(rid, payroll.PayrollRun{
			PayrollRunID:      rid,
			PeriodStart:       dateStr(periodStart),
			PeriodEnd:         dateStr(periodStart.AddDate(0, 0, 13)),
			Status:            status,
			InitiatedByUserID: initiatedBy,
			ApprovedByUserID:  approvedBy,
			ProcessedAt:       processedAt,
			CreatedAt:         stamp(created),
			UpdatedAt:         stamp(updatedAfter(created, 2)),
		})
	}
}

// payrollLineItems creates one line item per run, rotating employees.
// Net pay is derived from gross and deductions, never sampled.
func (g *generator) payrollLineItems() {
	for i := 1; i <= g.n; i++ {
		lid := idStr(i)
		gross := payroll.MoneyFromInt(g.randInt(1500, 6000))
		deductions := payroll.MoneyFromDecimal(gross.Decimal().Mul(decimal.NewFromFloat(g.uniform(0.1, 0.3))))
		net := gross.Sub(deductions)
		created := at(41+i, 0)

		g.ds.PayrollLineItems.Put(lid, payroll.PayrollLineItem{
			LineItemID:      lid,
			PayrollRunID:    idStr(i),
			EmployeeID:      g.wrapID(i),
			GrossPay:        gross,
			TotalDeductions: deductions,
			NetPay:          net,
			CreatedAt:       stamp(created),
			UpdatedAt:       stamp(updatedAfter(created, 1)),
		})
	}
}

func deductionRate(method string, i int) float64 {
	if method == payroll.MethodPercent {
		return float64(10 + i%5)
	}
	return float64(25 + i%20)
}

func (g *generator) deductions() {
	for i := 1; i <= g.n; i++ {
		did := idStr(i)
		dtype := cyclePick(payroll.DeductionTypes, i)
		method := cyclePick(payroll.CalcMethods, i+7)
		created := at(10+i, 0)

		g.ds.Deductions.Put(did, payroll.Deduction{
			DeductionID:   did,
			Name:          fmt.Sprintf("%s_%s", strings.ToUpper(dtype), did),
			DeductionType: dtype,
			Method:        method,
			Rate:          deductionRate(method, i),
			Active:        i%9 != 0,
			CreatedAt:     stamp(created),
			UpdatedAt:     stamp(updatedAfter(created, 1)),
		})
	}
}

// employeeDeductions pairs employee i with deduction i and copies its terms.
// Every eighth mapping is closed with an end date and marked inactive.
func (g *generator) employeeDeductions() {
	for i := 1; i <= g.n; i++ {
		edid := idStr(i)
		deduction, _ := g.ds.Deductions.Get(idStr(i))

		var endDate *string
		if i%8 == 0 {
			endDate = ptr(dateStr(date(2026, time.January, 1, i)))
		}
		created := at(15+i, 0)

		g.ds.EmployeeDeductions.Put(edid, payroll.EmployeeDeduction{
			EmployeeDeductionID: edid,
			EmployeeID:          idStr(i),
			DeductionID:         idStr(i),
			Method:              deduction.Method,
			Rate:                deduction.Rate,
			StartDate:           dateStr(date(2025, time.January, 1, i*5)),
			EndDate:             endDate,
			Active:              endDate == nil,
			CreatedAt:           stamp(created),
			UpdatedAt:           stamp(updatedAfter(created, 1)),
		})
	}
}

func (g *generator) payrollCorrections() {
	for i := 1; i <= g.n; i++ {
		cid := idStr(i)
		field := g.pick(payroll.CorrectionFields)
		oldValue := decimal.NewFromFloat(g.uniform(1000, 6000)).Round(2)
		newValue := oldValue.Mul(decimal.NewFromFloat(g.uniform(0.95, 1.05))).Round(2)
		approvedBy := g.pickFrom(g.pools.finance)
		created := at(45+i, 0)

		g.ds.PayrollCorrections.Put(cid, payroll.PayrollCorrection{
			CorrectionID:     cid,
			PayrollRunID:     idStr(i),
			EmployeeID:       g.wrapID(i),
			Reason:           "Adjustment for " + field,
			FieldChanged:     field,
			OldValue:         oldValue.String(),
			NewValue:         newValue.String(),
			ApprovedByUserID: approvedBy,
			CreatedAt:        stamp(created),
			UpdatedAt:        stamp(updatedAfter(created, 2)),
		})
	}
}
