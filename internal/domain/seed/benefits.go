package seed

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + strings.ToLower(s[1:])
}

// benefitsPlans closes every seventh plan at the end of 2026.
func (g *generator) benefitsPlans() {
	for i := 1; i <= g.n; i++ {
		pid := idStr(i)
		ptype := cyclePick(payroll.BenefitPlanTypes, i)

		var endDate *string
		status := payroll.StatusActive
		if i%7 == 0 {
			endDate = ptr(dateStr(date(2026, time.December, 31, 0)))
			status = payroll.StatusInactive
		}
		created := at(5+i, 0)

		g.ds.BenefitsPlans.Put(pid, payroll.BenefitsPlan{
			PlanID:                  pid,
			Name:                    fmt.Sprintf("%s Plan %s", capitalize(ptype), pid),
			PlanType:                ptype,
			Status:                  status,
			StartDate:               dateStr(date(2025, time.January, 1, 0)),
			EndDate:                 endDate,
			EmployerContributionPct: payroll.RoundTo(g.uniform(2.0, 6.0), 3),
			CreatedAt:               stamp(created),
			UpdatedAt:               stamp(updatedAfter(created, 1)),
		})
	}
}

// employeeBenefits derives the monthly contribution amount from the
// employee's base salary.
func (g *generator) employeeBenefits() {
	for i := 1; i <= g.n; i++ {
		ebid := idStr(i)
		emp, _ := g.ds.Employees.Get(idStr(i))
		status := cyclePick(payroll.LifecycleStatuses, i)
		pct := payroll.RoundTo(g.uniform(0.0, 10.0), 3)
		amount := payroll.MoneyFromDecimal(
			decimal.NewFromFloat(pct).Div(decimal.NewFromInt(100)).
				Mul(emp.SalaryBase.Decimal()).
				Div(decimal.NewFromInt(12)),
		)
		beneficiary := ""
		if g.chance(0.6) {
			beneficiary = g.fake.Name()
		}
		created := at(20+i, 0)

		g.ds.EmployeeBenefits.Put(ebid, payroll.EmployeeBenefit{
			EmployeeBenefitID:  ebid,
			EmployeeID:         idStr(i),
			PlanID:             g.wrapID(i),
			Status:             status,
			ContributionPct:    pct,
			ContributionAmount: amount,
			Beneficiary:        beneficiary,
			CreatedAt:          stamp(created),
			UpdatedAt:          stamp(updatedAfter(created, 1)),
		})
	}
}
