package seed

import (
	"time"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

// roleMinimum is the floor for one privileged role at row count n.
type roleMinimum struct {
	role  string
	count func(n int) int
}

var privilegedRoles = []roleMinimum{
	{payroll.RoleManager, func(n int) int { return max(4, n/6) }},
	{payroll.RolePayrollAdministrator, func(n int) int { return max(3, n/10) }},
	{payroll.RoleFinanceOfficer, func(n int) int { return max(3, n/10) }},
	{payroll.RoleHRDirector, func(n int) int { return max(2, n/12) }},
	{payroll.RoleITAdministrator, func(n int) int { return max(2, n/12) }},
	{payroll.RoleComplianceOfficer, func(n int) int { return max(2, n/12) }},
}

// roleDistribution returns exactly n roles: the privileged minima first,
// padded with employees, shuffled. Minima are only cut when they alone
// exceed n.
func (g *generator) roleDistribution() []string {
	roles := make([]string, 0, g.n)
	for _, rm := range privilegedRoles {
		for range rm.count(g.n) {
			roles = append(roles, rm.role)
		}
	}
	for len(roles) < g.n {
		roles = append(roles, payroll.RoleEmployee)
	}
	roles = roles[:g.n]
	g.rnd.Shuffle(len(roles), func(i, j int) { roles[i], roles[j] = roles[j], roles[i] })
	return roles
}

func (g *generator) users() {
	roles := g.roleDistribution()
	for i := 1; i <= g.n; i++ {
		uid := idStr(i)
		role := roles[i-1]
		email := g.uniqueEmail()
		fullName := g.fake.Name()
		created := at(0, i)

		g.ds.Users.Put(uid, payroll.User{
			UserID:    uid,
			Email:     email,
			FullName:  fullName,
			Role:      role,
			Status:    payroll.StatusActive,
			CreatedAt: stamp(created),
			UpdatedAt: stamp(updatedAfter(created, 1)),
		})

		switch role {
		case payroll.RoleManager:
			g.pools.managers = append(g.pools.managers, uid)
		case payroll.RoleFinanceOfficer:
			g.pools.finance = append(g.pools.finance, uid)
		case payroll.RoleHRDirector:
			g.pools.hrDirectors = append(g.pools.hrDirectors, uid)
		case payroll.RolePayrollAdministrator:
			g.pools.payrollAdmins = append(g.pools.payrollAdmins, uid)
		}
	}
}

// employees ties employee i to user i regardless of the user's role.
func (g *generator) employees() {
	for i := 1; i <= g.n; i++ {
		eid := idStr(i)
		manager := g.pickFrom(g.pools.managers)
		department := g.pick(payroll.Departments)
		status := payroll.StatusActive
		if i%11 == 0 {
			status = g.pick(payroll.EmploymentStatuses)
		}
		salary := payroll.MoneyFromInt(g.randInt(60000, 140000))
		frequency := g.pick(payroll.PayFrequencies)
		created := at(i/2, 0)

		g.ds.Employees.Put(eid, payroll.Employee{
			EmployeeID:       eid,
			UserID:           idStr(i),
			ManagerUserID:    manager,
			Department:       department,
			HireDate:         dateStr(date(2024, time.January, 1, i*3)),
			EmploymentStatus: status,
			SalaryBase:       salary,
			PayFrequency:     frequency,
			CreatedAt:        stamp(created),
			UpdatedAt:        stamp(updatedAfter(created, 3)),
		})
	}
}

// timesheets creates one eight-hour entry per employee.
func (g *generator) timesheets() {
	for i := 1; i <= g.n; i++ {
		tid := idStr(i)
		approver := g.pickFrom(g.pools.payrollAdmins)
		created := at(30+i, 18)

		g.ds.Timesheets.Put(tid, payroll.Timesheet{
			TimesheetID:    tid,
			EmployeeID:     g.wrapID(i),
			WorkDate:       dateStr(date(2025, time.August, 1, i)),
			ClockIn:        stamp(at(30+i, 9)),
			ClockOut:       stamp(at(30+i, 17)),
			TotalHours:     8.0,
			Status:         cyclePick(payroll.TimesheetStatuses, i),
			ApproverUserID: approver,
			CreatedAt:      stamp(created),
			UpdatedAt:      stamp(updatedAfter(created, 1)),
		})
	}
}
