package seed

import (
	"math/rand/v2"
	"strconv"
	"time"

	"github.com/brianvoe/gofakeit/v7"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

// generator carries the state of one run. Nothing outlives Generate.
type generator struct {
	n    int
	rnd  *rand.Rand
	fake *gofakeit.Faker
	ds   *payroll.Dataset

	emails map[string]struct{}
	pools  rolePools
}

// rolePools holds user IDs per privileged role, in user-ID order.
type rolePools struct {
	managers      []string
	finance       []string
	hrDirectors   []string
	payrollAdmins []string
}

// Generate builds all sixteen tables. The table order is part of the
// contract: reordering any step changes every value drawn after it.
func Generate(opts Options) (*payroll.Dataset, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	g := &generator{
		n:      opts.Rows,
		rnd:    rand.New(rand.NewPCG(opts.Seed, opts.Seed)),
		fake:   gofakeit.New(opts.Seed),
		ds:     payroll.NewDataset(),
		emails: make(map[string]struct{}, opts.Rows),
	}

	steps := []func(){
		g.users,
		g.employees,
		g.timesheets,
		g.payrollRuns,
		g.payrollLineItems,
		g.deductions,
		g.employeeDeductions,
		g.payrollCorrections,
		g.benefitsPlans,
		g.employeeBenefits,
		g.expenseReimbursements,
		g.leaveRequests,
		g.approvals,
		g.vendors,
		g.vendorPayments,
		g.auditLogs,
	}
	for _, step := range steps {
		step()
	}

	return g.ds, nil
}

func idStr(i int) string { return strconv.Itoa(i) }

// wrapID maps a 1-based row index onto 1..n.
func (g *generator) wrapID(i int) string { return idStr(((i - 1) % g.n) + 1) }

// at returns baseTime shifted by days and hours.
func at(days, hours int) time.Time {
	return baseTime.AddDate(0, 0, days).Add(time.Duration(hours) * time.Hour)
}

// updatedAfter returns created plus at least one hour.
func updatedAfter(created time.Time, minHours int) time.Time {
	return created.Add(time.Duration(max(1, minHours)) * time.Hour)
}

func stamp(t time.Time) string { return t.Format(payroll.TimestampLayout) }

func date(year int, month time.Month, day, plusDays int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC).AddDate(0, 0, plusDays)
}

func dateStr(t time.Time) string { return t.Format(payroll.DateLayout) }

func cyclePick(seq []string, idx int) string { return seq[idx%len(seq)] }

func ptr(s string) *string { return &s }

// pick draws one element of a non-empty slice.
func (g *generator) pick(seq []string) string {
	return seq[g.rnd.IntN(len(seq))]
}

// pickFrom draws from pool, or returns nil without consuming the PRNG
// when the pool is empty.
func (g *generator) pickFrom(pool []string) *string {
	if len(pool) == 0 {
		return nil
	}
	return ptr(g.pick(pool))
}

// randInt returns an integer in [lo, hi].
func (g *generator) randInt(lo, hi int) int {
	return lo + g.rnd.IntN(hi-lo+1)
}

// uniform returns a float in [lo, hi).
func (g *generator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rnd.Float64()
}

func (g *generator) chance(p float64) bool {
	return g.rnd.Float64() < p
}

// uniqueEmail keeps drawing until the address has not been handed out yet.
func (g *generator) uniqueEmail() string {
	for {
		email := g.fake.Email()
		if _, seen := g.emails[email]; !seen {
			g.emails[email] = struct{}{}
			return email
		}
	}
}

func isOneOf(v string, set ...string) bool {
	return payroll.Contains(set, v)
}
