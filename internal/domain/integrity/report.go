// Package integrity verifies a payroll dataset: referential integrity,
// role pools, conditional fields and derived amounts. Tables are mirrored
// into an in-memory SQLite database so references and document rules are
// checked with SQL.
package integrity

import (
	"fmt"
	"sort"
)

// Violation is one broken rule on one record.
type Violation struct {
	Rule     string `json:"rule"`
	Table    string `json:"table"`
	RecordID string `json:"record_id"`
	Detail   string `json:"detail"`
}

func (v Violation) String() string {
	return fmt.Sprintf("%s %s[%s]: %s", v.Rule, v.Table, v.RecordID, v.Detail)
}

// Report is the result of Check.
type Report struct {
	Tables     int         `json:"tables"`
	Rows       int         `json:"rows"`
	Violations []Violation `json:"violations"`
}

// OK reports whether no rule was broken.
func (r Report) OK() bool { return len(r.Violations) == 0 }

// ByRule counts violations per rule name.
func (r Report) ByRule() map[string]int {
	out := make(map[string]int)
	for _, v := range r.Violations {
		out[v.Rule]++
	}
	return out
}

func (r *Report) add(v Violation) { r.Violations = append(r.Violations, v) }

func (r *Report) sort() {
	sort.SliceStable(r.Violations, func(i, j int) bool {
		a, b := r.Violations[i], r.Violations[j]
		if a.Rule != b.Rule {
			return a.Rule < b.Rule
		}
		return a.Table < b.Table
	})
}
