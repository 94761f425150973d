package integrity

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/sqlite"
)

// Check mirrors every table of ds into a fresh in-memory database and
// evaluates the dataset rules. A returned error means the check could not
// run; broken rules are reported as violations.
func Check(ctx context.Context, ds *payroll.Dataset) (Report, error) {
	db, err := sqlite.NewDB(sqlite.MemoryPath)
	if err != nil {
		return Report{}, fmt.Errorf("integrity: %w", err)
	}
	defer db.Close()

	if err := sqlite.MigrateUp(ctx, db); err != nil {
		return Report{}, fmt.Errorf("integrity: %w", err)
	}

	conn, err := db.Conn(ctx)
	if err != nil {
		return Report{}, fmt.Errorf("integrity: pin connection: %w", err)
	}
	defer conn.Close()

	// Dangling references must load so foreign_key_check can report them.
	if _, err := conn.ExecContext(ctx, "PRAGMA foreign_keys = OFF"); err != nil {
		return Report{}, fmt.Errorf("integrity: disable foreign keys: %w", err)
	}

	var report Report
	keys, err := load(ctx, conn, ds, &report)
	if err != nil {
		return Report{}, err
	}
	if err := checkForeignKeys(ctx, conn, keys, &report); err != nil {
		return Report{}, err
	}
	for _, rules := range [][]sqlRule{roleRules, fieldRules} {
		for _, r := range rules {
			if err := runRule(ctx, conn, r, &report); err != nil {
				return Report{}, err
			}
		}
	}
	checkSequentialIDs(ds, &report)
	checkNetPay(ds, &report)

	report.sort()
	return report, nil
}

// load inserts every record and returns the key column of each table.
func load(ctx context.Context, conn *sql.Conn, ds *payroll.Dataset, report *Report) (map[string]string, error) {
	tx, err := conn.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("integrity: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	keys := make(map[string]string)
	for _, name := range payroll.TableNames() {
		cols, err := sqlite.Columns(ctx, tx, name)
		if err != nil {
			return nil, fmt.Errorf("integrity: %w", err)
		}
		keys[name] = cols[0]
		if err := loadTable(ctx, tx, ds, name, cols, report); err != nil {
			return nil, err
		}
		report.Tables++
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("integrity: commit: %w", err)
	}
	return keys, nil
}

func loadTable(ctx context.Context, tx *sql.Tx, ds *payroll.Dataset, name string, cols []string, report *Report) error {
	raw, err := ds.EncodeTable(name)
	if err != nil {
		return fmt.Errorf("integrity: encode %s: %w", name, err)
	}
	var records map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return fmt.Errorf("integrity: decode %s: %w", name, err)
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(cols)), ", ")
	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO %s (%s) VALUES (%s)", name, strings.Join(cols, ", "), placeholders))
	if err != nil {
		return fmt.Errorf("integrity: prepare %s: %w", name, err)
	}
	defer stmt.Close()

	ids, err := ds.TableIDs(name)
	if err != nil {
		return fmt.Errorf("integrity: %w", err)
	}
	for _, key := range ids {
		fields, doc, err := decodeRecord(records[key])
		if err != nil {
			return fmt.Errorf("integrity: %s[%s]: %w", name, key, err)
		}
		if got := columnValue(fields[cols[0]]); got != key {
			report.add(Violation{Rule: "key_mismatch", Table: name, RecordID: key,
				Detail: fmt.Sprintf("%s is %v", cols[0], got)})
		}
		checkTimestamps(name, key, fields, report)

		args := make([]any, len(cols))
		for i, c := range cols {
			if c == "doc" {
				args[i] = doc
				continue
			}
			args[i] = columnValue(fields[c])
		}
		if _, err := stmt.ExecContext(ctx, args...); err != nil {
			report.add(Violation{Rule: "constraint", Table: name, RecordID: key, Detail: err.Error()})
			continue
		}
		report.Rows++
	}
	return nil
}

func decodeRecord(rec json.RawMessage) (map[string]any, string, error) {
	dec := json.NewDecoder(bytes.NewReader(rec))
	dec.UseNumber()
	var fields map[string]any
	if err := dec.Decode(&fields); err != nil {
		return nil, "", err
	}
	var doc bytes.Buffer
	if err := json.Compact(&doc, rec); err != nil {
		return nil, "", err
	}
	return fields, doc.String(), nil
}

// columnValue maps a decoded JSON value onto a SQLite bind parameter.
func columnValue(v any) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func checkTimestamps(table, key string, fields map[string]any, report *Report) {
	created, ok1 := fields["created_at"].(string)
	updated, ok2 := fields["updated_at"].(string)
	if !ok1 || !ok2 {
		return
	}
	c, err1 := time.Parse(payroll.TimestampLayout, created)
	u, err2 := time.Parse(payroll.TimestampLayout, updated)
	if err1 != nil || err2 != nil {
		report.add(Violation{Rule: "timestamp_format", Table: table, RecordID: key,
			Detail: fmt.Sprintf("created_at %q updated_at %q", created, updated)})
		return
	}
	if u.Sub(c) < time.Hour {
		report.add(Violation{Rule: "updated_after_created", Table: table, RecordID: key,
			Detail: fmt.Sprintf("updated_at %s is less than an hour after %s", updated, created)})
	}
}

type fkFailure struct {
	table  string
	rowid  int64
	parent string
	fkid   int
}

func checkForeignKeys(ctx context.Context, conn *sql.Conn, keys map[string]string, report *Report) error {
	rows, err := conn.QueryContext(ctx, "PRAGMA foreign_key_check")
	if err != nil {
		return fmt.Errorf("integrity: foreign_key_check: %w", err)
	}
	var failures []fkFailure
	for rows.Next() {
		var f fkFailure
		if err := rows.Scan(&f.table, &f.rowid, &f.parent, &f.fkid); err != nil {
			rows.Close()
			return fmt.Errorf("integrity: foreign_key_check: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return fmt.Errorf("integrity: foreign_key_check: %w", err)
	}
	rows.Close()

	for _, f := range failures {
		var id, column string
		q := fmt.Sprintf("SELECT %s FROM %s WHERE rowid = ?", keys[f.table], f.table)
		if err := conn.QueryRowContext(ctx, q, f.rowid).Scan(&id); err != nil {
			return fmt.Errorf("integrity: resolve %s rowid %d: %w", f.table, f.rowid, err)
		}
		err := conn.QueryRowContext(ctx,
			`SELECT "from" FROM pragma_foreign_key_list(?) WHERE id = ?`, f.table, f.fkid).Scan(&column)
		if err != nil {
			return fmt.Errorf("integrity: resolve %s fk %d: %w", f.table, f.fkid, err)
		}
		report.add(Violation{Rule: "foreign_key", Table: f.table, RecordID: id,
			Detail: fmt.Sprintf("%s references a missing %s row", column, f.parent)})
	}
	return nil
}

func runRule(ctx context.Context, conn *sql.Conn, r sqlRule, report *Report) error {
	rows, err := conn.QueryContext(ctx, r.query)
	if err != nil {
		return fmt.Errorf("integrity: rule %s: %w", r.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var id string
		var detail sql.NullString
		if err := rows.Scan(&id, &detail); err != nil {
			return fmt.Errorf("integrity: rule %s: %w", r.name, err)
		}
		report.add(Violation{Rule: r.name, Table: r.table, RecordID: id, Detail: detail.String})
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("integrity: rule %s: %w", r.name, err)
	}
	return nil
}

func checkSequentialIDs(ds *payroll.Dataset, report *Report) {
	for _, name := range payroll.TableNames() {
		ids, _ := ds.TableIDs(name)
		for i, id := range ids {
			if want := strconv.Itoa(i + 1); id != want {
				report.add(Violation{Rule: "sequential_ids", Table: name, RecordID: id,
					Detail: fmt.Sprintf("position %d expected id %s", i+1, want)})
				break
			}
		}
	}
}

func checkNetPay(ds *payroll.Dataset, report *Report) {
	for _, li := range ds.PayrollLineItems.Rows() {
		want := li.GrossPay.Sub(li.TotalDeductions)
		if !li.NetPay.Equal(want) {
			report.add(Violation{Rule: "net_pay", Table: payroll.TablePayrollLineItems, RecordID: li.LineItemID,
				Detail: fmt.Sprintf("net %s, gross %s minus deductions %s is %s", li.NetPay, li.GrossPay, li.TotalDeductions, want)})
		}
		if !li.TotalDeductions.Decimal().LessThan(li.GrossPay.Decimal()) {
			report.add(Violation{Rule: "deductions_below_gross", Table: payroll.TablePayrollLineItems, RecordID: li.LineItemID,
				Detail: fmt.Sprintf("deductions %s, gross %s", li.TotalDeductions, li.GrossPay)})
		}
	}
}
