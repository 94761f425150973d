package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/integrity"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

func runCheck(ctx context.Context, a *app, args []string) int {
	fs := newFlagSet("check")
	dataDir := a.dataFlag(fs)
	asJSON := fs.Bool("json", false, "Print the report as JSON")
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ds, err := a.loadDataset(*dataDir)
	if err != nil {
		a.log.Error().Err(err).Msg("load dataset")
		return 1
	}
	report, err := integrity.Check(ctx, ds)
	if err != nil {
		a.log.Error().Err(err).Msg("integrity check")
		return 1
	}

	if *asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(report); err != nil {
			a.log.Error().Err(err).Msg("encode report")
			return 1
		}
	} else {
		for _, v := range report.Violations {
			fmt.Fprintln(a.out, v.String()) //nolint:errcheck
		}
		fmt.Fprintf(a.out, "%d tables, %d rows, %d violations\n", report.Tables, report.Rows, len(report.Violations)) //nolint:errcheck
	}

	if !report.OK() {
		return 1
	}
	return 0
}

// runInspect prints row counts, then the first record of every table.
func runInspect(_ context.Context, a *app, args []string) int {
	fs := newFlagSet("inspect")
	dataDir := a.dataFlag(fs)
	if err := fs.Parse(args); err != nil {
		return 2
	}

	ds, err := a.loadDataset(*dataDir)
	if err != nil {
		a.log.Error().Err(err).Msg("load dataset")
		return 1
	}

	counts := ds.Counts()
	for _, name := range payroll.TableNames() {
		fmt.Fprintf(a.out, "%s: %d rows\n", name, counts[name]) //nolint:errcheck
	}

	fmt.Fprintln(a.out, "\n--- sample rows ---") //nolint:errcheck
	for _, name := range payroll.TableNames() {
		first, row, err := sampleRow(ds, name)
		if err != nil {
			a.log.Error().Err(err).Str("table", name).Msg("sample row")
			return 1
		}
		if first == "" {
			fmt.Fprintf(a.out, "%s: <empty>\n", name) //nolint:errcheck
			continue
		}
		fmt.Fprintf(a.out, "%s[%s]: %s\n", name, first, row) //nolint:errcheck
	}
	return 0
}

func sampleRow(ds *payroll.Dataset, name string) (string, string, error) {
	ids, err := ds.TableIDs(name)
	if err != nil || len(ids) == 0 {
		return "", "", err
	}
	raw, err := ds.EncodeTable(name)
	if err != nil {
		return "", "", err
	}
	var records map[string]json.RawMessage
	if err := json.Unmarshal(raw, &records); err != nil {
		return "", "", err
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, records[ids[0]]); err != nil {
		return "", "", err
	}
	return ids[0], buf.String(), nil
}
