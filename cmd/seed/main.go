// seed writes the synthetic payroll dataset as one JSON file per table.
// The output directory comes from PAYROLL_DATA_DIR (default "data").
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/seed"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/config"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/logger"
	"github.com/matiasleandrokruk/payrollenv/internal/version"
)

// Fixed so every run reproduces the same dataset.
const (
	rows      = seed.DefaultRows
	seedValue = seed.DefaultSeed
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("seed", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String("seed")) //nolint:errcheck
		return 0
	}

	if *showHelp {
		printHelp(out)
		return 0
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errOut, err) //nolint:errcheck
		return 1
	}
	log := logger.New(logger.Config{Format: cfg.LogFormat, Level: cfg.LogLevel}, errOut)

	ds, err := seed.Generate(seed.Options{Rows: rows, Seed: seedValue})
	if err != nil {
		log.Error().Err(err).Msg("generate dataset")
		return 1
	}
	if err := payroll.WriteDir(cfg.DataDir, ds); err != nil {
		log.Error().Err(err).Str("dir", cfg.DataDir).Msg("write dataset")
		return 1
	}

	tables := len(payroll.TableNames())
	log.Debug().Int("tables", tables).Int("rows", rows).Uint64("seed", seedValue).Str("dir", cfg.DataDir).Msg("dataset written")
	fmt.Fprintf(out, "Seeded %d tables to: %s\n", tables, cfg.DataDir) //nolint:errcheck
	return 0
}

func printHelp(out io.Writer) {
	helpText := `seed - write the synthetic payroll dataset

Usage:
  seed [options]

Options:
  --version    Show version information
  --help       Show this help message

Environment:
  PAYROLL_DATA_DIR     Output directory (default "data")
  PAYROLL_LOG_LEVEL    trace, debug, info, warn, error
  PAYROLL_LOG_FORMAT   console or json`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
