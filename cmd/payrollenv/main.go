// payrollenv serves the payroll environment to agent harnesses and checks
// seeded datasets.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/env"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/policy"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/config"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/eventbus"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/logger"
	"github.com/matiasleandrokruk/payrollenv/internal/version"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// command is one subcommand. Exit codes: 0 ok, 1 failure, 2 usage.
type command func(ctx context.Context, app *app, args []string) int

var commands = map[string]command{
	"serve":   runServe,
	"mcp":     runMCP,
	"check":   runCheck,
	"inspect": runInspect,
}

// app carries what every subcommand shares.
type app struct {
	cfg    config.Config
	log    zerolog.Logger
	stdin  io.Reader
	out    io.Writer
	errOut io.Writer
}

func run(ctx context.Context, args []string, stdin io.Reader, out, errOut io.Writer) int {
	fs := flag.NewFlagSet("payrollenv", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	showVersion := fs.Bool("version", false, "Show version information")
	showHelp := fs.Bool("help", false, "Show help")

	if err := fs.Parse(args); err != nil {
		return 2
	}

	if *showVersion {
		fmt.Fprintln(out, version.String("payrollenv")) //nolint:errcheck
		return 0
	}

	rest := fs.Args()
	if *showHelp || len(rest) == 0 {
		printHelp(out)
		return 0
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(errOut, "unknown command %q\n", rest[0]) //nolint:errcheck
		printHelp(errOut)
		return 2
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(errOut, err) //nolint:errcheck
		return 1
	}
	a := &app{
		cfg:    cfg,
		log:    logger.New(logger.Config{Format: cfg.LogFormat, Level: cfg.LogLevel}, errOut),
		stdin:  stdin,
		out:    out,
		errOut: errOut,
	}
	return cmd(ctx, a, rest[1:])
}

// dataFlag registers the --data override shared by every subcommand.
func (a *app) dataFlag(fs *flag.FlagSet) *string {
	return fs.String("data", a.cfg.DataDir, "Dataset directory written by seed")
}

func (a *app) loadDataset(dir string) (*payroll.Dataset, error) {
	ds, err := payroll.LoadDir(dir)
	if err != nil {
		return nil, err
	}
	a.log.Debug().Str("dir", dir).Int("audit_rows", ds.AuditLogs.Len()).Msg("dataset loaded")
	return ds, nil
}

func (a *app) newEnvironment(dir string, bus eventbus.EventBus) (*env.Environment, error) {
	ds, err := a.loadDataset(dir)
	if err != nil {
		return nil, err
	}
	pol, err := policy.Load()
	if err != nil {
		return nil, err
	}
	return env.New(ds, pol, env.Options{Bus: bus, Logger: &a.log})
}

func newFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	return fs
}

func printHelp(out io.Writer) {
	helpText := `payrollenv - payroll mock environment for agent evaluation

Usage:
  payrollenv [options] <command> [command options]

Options:
  --version    Show version information
  --help       Show this help message

Commands:
  serve                HTTP API, /mcp/{interface} and /metrics
  mcp <interface>      MCP server over stdio for one interface
  check                Verify dataset integrity (exit 1 on violations)
  inspect              Row counts and a sample row per table

Command options:
  --data DIR           Dataset directory (default PAYROLL_DATA_DIR or "data")
  --addr ADDR          Listen address for serve (default PAYROLL_HTTP_ADDR or ":8080")

Examples:
  payrollenv serve --addr :9090
  payrollenv mcp interface_3
  payrollenv check --data ./data`
	fmt.Fprintln(out, helpText) //nolint:errcheck
}
