package main

import (
	"context"
	"errors"
	"io"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/payrollenv/internal/api/mcptools"
)

// runMCP speaks MCP on stdin/stdout; logs stay on stderr.
func runMCP(ctx context.Context, a *app, args []string) int {
	fs := newFlagSet("mcp")
	dataDir := a.dataFlag(fs)
	if err := fs.Parse(args); err != nil || fs.NArg() != 1 {
		a.log.Error().Msg("usage: payrollenv mcp [--data DIR] <interface>")
		return 2
	}
	iface := fs.Arg(0)

	e, err := a.newEnvironment(*dataDir, nil)
	if err != nil {
		a.log.Error().Err(err).Msg("load environment")
		return 1
	}
	server, err := mcptools.NewServer(e, iface)
	if err != nil {
		a.log.Error().Err(err).Str("interface", iface).Msg("build mcp server")
		return 1
	}

	a.log.Info().Str("interface", iface).Str("session_id", e.SessionID()).Msg("serving mcp over stdio")
	err = server.Run(ctx, &mcp.IOTransport{Reader: io.NopCloser(a.stdin), Writer: nopWriteCloser{a.out}})
	if err != nil && !errors.Is(err, context.Canceled) {
		a.log.Error().Err(err).Msg("mcp session ended")
		return 1
	}
	return 0
}

// nopWriteCloser keeps the process stdout open when the session ends.
type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }
