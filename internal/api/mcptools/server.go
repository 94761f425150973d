// Package mcptools exposes each payroll interface as an MCP server.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/tool"
	"github.com/matiasleandrokruk/payrollenv/internal/version"
)

// Invoker is the part of env.Environment the MCP servers call.
type Invoker interface {
	Tools(iface string) ([]tool.Descriptor, error)
	Invoke(ctx context.Context, iface, name string, args json.RawMessage) (string, error)
}

// NewServer builds an MCP server carrying the tools of one interface. Tool
// parameters are published unchanged as the input schema.
func NewServer(inv Invoker, iface string) (*mcp.Server, error) {
	descs, err := inv.Tools(iface)
	if err != nil {
		return nil, fmt.Errorf("mcptools: %w", err)
	}

	server := mcp.NewServer(&mcp.Implementation{Name: "payrollenv-" + iface, Version: version.Version}, nil)
	for _, d := range descs {
		server.AddTool(&mcp.Tool{
			Name:        d.Function.Name,
			Description: d.Function.Description,
			InputSchema: d.Function.Parameters,
		}, handler(inv, iface, d.Function.Name))
	}
	return server, nil
}

// handler returns the tool result as a single text content. Halts are
// ordinary results; only invocation failures set IsError.
func handler(inv Invoker, iface, name string) mcp.ToolHandler {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args json.RawMessage
		if req.Params != nil {
			args = req.Params.Arguments
		}
		out, err := inv.Invoke(ctx, iface, name, args)
		if err != nil {
			return &mcp.CallToolResult{
				IsError: true,
				Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
			}, nil
		}
		return &mcp.CallToolResult{Content: []mcp.Content{&mcp.TextContent{Text: out}}}, nil
	}
}

// Servers builds one server per interface name.
func Servers(inv Invoker, ifaces []string) (map[string]*mcp.Server, error) {
	out := make(map[string]*mcp.Server, len(ifaces))
	for _, iface := range ifaces {
		s, err := NewServer(inv, iface)
		if err != nil {
			return nil, err
		}
		out[iface] = s
	}
	return out, nil
}

// NewHandler serves the streamable HTTP transport for the interface named
// by the {iface} route parameter.
func NewHandler(servers map[string]*mcp.Server) http.Handler {
	streamable := mcp.NewStreamableHTTPHandler(func(r *http.Request) *mcp.Server {
		return servers[chi.URLParam(r, "iface")]
	}, nil)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := servers[chi.URLParam(r, "iface")]; !ok {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"unknown interface"}`))
			return
		}
		streamable.ServeHTTP(w, r)
	})
}
