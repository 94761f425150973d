// Package api wires the payroll environment onto a chi router: the REST
// endpoints, one MCP endpoint per interface and the metrics scrape.
package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/payrollenv/internal/api/handlers"
	"github.com/matiasleandrokruk/payrollenv/internal/api/mcptools"
	apmiddleware "github.com/matiasleandrokruk/payrollenv/internal/api/middleware"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/env"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/metrics"
)

var ErrMissingEnvironment = errors.New("api: environment is required")

// Deps are the collaborators of the router. Metrics is optional.
type Deps struct {
	Env     *env.Environment
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// NewRouter creates and configures a new chi router with all routes.
func NewRouter(d Deps) (*chi.Mux, error) {
	if d.Env == nil {
		return nil, ErrMissingEnvironment
	}

	names := make([]string, 0, 5)
	for _, info := range d.Env.Interfaces() {
		names = append(names, info.Name)
	}
	servers, err := mcptools.Servers(d.Env, names)
	if err != nil {
		return nil, fmt.Errorf("api: %w", err)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	// A nil *Metrics must not reach the middleware as a non-nil observer.
	if d.Metrics != nil {
		r.Use(apmiddleware.AccessLog(d.Logger, d.Metrics))
	} else {
		r.Use(apmiddleware.AccessLog(d.Logger, nil))
	}
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"ok"}`)) //nolint:errcheck
	})

	if d.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", d.Metrics.Handler())
	}

	// Streamable MCP transport: POST for calls, GET for the event stream,
	// DELETE to end a session.
	r.Handle("/mcp/{iface}", mcptools.NewHandler(servers))

	interfaceHandler := handlers.NewInterfaceHandler(d.Env)
	tableHandler := handlers.NewTableHandler(d.Env)
	policyHandler := handlers.NewPolicyHandler(d.Env)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/interfaces", func(r chi.Router) {
			r.Get("/", interfaceHandler.ListInterfaces)                  // GET /api/v1/interfaces
			r.Get("/{iface}/tools", interfaceHandler.ListTools)          // GET /api/v1/interfaces/{iface}/tools
			r.Post("/{iface}/tools/{tool}", interfaceHandler.InvokeTool) // POST /api/v1/interfaces/{iface}/tools/{tool}
		})
		r.Route("/tables", func(r chi.Router) {
			r.Get("/", tableHandler.ListTables)
			r.Get("/{table}", tableHandler.GetTable)
		})
		r.Get("/policy", policyHandler.GetPolicy)
	})

	return r, nil
}
