// Package server runs the HTTP surface of the payroll environment and
// feeds tool invocation events into the metrics registry.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/matiasleandrokruk/payrollenv/internal/api"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/env"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/eventbus"
	"github.com/matiasleandrokruk/payrollenv/internal/infra/metrics"
)

// Config holds HTTP server configuration.
type Config struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration // 0 keeps MCP event streams open
	IdleTimeout  time.Duration
}

// DefaultConfig returns default HTTP server configuration.
func DefaultConfig() Config {
	return Config{
		Addr:         ":8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 0,
		IdleTimeout:  60 * time.Second,
	}
}

// Deps are what the server serves and observes. Bus and Metrics are
// optional together: without them no invocation metrics are kept.
type Deps struct {
	Env     *env.Environment
	Bus     *eventbus.Bus
	Metrics *metrics.Metrics
	Logger  zerolog.Logger
}

// Server wraps the HTTP server and the metrics consumer.
type Server struct {
	config Config
	deps   Deps
	http   *http.Server

	events <-chan eventbus.Event
	wg     sync.WaitGroup
	once   sync.Once
}

// NewServer builds the router and subscribes to tool invocation events.
func NewServer(deps Deps, config Config) (*Server, error) {
	router, err := api.NewRouter(api.Deps{Env: deps.Env, Metrics: deps.Metrics, Logger: deps.Logger})
	if err != nil {
		return nil, fmt.Errorf("server: %w", err)
	}

	s := &Server{
		config: config,
		deps:   deps,
		http: &http.Server{
			Addr:         config.Addr,
			Handler:      router,
			ReadTimeout:  config.ReadTimeout,
			WriteTimeout: config.WriteTimeout,
			IdleTimeout:  config.IdleTimeout,
		},
	}
	if deps.Bus != nil && deps.Metrics != nil {
		s.events = deps.Bus.Subscribe(env.TopicToolInvoked)
		deps.Metrics.SetTableRows(deps.Env.Counts())
	}
	return s, nil
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler { return s.http.Handler }

// Start starts the metrics consumer and the HTTP server, and blocks until
// the server stops. A clean Shutdown returns nil.
func (s *Server) Start(ctx context.Context) error {
	s.startConsumer()
	s.deps.Logger.Info().Str("addr", s.http.Addr).Str("session_id", s.deps.Env.SessionID()).Msg("starting http server")
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server: listen: %w", err)
	}
	return nil
}

// Shutdown stops accepting requests, drains in-flight ones and stops the
// metrics consumer.
func (s *Server) Shutdown(ctx context.Context) error {
	s.deps.Logger.Info().Msg("shutting down server")

	if err := s.http.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown error: %w", err)
	}
	if s.deps.Bus != nil {
		s.deps.Bus.Close()
	}
	s.wg.Wait()

	s.deps.Logger.Info().Msg("server shutdown complete")
	return nil
}

func (s *Server) startConsumer() {
	if s.events == nil {
		return
	}
	s.once.Do(func() {
		s.wg.Add(1)
		go func() {
			defer s.wg.Done()
			s.consume(s.events)
		}()
	})
}

// consume runs until the bus closes the channel.
func (s *Server) consume(events <-chan eventbus.Event) {
	for evt := range events {
		inv, ok := evt.Payload.(env.InvocationEvent)
		if !ok {
			continue
		}
		s.deps.Metrics.ObserveTool(inv.Interface, inv.Tool, string(inv.Outcome), inv.Duration)
		if inv.AuditID != "" {
			s.deps.Metrics.SetTableRows(s.deps.Env.Counts())
		}
	}
}
