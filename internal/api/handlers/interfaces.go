// Package handlers serves the payroll environment over HTTP.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/env"
	"github.com/matiasleandrokruk/payrollenv/internal/domain/tool"
)

// ToolService is the part of env.Environment the tool endpoints use.
type ToolService interface {
	Interfaces() []env.InterfaceInfo
	Tools(iface string) ([]tool.Descriptor, error)
	Invoke(ctx context.Context, iface, name string, args json.RawMessage) (string, error)
}

type InterfaceHandler struct {
	svc ToolService
}

func NewInterfaceHandler(svc ToolService) *InterfaceHandler {
	return &InterfaceHandler{svc: svc}
}

// ListInterfaces handles GET /api/v1/interfaces.
func (h *InterfaceHandler) ListInterfaces(w http.ResponseWriter, r *http.Request) {
	items := h.svc.Interfaces()
	writeJSON(w, http.StatusOK, map[string]any{"data": items, "meta": map[string]int{"total": len(items)}})
}

// ListTools handles GET /api/v1/interfaces/{iface}/tools.
func (h *InterfaceHandler) ListTools(w http.ResponseWriter, r *http.Request) {
	descs, err := h.svc.Tools(chi.URLParam(r, "iface"))
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": descs, "meta": map[string]int{"total": len(descs)}})
}

// InvokeTool handles POST /api/v1/interfaces/{iface}/tools/{tool}. The body
// is the argument object; the response body is the tool result verbatim,
// including halt payloads.
func (h *InterfaceHandler) InvokeTool(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	out, err := h.svc.Invoke(r.Context(), chi.URLParam(r, "iface"), chi.URLParam(r, "tool"), body)
	if err != nil {
		writeToolError(w, err)
		return
	}
	writeRaw(w, http.StatusOK, []byte(out))
}

func writeToolError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, env.ErrUnknownInterface), errors.Is(err, tool.ErrToolNotRegistered):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, tool.ErrToolValidationFailed):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeError(w, http.StatusServiceUnavailable, "request cancelled")
	default:
		writeError(w, http.StatusInternalServerError, "tool invocation failed")
	}
}
