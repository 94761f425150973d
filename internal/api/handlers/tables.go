package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/payroll"
)

// TableService reads the live dataset.
type TableService interface {
	EncodeTable(name string) ([]byte, error)
	Counts() map[string]int
}

type TableHandler struct {
	svc TableService
}

func NewTableHandler(svc TableService) *TableHandler {
	return &TableHandler{svc: svc}
}

type tableSummary struct {
	Name string `json:"name"`
	Rows int    `json:"rows"`
}

// ListTables handles GET /api/v1/tables.
func (h *TableHandler) ListTables(w http.ResponseWriter, r *http.Request) {
	counts := h.svc.Counts()
	out := make([]tableSummary, 0, len(counts))
	for _, name := range payroll.TableNames() {
		out = append(out, tableSummary{Name: name, Rows: counts[name]})
	}
	writeJSON(w, http.StatusOK, map[string]any{"data": out, "meta": map[string]int{"total": len(out)}})
}

// GetTable handles GET /api/v1/tables/{table}: the table in its on-disk
// form, keyed by record ID.
func (h *TableHandler) GetTable(w http.ResponseWriter, r *http.Request) {
	raw, err := h.svc.EncodeTable(chi.URLParam(r, "table"))
	if errors.Is(err, payroll.ErrUnknownTable) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to encode table")
		return
	}
	writeRaw(w, http.StatusOK, raw)
}
