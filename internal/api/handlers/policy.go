package handlers

import (
	"net/http"

	"github.com/matiasleandrokruk/payrollenv/internal/domain/policy"
)

type PolicySource interface {
	Rules() []policy.Section
	Wiki() string
}

type PolicyHandler struct {
	src PolicySource
}

func NewPolicyHandler(src PolicySource) *PolicyHandler {
	return &PolicyHandler{src: src}
}

// GetPolicy handles GET /api/v1/policy.
func (h *PolicyHandler) GetPolicy(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"rules": h.src.Rules(), "wiki": h.src.Wiki()})
}
