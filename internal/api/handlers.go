package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"powerflow/pkg/mpcase"
	"powerflow/pkg/solver"
)

// PFRequest is the run_pf request body. Case accepts either full
// bus/gen/branch tables or a {"case_id": ...} stub for a bundled case.
type PFRequest struct {
	Case    map[string]any `json:"case" binding:"required"`
	Method  string         `json:"method"`
	Options map[string]any `json:"options"`
}

// Handler serves the power-flow routes.
type Handler struct {
	engine *solver.Engine
}

func NewHandler(engine *solver.Engine) *Handler {
	return &Handler{engine: engine}
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"ok": true})
}

// RunPF is the single solving entry point. Validation problems map to 400,
// anything else to 500; an unavailable AC engine is not an error but a
// converged=false result.
func (h *Handler) RunPF(c *gin.Context) {
	var req PFRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if req.Method == "" {
		req.Method = "dc"
	}

	cas, err := mpcase.ExpandCase(req.Case)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.engine.RunPF(cas, req.Method, req.Options)
	if err != nil {
		status := http.StatusInternalServerError
		if mpcase.IsValidation(err) {
			status = http.StatusBadRequest
		}
		c.JSON(status, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, result.Map())
}
