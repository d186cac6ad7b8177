// Package solver computes power-flow solutions for MATPOWER-style network
// cases, either as a linearized DC approximation or through a pluggable
// nonlinear AC solving engine. Every solve is a pure function of its input
// case; an Engine holds no state beyond the injected AC capability and is
// safe for concurrent use.
package solver

import (
	"strings"

	"powerflow/pkg/mpcase"
)

type Engine struct {
	ac ACSolver
}

// NewEngine wires an Engine with the given AC solving capability. A nil
// solver is allowed: the AC path then reports converged=false with an error
// description instead of failing hard.
func NewEngine(ac ACSolver) *Engine {
	return &Engine{ac: ac}
}

// RunPF is the single entry point: it routes the case to the DC or AC path
// by the method selector.
func (e *Engine) RunPF(cas map[string]any, method string, options map[string]any) (*Result, error) {
	m := strings.ToLower(strings.TrimSpace(method))
	if options == nil {
		options = map[string]any{}
	}

	switch m {
	case "dc":
		return runDC(cas)
	case "ac":
		return e.runAC(cas, options)
	}

	return nil, mpcase.Invalidf("unknown method=%s, only supports dc/ac", method)
}
