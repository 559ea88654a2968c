// Package server exposes a compiled pipeline over HTTP for inspection:
// the deterministic plan, build warnings, health, and Prometheus metrics.
package server

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/pkg/domain"
)

// planView is the JSON shape of a compiled plan.
type planView struct {
	Pipeline string      `json:"pipeline"`
	Phases   []phaseView `json:"phases"`
	Warnings []string    `json:"warnings,omitempty"`
}

type phaseView struct {
	Phase    domain.Phase `json:"phase"`
	FailFast bool         `json:"fail_fast"`
	Hooks    []hookView   `json:"hooks"`
}

type hookView struct {
	ID        string   `json:"id"`
	Callable  string   `json:"callable"`
	Priority  int      `json:"priority"`
	DependsOn []string `json:"depends_on,omitempty"`
	TypeTag   string   `json:"type_tag,omitempty"`
	Timeout   string   `json:"timeout,omitempty"`
}

// NewHandler creates the inspection handler for a built pipeline.
// The Prometheus gatherer may be nil to disable the /metrics route.
func NewHandler(pipe *espalier.Pipeline, gatherer prometheus.Gatherer) http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})

	r.Get("/plan", func(w http.ResponseWriter, req *http.Request) {
		p := pipe.Plan()
		if p == nil {
			http.Error(w, "pipeline not built", http.StatusServiceUnavailable)
			return
		}

		view := planView{Pipeline: pipe.Name}
		for _, warn := range pipe.Warnings() {
			view.Warnings = append(view.Warnings, warn.String())
		}
		for _, phase := range p.Phases() {
			pp := p.ForPhase(phase)
			pv := phaseView{Phase: phase, FailFast: pp.FailFast, Hooks: []hookView{}}
			for _, h := range pp.Hooks {
				hv := hookView{
					ID:        h.ID,
					Callable:  h.CallableRef,
					Priority:  h.Priority,
					DependsOn: h.DependsOn,
					TypeTag:   h.TypeTag,
				}
				if h.Timeout > 0 {
					hv.Timeout = h.Timeout.String()
				}
				pv.Hooks = append(pv.Hooks, hv)
			}
			view.Phases = append(view.Phases, pv)
		}

		w.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(w).Encode(view); err != nil {
			http.Error(w, "failed to encode plan", http.StatusInternalServerError)
		}
	})

	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return r
}
