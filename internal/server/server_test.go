package server_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/aretw0/espalier"
	"github.com/aretw0/espalier/internal/server"
	"github.com/aretw0/espalier/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func builtPipeline(t *testing.T) *espalier.Pipeline {
	t.Helper()
	pipe := espalier.New("orders")
	require.NoError(t, pipe.Register(domain.Hook{
		ID: "charge", Phase: domain.PhaseExecute, CallableRef: "billing.charge", Timeout: 5 * time.Second,
	}))
	require.NoError(t, pipe.Register(domain.Hook{
		ID: "receipt", Phase: domain.PhaseEmit, CallableRef: "notify.receipt", DependsOn: []string{"audit"},
	}))
	require.NoError(t, pipe.Register(domain.Hook{
		ID: "audit", Phase: domain.PhaseEmit, CallableRef: "audit.log",
	}))
	require.NoError(t, pipe.Build())
	return pipe
}

func TestHandler_Healthz(t *testing.T) {
	h := server.NewHandler(builtPipeline(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandler_PlanJSON(t *testing.T) {
	h := server.NewHandler(builtPipeline(t), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plan", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var view struct {
		Pipeline string `json:"pipeline"`
		Phases   []struct {
			Phase    string `json:"phase"`
			FailFast bool   `json:"fail_fast"`
			Hooks    []struct {
				ID      string `json:"id"`
				Timeout string `json:"timeout"`
			} `json:"hooks"`
		} `json:"phases"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &view))

	assert.Equal(t, "orders", view.Pipeline)
	require.Len(t, view.Phases, 6)
	assert.Equal(t, "preflight", view.Phases[0].Phase)
	assert.True(t, view.Phases[0].FailFast)

	execute := view.Phases[2]
	require.Len(t, execute.Hooks, 1)
	assert.Equal(t, "charge", execute.Hooks[0].ID)
	assert.Equal(t, "5s", execute.Hooks[0].Timeout)

	// Dependency ordering survives into the view: audit before receipt.
	emit := view.Phases[4]
	require.Len(t, emit.Hooks, 2)
	assert.Equal(t, "audit", emit.Hooks[0].ID)
	assert.Equal(t, "receipt", emit.Hooks[1].ID)
}

func TestHandler_PlanBeforeBuild(t *testing.T) {
	h := server.NewHandler(espalier.New("unbuilt"), nil)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/plan", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandler_Metrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	h := server.NewHandler(builtPipeline(t), reg)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
