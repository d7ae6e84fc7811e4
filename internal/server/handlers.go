package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/core/result"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/schema"
	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
)

// SyntheticHeader is set on trend responses whose points were synthesized.
const SyntheticHeader = "X-Castdash-Synthetic"

// Handler serves the dashboard panels as result envelopes.
type Handler struct {
	dash *core.Dashboard
}

// NewHandler wraps a dashboard.
func NewHandler(dash *core.Dashboard) *Handler {
	return &Handler{dash: dash}
}

// respond writes the envelope of a panel outcome with its HTTP status.
func respond(w http.ResponseWriter, r *http.Request, data any, err error) {
	logger := zerolog.Ctx(r.Context())
	status := result.StatusCode(err)

	envelope := result.OK(data)
	if err != nil {
		envelope = result.Fail(err)
		if status >= http.StatusInternalServerError {
			logger.Error().Err(err).Msg("panel request failed")
		} else {
			logger.Debug().Err(err).Int("status", status).Msg("panel request rejected")
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(envelope); err != nil {
		logger.Error().Err(err).Msg("failed to encode response")
	}
}

// queryInt reads a positive integer query parameter capped at maxValue.
// Missing or malformed values yield 0, which selects the configured default.
func queryInt(r *http.Request, name string, maxValue int) int {
	n, err := strconv.Atoi(r.URL.Query().Get(name))
	if err != nil || n <= 0 {
		return 0
	}
	return min(n, maxValue)
}

// panel adapts a parameterless dashboard call.
func panel[T any](fetch func(context.Context) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := fetch(r.Context())
		if err != nil {
			respond(w, r, nil, err)
			return
		}
		respond(w, r, data, nil)
	}
}

// appPanel adapts a per-application dashboard call keyed by the {key} URL parameter.
func appPanel[T any](fetch func(context.Context, schema.ApplicationKey) (T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		key, err := schema.ParseApplicationKey(chi.URLParam(r, "key"))
		if err != nil {
			respond(w, r, nil, err)
			return
		}
		data, err := fetch(r.Context(), key)
		if err != nil {
			respond(w, r, nil, err)
			return
		}
		respond(w, r, data, nil)
	}
}

// Health pings the datamart.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	ok, err := h.dash.Health(r.Context())
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	respond(w, r, ok, nil)
}

// ApplicationSummaries honors the limit query parameter.
func (h *Handler) ApplicationSummaries(w http.ResponseWriter, r *http.Request) {
	summaries, err := h.dash.ApplicationSummaries(r.Context(), queryInt(r, "limit", contract.MaxResultLimit))
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	respond(w, r, summaries, nil)
}

// HealthTrends honors the months query parameter.
func (h *Handler) HealthTrends(w http.ResponseWriter, r *http.Request) {
	trend, err := h.dash.HealthTrend(r.Context(), queryInt(r, "months", contract.MaxTrendMonths))
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	if trend.Synthetic {
		w.Header().Set(SyntheticHeader, "true")
	}
	respond(w, r, trend, nil)
}

// CodeQualityTrends honors the months query parameter.
func (h *Handler) CodeQualityTrends(w http.ResponseWriter, r *http.Request) {
	trend, err := h.dash.QualityTrend(r.Context(), queryInt(r, "months", contract.MaxTrendMonths))
	if err != nil {
		respond(w, r, nil, err)
		return
	}
	if trend.Synthetic {
		w.Header().Set(SyntheticHeader, "true")
	}
	respond(w, r, trend, nil)
}

// ApplicationCWE always reports synthesized data.
func (h *Handler) ApplicationCWE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set(SyntheticHeader, "true")
	appPanel(h.dash.CWEFindings)(w, r)
}

// Routes mounts every panel under /api.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/health", h.Health)
	r.Get("/overview", panel(h.dash.Overview))
	r.Get("/portfolio-metrics", panel(h.dash.Portfolio))
	r.Get("/application-summaries", h.ApplicationSummaries)
	r.Get("/risk-distribution", panel(h.dash.RiskDistribution))
	r.Get("/health-trends", h.HealthTrends)
	r.Get("/technology-health", panel(h.dash.TechnologyHealth))
	r.Get("/architecture-complexity", panel(h.dash.ArchitectureComplexity))
	r.Get("/security-metrics", panel(h.dash.SecurityMetrics))
	r.Get("/performance-metrics", panel(h.dash.PerformanceMetrics))
	r.Get("/code-quality-trends", h.CodeQualityTrends)
	r.Get("/applications", panel(h.dash.Applications))

	r.Get("/application-health/{key}", appPanel(h.dash.ApplicationHealth))
	r.Get("/application-violations/{key}", appPanel(h.dash.ApplicationViolations))
	r.Get("/application-risks/{key}", appPanel(h.dash.ApplicationRisk))
	r.Get("/application-productivity/{key}", appPanel(h.dash.ApplicationProductivity))
	r.Get("/application-iso-trends/{key}", appPanel(h.dash.ISOTrends))
	r.Get("/application-cwe/{key}", h.ApplicationCWE)
}
