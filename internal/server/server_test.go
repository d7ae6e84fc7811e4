package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/castinsight/castdash/core"
	"github.com/castinsight/castdash/core/synth"
	"github.com/castinsight/castdash/internal/contract"
	"github.com/castinsight/castdash/internal/datamart"
	"github.com/castinsight/castdash/schema"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestServer(t *testing.T, ready ...ReadyCheck) (*httptest.Server, *datamart.MockDatamart, *synth.MockProvider) {
	t.Helper()
	store := &datamart.MockDatamart{}
	provider := &synth.MockProvider{}
	cfg := &contract.Config{Limit: 50, Months: 6, Synthetic: true, QueryTimeout: time.Second}

	logger := zerolog.Nop()
	router := ConfigureRouter(&logger, Config{
		Dependencies: Dependencies{
			Dashboard: core.NewDashboard(store, provider, cfg),
			Ready:     ready,
		},
	})
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store, provider
}

func get(t *testing.T, srv *httptest.Server, path string, header http.Header) (*http.Response, []byte) {
	t.Helper()
	req, err := http.NewRequest(http.MethodGet, srv.URL+path, nil)
	require.NoError(t, err)
	for k, v := range header {
		req.Header[k] = v
	}
	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp, body
}

func decode(t *testing.T, body []byte) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(body, &env))
	return env
}

func TestPortfolioMetrics(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.On("PortfolioRows", mock.Anything).Return([]schema.Row{
		{schema.ColApplicationName: "Billing", schema.ColScore: 3.0, schema.ColCodeLines: 1000},
		{schema.ColApplicationName: "Claims", schema.ColScore: 2.0, schema.ColCodeLines: 500},
	}, nil)

	resp, body := get(t, srv, "/api/portfolio-metrics", nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	env := decode(t, body)
	require.True(t, env.Success)
	var metrics schema.PortfolioMetrics
	require.NoError(t, json.Unmarshal(env.Data, &metrics))
	assert.Equal(t, 2, metrics.TotalApplications)
	assert.Equal(t, 1500, metrics.TotalLOC)
}

func TestApplicationSummariesLimit(t *testing.T) {
	srv, store, _ := newTestServer(t)
	rows := []schema.Row{
		{schema.ColApplicationName: "A", schema.ColAnalysisDate: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)},
		{schema.ColApplicationName: "B", schema.ColAnalysisDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)},
		{schema.ColApplicationName: "C", schema.ColAnalysisDate: time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)},
	}
	store.On("SummaryRows", mock.Anything).Return(rows, nil)

	tests := []struct {
		query    string
		expected int
	}{
		{query: "?limit=2", expected: 2},
		{query: "?limit=abc", expected: 3},
		{query: "?limit=-1", expected: 3},
		{query: "", expected: 3},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			_, body := get(t, srv, "/api/application-summaries"+tt.query, nil)
			var summaries []schema.ApplicationSummary
			require.NoError(t, json.Unmarshal(decode(t, body).Data, &summaries))
			assert.Len(t, summaries, tt.expected)
		})
	}
}

func TestApplicationNotFound(t *testing.T) {
	key := schema.ApplicationByID(42)
	tests := []struct {
		path  string
		setup func(*datamart.MockDatamart)
	}{
		{"/api/application-health/42", func(m *datamart.MockDatamart) {
			m.On("AppHealthRows", mock.Anything, key).Return([]schema.Row{}, nil)
		}},
		{"/api/application-violations/42", func(m *datamart.MockDatamart) {
			m.On("AppViolationRows", mock.Anything, key).Return([]schema.Row{}, nil)
		}},
		{"/api/application-iso-trends/42", func(m *datamart.MockDatamart) {
			m.On("AppISORows", mock.Anything, key).Return([]schema.Row{}, nil)
		}},
		{"/api/application-cwe/42", func(m *datamart.MockDatamart) {
			m.On("AppExists", mock.Anything, key).Return(false, nil)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			srv, store, _ := newTestServer(t)
			tt.setup(store)

			resp, body := get(t, srv, tt.path, nil)

			assert.Equal(t, http.StatusNotFound, resp.StatusCode)
			env := decode(t, body)
			assert.False(t, env.Success)
			assert.Contains(t, env.Error, "not found")
			assert.Empty(t, env.Data)
		})
	}
}

func TestApplicationByName(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.On("AppViolationRows", mock.Anything, schema.ApplicationByName("Claims Engine")).Return([]schema.Row{
		{schema.ColApplicationName: "Claims Engine", schema.ColTechnology: "JEE", schema.ColRuleName: "Avoid empty catch", schema.ColViolations: 7},
	}, nil)

	resp, body := get(t, srv, "/api/application-violations/Claims%20Engine", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	var violations schema.ApplicationViolations
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &violations))
	assert.Equal(t, "Claims Engine", violations.ApplicationName)
	assert.Equal(t, 7, violations.TotalViolations)
}

func TestEmptyApplicationKey(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, body := get(t, srv, "/api/application-risks/%20", nil)

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, decode(t, body).Success)
}

func TestUpstreamError(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.On("RiskRows", mock.Anything).Return(nil, errors.New("connection reset"))

	resp, body := get(t, srv, "/api/risk-distribution", nil)

	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	env := decode(t, body)
	assert.False(t, env.Success)
	assert.Contains(t, env.Error, "connection reset")
}

func TestHealthTrendsSynthetic(t *testing.T) {
	srv, store, provider := newTestServer(t)
	store.On("HealthHistoryRows", mock.Anything).Return([]schema.Row{}, nil)
	store.On("LatestCriterionRows", mock.Anything).Return([]schema.Row{}, nil)
	provider.On("HealthTrend", (*float64)(nil), 3).Return(schema.HealthTrend{
		Points:    []schema.HealthTrendPoint{{Period: "2026-08", AvgScore: 2.6}, {Period: "2026-09", AvgScore: 2.7}, {Period: "2026-10", AvgScore: 2.8}},
		Synthetic: true,
	})

	resp, body := get(t, srv, "/api/health-trends?months=3", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(SyntheticHeader))
	var trend schema.HealthTrend
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &trend))
	assert.True(t, trend.Synthetic)
	assert.Len(t, trend.Points, 3)
	provider.AssertExpectations(t)
}

func TestApplicationCWE(t *testing.T) {
	srv, store, provider := newTestServer(t)
	store.On("AppExists", mock.Anything, schema.ApplicationByID(3)).Return(true, nil)
	provider.On("CWEFindings", schema.ApplicationByID(3)).Return(synth.Catalogue())

	resp, body := get(t, srv, "/api/application-cwe/3", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "true", resp.Header.Get(SyntheticHeader))
	var findings []schema.CWEFinding
	require.NoError(t, json.Unmarshal(decode(t, body).Data, &findings))
	assert.Len(t, findings, len(synth.Catalogue()))
}

func TestHealth(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.On("Ping", mock.Anything).Return(nil)

	resp, body := get(t, srv, "/api/health", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	env := decode(t, body)
	assert.True(t, env.Success)
	assert.JSONEq(t, "true", string(env.Data))
}

func TestProbes(t *testing.T) {
	failing := func(context.Context) error { return errors.New("datamart down") }
	srv, _, _ := newTestServer(t, failing)

	resp, body := get(t, srv, "/healthz", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"status":"ok"}`, string(body))

	resp, body = get(t, srv, "/readyz", nil)
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	assert.JSONEq(t, `{"status":"unavailable"}`, string(body))
}

func TestReadyHandlerPasses(t *testing.T) {
	rec := httptest.NewRecorder()
	ReadyHandler(func(context.Context) error { return nil }).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestMetricsEndpoint(t *testing.T) {
	srv, store, _ := newTestServer(t)
	store.On("AppHealthRows", mock.Anything, mock.Anything).Return([]schema.Row{}, nil)

	get(t, srv, "/api/application-health/7", nil)
	resp, body := get(t, srv, "/metrics", nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	text := string(body)
	assert.Contains(t, text, "castdash_http_requests_total")
	assert.Contains(t, text, `route="/api/application-health/{key}"`)
	assert.Contains(t, text, `status="404"`)
	assert.Contains(t, text, "castdash_http_request_duration_seconds")
}

func TestRequestID(t *testing.T) {
	srv, _, _ := newTestServer(t)

	resp, _ := get(t, srv, "/healthz", nil)
	_, err := uuid.Parse(resp.Header.Get(RequestIDHeader))
	require.NoError(t, err, "a request id is issued")

	id := uuid.NewString()
	resp, _ = get(t, srv, "/healthz", http.Header{RequestIDHeader: []string{id}})
	assert.Equal(t, id, resp.Header.Get(RequestIDHeader))

	resp, _ = get(t, srv, "/healthz", http.Header{RequestIDHeader: []string{"not-a-uuid"}})
	assert.NotEqual(t, "not-a-uuid", resp.Header.Get(RequestIDHeader))
}

func TestStartStopsOnContextCancel(t *testing.T) {
	store := &datamart.MockDatamart{}
	api := NewWebAPI(zerolog.Nop(), Config{
		Addr:            "127.0.0.1:0",
		ShutdownTimeout: time.Second,
		Dependencies:    Dependencies{Dashboard: core.NewDashboard(store, nil, &contract.Config{})},
	})
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- api.Start(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
