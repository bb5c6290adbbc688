package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"goresid/adapters/model"
	"goresid/app"
	"goresid/domain/diagnostics"
	"goresid/internal"
	"goresid/internal/config"
	apperrors "goresid/internal/errors"
	"goresid/internal/testkit"
	"goresid/ports"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type fixture struct {
	server   *Server
	scenario *testkit.Scenario
	metrics  *Metrics
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	sc, err := testkit.NewScenario(testkit.DefaultScenarioConfig())
	require.NoError(t, err)
	sc.Models["flat"] = ports.ModelEntry{Model: &model.ConstantModel{Value: 5}, Variables: sc.Alias}

	metrics := NewMetrics()
	logger := internal.NewNopLogger()
	svc := app.NewDiagnosticsService(sc.Models, sc.Scoring, app.WithLogger(logger), app.WithObserver(metrics))
	opts = append([]Option{WithMetrics(metrics), WithLogger(logger)}, opts...)
	return &fixture{server: NewServer(svc, opts...), scenario: sc, metrics: metrics}
}

func (f *fixture) request(modelID string) DiagnosticsRequest {
	frame := f.scenario.Frame
	rows := make([][]float64, frame.Rows())
	for i := range rows {
		rows[i] = make([]float64, len(frame.Columns))
	}
	for j, name := range frame.Columns {
		col, _ := frame.Column(name)
		for i, v := range col {
			rows[i][j] = v
		}
	}
	return DiagnosticsRequest{
		ModelID: modelID,
		Columns: frame.Columns,
		Rows:    rows,
		Target:  append([]float64(nil), f.scenario.Target.Values...),
	}
}

func (f *fixture) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		require.NoError(t, json.NewEncoder(&buf).Encode(b))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) ErrorResponse {
	t.Helper()
	var out ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHealth(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestUnknownRoute(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v2/everything", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apperrors.CodeNotFound, decodeError(t, rec).Code)
}

func TestModels(t *testing.T) {
	f := newFixture(t)
	rec := f.do(t, http.MethodGet, "/v1/models", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var models []ModelInfo
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &models))
	assert.NotEmpty(t, rec.Header().Get("ETag"))
	require.Len(t, models, 2)
	assert.Equal(t, "flat", models[0].ID)
	assert.Equal(t, testkit.ScenarioModelID, models[1].ID)
	assert.Equal(t, []string{"x1", "x2", "x3"}, models[1].Features)
}

func TestDiagnostics_OK(t *testing.T) {
	f := newFixture(t)
	body := f.request(testkit.ScenarioModelID)
	body.Alpha = 0.01
	body.SequenceOrder = "observation"
	body.RunID = "run-42"

	rec := f.do(t, http.MethodPost, "/v1/diagnostics", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var report diagnostics.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &report))
	assert.Equal(t, testkit.ScenarioModelID, report.ModelID)
	assert.Equal(t, "run-42", report.RunID.String())
	assert.Equal(t, 0.01, report.Alpha)
	assert.Equal(t, diagnostics.OrderObservation, report.Ordering)
	assert.Equal(t, 200, report.Residuals.Len())
	assert.NotNil(t, report.Correlation)
}

func TestDiagnostics_Errors(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name   string
		body   func() interface{}
		status int
		code   string
	}{
		{
			name:   "malformed json",
			body:   func() interface{} { return "{" },
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
		},
		{
			name:   "unknown field",
			body:   func() interface{} { return `{"model_id":"ols","bogus":1}` },
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
		},
		{
			name:   "missing model id",
			body:   func() interface{} { return f.request("") },
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
		},
		{
			name: "blank run id",
			body: func() interface{} {
				r := f.request(testkit.ScenarioModelID)
				r.RunID = "   "
				return r
			},
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
		},
		{
			name:   "unknown model",
			body:   func() interface{} { return f.request("nope") },
			status: http.StatusNotFound,
			code:   apperrors.CodeNotFound,
		},
		{
			name: "bad sequence order",
			body: func() interface{} {
				r := f.request(testkit.ScenarioModelID)
				r.SequenceOrder = "random"
				return r
			},
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
		},
		{
			name: "alpha out of range",
			body: func() interface{} {
				r := f.request(testkit.ScenarioModelID)
				r.Alpha = 1.5
				return r
			},
			status: http.StatusBadRequest,
			code:   apperrors.CodeInvalidInput,
		},
		{
			name: "ragged row",
			body: func() interface{} {
				r := f.request(testkit.ScenarioModelID)
				r.Rows[3] = r.Rows[3][:1]
				return r
			},
			status: http.StatusUnprocessableEntity,
			code:   apperrors.CodeShapeMismatch,
		},
		{
			name: "short target",
			body: func() interface{} {
				r := f.request(testkit.ScenarioModelID)
				r.Target = r.Target[:10]
				return r
			},
			status: http.StatusUnprocessableEntity,
			code:   apperrors.CodeShapeMismatch,
		},
		{
			name: "perfect fit",
			body: func() interface{} {
				r := f.request("flat")
				for i := range r.Target {
					r.Target[i] = 5
				}
				return r
			},
			status: http.StatusUnprocessableEntity,
			code:   apperrors.CodeNumerical,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := f.do(t, http.MethodPost, "/v1/diagnostics", tt.body())
			assert.Equal(t, tt.status, rec.Code, rec.Body.String())
			assert.Equal(t, tt.code, decodeError(t, rec).Code)
		})
	}
}

func TestDiagnostics_SaturatedServerReturnsUnavailable(t *testing.T) {
	f := newFixture(t, WithMaxConcurrentRuns(1))
	require.NoError(t, f.server.runs.Acquire(context.Background(), 1))
	defer f.server.runs.Release(1)

	var buf bytes.Buffer
	require.NoError(t, json.NewEncoder(&buf).Encode(f.request(testkit.ScenarioModelID)))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	req := httptest.NewRequest(http.MethodPost, "/v1/diagnostics", &buf).WithContext(ctx)
	rec := httptest.NewRecorder()
	f.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, apperrors.CodeCanceled, decodeError(t, rec).Code)
}

func TestMetricsEndpoint(t *testing.T) {
	f := newFixture(t)
	require.Equal(t, http.StatusOK, f.do(t, http.MethodPost, "/v1/diagnostics", f.request(testkit.ScenarioModelID)).Code)
	require.Equal(t, http.StatusNotFound, f.do(t, http.MethodPost, "/v1/diagnostics", f.request("nope")).Code)

	rec := f.do(t, http.MethodGet, "/metrics", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	out := rec.Body.String()
	assert.Contains(t, out, `goresid_runs_total{code="OK",model="ols"} 1`)
	assert.Contains(t, out, `goresid_runs_total{code="NOT_FOUND",model="unknown"} 1`)
	assert.Contains(t, out, `goresid_step_duration_seconds_count{code="OK",step="vif"} 1`)
	assert.True(t, strings.Contains(out, "goresid_runs_in_flight 0"))
}

func TestNewFromConfig(t *testing.T) {
	sc, err := testkit.NewScenario(testkit.DefaultScenarioConfig())
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Diagnostics.Alpha = 0.1
	cfg.Diagnostics.SequenceOrder = string(diagnostics.OrderObservation)
	cfg.Server.MaxConcurrentRuns = 2
	f := &fixture{server: NewFromConfig(cfg, sc.Models, sc.Scoring, internal.NewNopLogger()), scenario: sc}
	f.metrics = f.server.metrics

	rec := f.do(t, http.MethodPost, "/v1/diagnostics", f.request(testkit.ScenarioModelID))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var got diagnostics.Report
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, 0.1, got.Alpha)
	assert.Equal(t, diagnostics.OrderObservation, got.Ordering)

	out := f.do(t, http.MethodGet, "/metrics", nil).Body.String()
	assert.Contains(t, out, `goresid_runs_total{code="OK",model="ols"} 1`)
}
