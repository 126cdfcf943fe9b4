package http

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"mortgage-risk/domain"
	"mortgage-risk/logger"
	"mortgage-risk/service"
)

func newTestHandler(t *testing.T) *AnalysisHandler {
	log := logger.NewTestLogger(t)
	return NewAnalysisHandler(service.NewAnalysisService(log, nil), log, domain.ModeBalanced)
}

func postJSON(path, body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeAnalysis(t *testing.T, w *httptest.ResponseRecorder) domain.Analysis {
	t.Helper()
	var a domain.Analysis
	require.NoError(t, json.NewDecoder(w.Body).Decode(&a))
	return a
}

func TestAnalyzeHandler_DefaultHousehold(t *testing.T) {
	handler := newTestHandler(t)
	w := httptest.NewRecorder()

	handler.Analyze(w, postJSON("/mortgage/analyze", `{}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))

	a := decodeAnalysis(t, w)
	assert.Equal(t, 66, a.Score.Score)
	assert.Equal(t, domain.LabelGood, a.Score.Label)
	assert.InDelta(t, 2270.09, a.Baseline.MonthlyPayment, 0.005)
	assert.True(t, a.Stress.Runway.IsStable())
	assert.Len(t, a.Actions, 3)
}

func TestAnalyzeHandler_IncomeShock(t *testing.T) {
	handler := newTestHandler(t)
	w := httptest.NewRecorder()

	handler.Analyze(w, postJSON("/mortgage/analyze", `{"incomeDropPct": 60}`))

	require.Equal(t, http.StatusOK, w.Code)
	a := decodeAnalysis(t, w)
	assert.Equal(t, 14, a.Score.Score)
	assert.Equal(t, domain.RunwayOf(5), a.Stress.Runway)
	assert.Equal(t, domain.BreakpointAlreadyNegative, a.Breakpoints.RateHikePct.Kind)
}

func TestAnalyzeHandler_PresetThenExplicitFields(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.Analyze(w, postJSON("/mortgage/analyze", `{"preset": "laid_off_4mo"}`))
	require.Equal(t, http.StatusOK, w.Code)
	a := decodeAnalysis(t, w)
	assert.Equal(t, 4, a.Input.MonthsUnemployed)
	assert.Equal(t, 60.0, a.Input.IncomeDropPct)

	w = httptest.NewRecorder()
	handler.Analyze(w, postJSON("/mortgage/analyze", `{"preset": "laid_off_4mo", "monthsUnemployed": 6}`))
	require.Equal(t, http.StatusOK, w.Code)
	a = decodeAnalysis(t, w)
	assert.Equal(t, 6, a.Input.MonthsUnemployed)
	assert.Equal(t, 60.0, a.Input.IncomeDropPct)
}

func TestAnalyzeHandler_ConservativeMode(t *testing.T) {
	handler := newTestHandler(t)
	w := httptest.NewRecorder()

	handler.Analyze(w, postJSON("/mortgage/analyze", `{"mode": "conservative"}`))

	require.Equal(t, http.StatusOK, w.Code)
	a := decodeAnalysis(t, w)
	assert.Equal(t, domain.ModeConservative, a.Input.Mode)
	assert.Equal(t, 78, a.Score.Score)
}

func TestAnalyzeHandler_Rejections(t *testing.T) {
	tests := []struct {
		name        string
		method      string
		contentType string
		body        string
		wantStatus  int
		wantField   string
	}{
		{"method not allowed", http.MethodGet, "application/json", "", http.StatusMethodNotAllowed, ""},
		{"wrong content type", http.MethodPost, "text/plain", `{}`, http.StatusUnsupportedMediaType, ""},
		{"invalid json", http.MethodPost, "application/json", `{invalid-json}`, http.StatusBadRequest, ""},
		{"unknown field", http.MethodPost, "application/json", `{"loan": 1}`, http.StatusBadRequest, ""},
		{"trailing data", http.MethodPost, "application/json", `{} {}`, http.StatusBadRequest, ""},
		{"negative loan", http.MethodPost, "application/json", `{"loanAmount": -5}`, http.StatusBadRequest, "loanAmount"},
		{"income drop over 100", http.MethodPost, "application/json", `{"incomeDropPct": 120}`, http.StatusBadRequest, "incomeDropPct"},
		{"months out of range", http.MethodPost, "application/json", `{"monthsUnemployed": 13}`, http.StatusBadRequest, "monthsUnemployed"},
		{"unknown mode", http.MethodPost, "application/json", `{"mode": "yolo"}`, http.StatusBadRequest, "mode"},
		{"unknown preset", http.MethodPost, "application/json", `{"preset": "meteor"}`, http.StatusBadRequest, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler(t)
			req := httptest.NewRequest(tt.method, "/mortgage/analyze", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", tt.contentType)
			w := httptest.NewRecorder()

			handler.Analyze(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantField == "" {
				return
			}

			var resp errorResponse
			require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
			assert.Equal(t, "validation failed", resp.Error)
			require.NotEmpty(t, resp.Fields)
			assert.Equal(t, tt.wantField, resp.Fields[0].Field)
		})
	}
}

func TestAnalyzeHandler_BodyTooLarge(t *testing.T) {
	handler := newTestHandler(t)
	body := `{"preset": "` + strings.Repeat("a", maxBodyBytes+1) + `"}`
	w := httptest.NewRecorder()

	handler.Analyze(w, postJSON("/mortgage/analyze", body))

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestAnalyzeHandler_ContentTypeWithCharset(t *testing.T) {
	handler := newTestHandler(t)
	req := postJSON("/mortgage/analyze", `{}`)
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()

	handler.Analyze(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSummaryHandler(t *testing.T) {
	handler := newTestHandler(t)
	w := httptest.NewRecorder()

	handler.Summary(w, postJSON("/mortgage/summary", `{}`))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	body := w.Body.String()
	assert.Contains(t, body, "Mortgage Risk Summary")
	assert.Contains(t, body, "Overall score: 66 (Good)")
}

func TestPresetsHandler(t *testing.T) {
	handler := newTestHandler(t)

	w := httptest.NewRecorder()
	handler.Presets(w, httptest.NewRequest(http.MethodGet, "/mortgage/presets", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var presets []domain.Preset
	require.NoError(t, json.NewDecoder(w.Body).Decode(&presets))
	require.Len(t, presets, 5)
	assert.Equal(t, "laid_off_4mo", presets[0].ID)

	w = httptest.NewRecorder()
	handler.Presets(w, httptest.NewRequest(http.MethodPost, "/mortgage/presets", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
