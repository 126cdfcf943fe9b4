package http

import (
	"errors"
	"net/http"

	"mortgage-risk/domain"
	"mortgage-risk/logger"
	"mortgage-risk/report"
	"mortgage-risk/service"
)

type AnalysisHandler struct {
	service     *service.AnalysisService
	logger      logger.Logger
	defaultMode domain.Mode
}

func NewAnalysisHandler(service *service.AnalysisService, log logger.Logger, defaultMode domain.Mode) *AnalysisHandler {
	return &AnalysisHandler{
		service:     service,
		logger:      log,
		defaultMode: domain.ParseMode(string(defaultMode)),
	}
}

// Analyze returns the full analysis as JSON.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	a, ok := h.run(w, r)
	if !ok {
		return
	}
	writeJSON(w, h.logger, http.StatusOK, a)
}

// Summary returns the readable plain-text report.
func (h *AnalysisHandler) Summary(w http.ResponseWriter, r *http.Request) {
	a, ok := h.run(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if _, err := w.Write([]byte(report.Summary(a))); err != nil {
		h.logger.WithError(err).Warn("error writing response", nil)
	}
}

func (h *AnalysisHandler) Presets(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}
	writeJSON(w, h.logger, http.StatusOK, domain.Presets())
}

// run decodes, validates and analyzes the request. It writes the error
// response itself and reports false when the request was rejected.
func (h *AnalysisHandler) run(w http.ResponseWriter, r *http.Request) (domain.Analysis, bool) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return domain.Analysis{}, false
	}

	var req AnalyzeRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeDecodeError(w, h.logger, err)
		return domain.Analysis{}, false
	}

	if fields := req.Validate(); fields != nil {
		writeError(w, h.logger, http.StatusBadRequest, "validation failed", fields)
		return domain.Analysis{}, false
	}

	input, err := req.ToInputState(h.defaultMode)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrUnknownPreset) {
			status = http.StatusBadRequest
		}
		writeError(w, h.logger, status, err.Error(), nil)
		return domain.Analysis{}, false
	}

	return h.service.Analyze(input), true
}

func Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"status":"ok"}` + "\n"))
}
