package service

import (
	"time"

	"mortgage-risk/domain"
	"mortgage-risk/logger"
)

// Recorder receives one observation per pipeline run.
type Recorder interface {
	ObserveAnalysis(mode domain.Mode, label domain.Label, d time.Duration)
}

type noopRecorder struct{}

func (noopRecorder) ObserveAnalysis(domain.Mode, domain.Label, time.Duration) {}

type AnalysisService struct {
	logger   logger.Logger
	recorder Recorder
}

// NewAnalysisService creates an AnalysisService. A nil recorder disables
// metrics.
func NewAnalysisService(log logger.Logger, recorder Recorder) *AnalysisService {
	if recorder == nil {
		recorder = noopRecorder{}
	}
	return &AnalysisService{
		logger:   log.WithFields(map[string]interface{}{"component": "analysis"}),
		recorder: recorder,
	}
}

// Analyze normalizes the input and runs the full pipeline. Logging and
// metrics observe the result; they never change it.
func (s *AnalysisService) Analyze(input domain.InputState) domain.Analysis {
	start := time.Now()
	a := Analyze(input)
	elapsed := time.Since(start)

	s.recorder.ObserveAnalysis(a.Input.Mode, a.Score.Label, elapsed)
	s.logger.Debug("analysis completed", map[string]interface{}{
		"mode":           a.Input.Mode,
		"score":          a.Score.Score,
		"label":          a.Score.Label,
		"stressedMargin": roundTo2Decimals(a.Stress.StressedMargin),
		"runway":         a.Stress.Runway.String(),
		"durationMicros": elapsed.Microseconds(),
	})

	return a
}

// Analyze is the pure pipeline:
// input -> baseline -> stress -> breakpoints -> score -> actions.
func Analyze(input domain.InputState) domain.Analysis {
	s := input.Normalize()
	shocks := s.Shocks()

	baseline := Baseline(s)
	stress := Stress(baseline, shocks)
	breakpoints := FindBreakpoints(baseline, shocks)
	score := Score(baseline, stress, breakpoints, s.Mode)
	actions := SuggestActions(baseline, stress)

	return domain.Analysis{
		Input:       s,
		Baseline:    baseline,
		Stress:      stress,
		Breakpoints: breakpoints,
		Score:       score,
		Actions:     actions,
	}
}
