package service

const (
	// Rate-hike breakpoint scan: 0.05 pp steps from 0 to +20 pp (401 probes).
	RateHikeStepPct    = 0.05
	MaxRateHikeScanPct = 20.0

	// Income-loss breakpoint scan: 1 pp steps from 0 to 95% (96 probes).
	IncomeLossStepPct    = 1.0
	MaxIncomeLossScanPct = 95.0

	// Score normalization
	RunwaySaturationMonths = 12.0
	MarginRatioOffset      = 0.25 // a margin of 0 scores 50
	MarginRatioSpan        = 0.5
	PressureFloorRatio     = 0.25 // HTI at or below scores 100
	PressureSpan           = 0.30 // HTI at 0.55 and above scores 0
	RateHikeTolerancePct   = 5.0
	IncomeLossTolerance    = 0.5

	// Label cut points
	BorderlineMinScore = 40
	GoodMinScore       = 60
	StrongMinScore     = 80

	HighBaselineHTI = 0.35
	HighStressHTI   = 0.45

	UrgentRunwayMonths  = 3
	TargetRunwayMonths  = 6
	EmergencyFundMonths = 3.0
)
