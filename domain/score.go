package domain

type Label string

const (
	LabelHighRisk   Label = "High Risk"
	LabelBorderline Label = "Borderline"
	LabelGood       Label = "Good"
	LabelStrong     Label = "Strong"
)

type ScoreComponents struct {
	Runway     float64 `json:"runway"`
	Margin     float64 `json:"margin"`
	Pressure   float64 `json:"pressure"`
	Breakpoint float64 `json:"breakpoint"`
}

type ScoreResult struct {
	Score       int             `json:"score"`
	Label       Label           `json:"label"`
	Explanation string          `json:"explanation"`
	Components  ScoreComponents `json:"components"`
}

type Action struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

// Analysis is everything one pipeline run produces.
type Analysis struct {
	Input       InputState     `json:"input"`
	Baseline    BaselineBudget `json:"baseline"`
	Stress      StressResult   `json:"stress"`
	Breakpoints Breakpoints    `json:"breakpoints"`
	Score       ScoreResult    `json:"score"`
	Actions     []Action       `json:"actions"`
}
