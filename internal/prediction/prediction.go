// Package prediction scores a student's expected performance from five study factors.
//
// The score is a fixed weighted sum in [0, 1]; thresholds turn it into a label and a
// confidence. Nothing is learned from data.
package prediction

import "math"

// Input holds the form factors. Binding tags are enforced by the HTTP layer.
type Input struct {
	Attendance      float64 `json:"attendance" binding:"min=0,max=100"`
	TestScores      float64 `json:"test_scores" binding:"min=0,max=100"`
	StudyHours      float64 `json:"study_hours" binding:"min=0"`
	ParentalSupport string  `json:"parental_support" binding:"required,oneof=Low Medium High"`
	Activities      string  `json:"activities" binding:"required,oneof=Yes No"`
}

// Weights is the contribution of each factor; they sum to 1.
type Weights struct {
	Attendance      float64 `json:"attendance"`
	TestScores      float64 `json:"test_scores"`
	StudyHours      float64 `json:"study_hours"`
	ParentalSupport float64 `json:"parental_support"`
	Activities      float64 `json:"activities"`
}

// DefaultWeights are the weights used by the dashboard widget.
var DefaultWeights = Weights{
	Attendance:      0.35,
	TestScores:      0.28,
	StudyHours:      0.20,
	ParentalSupport: 0.12,
	Activities:      0.05,
}

// Label thresholds on the weighted score.
const (
	ExcellentThreshold = 0.85
	GoodThreshold      = 0.70
	AverageThreshold   = 0.50

	// weekly hours at which study time stops adding to the score
	studyHoursCap = 30
)

var (
	supportScore  = map[string]float64{"Low": 0.3, "Medium": 0.7, "High": 1.0}
	activityScore = map[string]float64{"Yes": 1.0, "No": 0.5}
)

// Result is a scored prediction.
type Result struct {
	Score      float64 `json:"score"`
	Prediction string  `json:"prediction"`
	Confidence float64 `json:"confidence"`
	Weights    Weights `json:"weights"`
}

// Score computes the weighted score for in and derives label and confidence.
// Out-of-range numbers are clamped; unknown categorical values contribute nothing.
func Score(in Input, w Weights) Result {
	s := clamp01(in.Attendance/100)*w.Attendance +
		clamp01(in.TestScores/100)*w.TestScores +
		clamp01(in.StudyHours/studyHoursCap)*w.StudyHours +
		supportScore[in.ParentalSupport]*w.ParentalSupport +
		activityScore[in.Activities]*w.Activities

	var label string
	var conf float64
	switch {
	case s >= ExcellentThreshold:
		label, conf = "Excellent", 0.90+(s-ExcellentThreshold)*0.4
	case s >= GoodThreshold:
		label, conf = "Good", 0.80+(s-GoodThreshold)*0.67
	case s >= AverageThreshold:
		label, conf = "Average", 0.70+(s-AverageThreshold)*0.5
	default:
		label, conf = "Poor", 0.60+s*0.2
	}
	return Result{
		Score:      round(s, 4),
		Prediction: label,
		Confidence: round(math.Min(0.99, math.Max(0.5, conf)), 4),
		Weights:    w,
	}
}

func clamp01(v float64) float64 {
	return math.Min(1, math.Max(0, v))
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
