package service

import (
	"praxis/internal/model"
)

// Assessment labels for the three scoring zones.
const (
	AssessmentUndersized = "undersized"
	AssessmentOptimal    = "optimal"
	AssessmentOversized  = "oversized"
)

// scoreBand applies the shared three-zone piecewise scoring used for room
// sizes and staffing ratios. Below the band the score falls steeply toward
// a floor of 0; above the band it falls gently toward a floor of 60 (too
// little clinical space or staff is a harder constraint than excess).
// Inside the band only the excess over optimal costs points: meeting the
// minimum already satisfies the guideline, so values between min and
// optimal score 100.
func scoreBand(value float64, band model.BenchmarkBand) (float64, string) {
	switch {
	case value < band.Min:
		percentDeficit := 100.0
		if band.Min > 0 {
			percentDeficit = (band.Min - value) / band.Min * 100
		}
		score := 50 - percentDeficit
		if score < 0 {
			score = 0
		}
		return score, AssessmentUndersized
	case value > band.Max:
		percentExcess := 100.0
		if band.Max > 0 {
			percentExcess = (value - band.Max) / band.Max * 100
		}
		score := 90 - 0.5*percentExcess
		if score < 60 {
			score = 60
		}
		return score, AssessmentOversized
	default:
		bandWidth := band.Max - band.Min
		if bandWidth <= 0 {
			return 100, AssessmentOptimal
		}
		excess := value - band.Optimal
		if excess < 0 {
			excess = 0
		}
		return 100 - 20*excess/bandWidth, AssessmentOptimal
	}
}

// statusForScore maps a 0-100 score to its qualitative status.
func statusForScore(score int) model.Status {
	switch {
	case score >= 85:
		return model.StatusOptimal
	case score >= 60:
		return model.StatusAcceptable
	default:
		return model.StatusNeedsWork
	}
}
