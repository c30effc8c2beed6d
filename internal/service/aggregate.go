package service

import (
	"math"

	"praxis/internal/model"
	"praxis/internal/utils"
)

// AggregateWeights are the fixed weights of the overall score. Empirically
// chosen; overridable via configuration, flagged for product review
// rather than re-derived.
type AggregateWeights struct {
	Efficiency float64
	RoomSize   float64
	Staffing   float64
	Capacity   float64
}

// DefaultAggregateWeights returns the stock weighting.
func DefaultAggregateWeights() AggregateWeights {
	return AggregateWeights{Efficiency: 0.35, RoomSize: 0.25, Staffing: 0.25, Capacity: 0.15}
}

// Neutral defaults substituted for missing or non-finite sub-scores: 0
// signals failing for efficiency/capacity, 50 signals neutral-unknown for
// room size/staffing.
const (
	neutralEfficiency = 0
	neutralRoomSize   = 50
	neutralStaffing   = 50
	neutralCapacity   = 0
)

// ScoreCombiner produces the final composite score.
type ScoreCombiner struct {
	weights AggregateWeights
}

// NewScoreCombiner creates a combiner with the given weights.
func NewScoreCombiner(weights AggregateWeights) *ScoreCombiner {
	return &ScoreCombiner{weights: weights}
}

// Combine sanitizes each sub-score exactly once, immediately before
// weighting, and returns the overall score alongside the sanitized
// component values so partial-data runs stay inspectable. NaN marks a
// missing sub-score.
func (c *ScoreCombiner) Combine(efficiency, roomSize, staffing, capacity float64) (int, model.ComponentScores) {
	e := utils.Sanitize(efficiency, neutralEfficiency)
	rs := utils.Sanitize(roomSize, neutralRoomSize)
	st := utils.Sanitize(staffing, neutralStaffing)
	cp := utils.Sanitize(capacity, neutralCapacity)

	overall := c.weights.Efficiency*e +
		c.weights.RoomSize*rs +
		c.weights.Staffing*st +
		c.weights.Capacity*cp

	components := model.ComponentScores{
		Efficiency: utils.ClampScore(e),
		RoomSize:   utils.ClampScore(rs),
		Staffing:   utils.ClampScore(st),
		Capacity:   utils.ClampScore(cp),
	}
	return utils.ClampScore(overall), components
}

// scoreOrNaN lifts an optional integer sub-score into the combiner's
// NaN-marks-missing convention.
func scoreOrNaN(score *int) float64 {
	if score == nil {
		return math.NaN()
	}
	return float64(*score)
}
