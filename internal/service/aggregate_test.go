package service

import (
	"math"
	"testing"

	"praxis/internal/model"
)

func TestCombine(t *testing.T) {
	combiner := NewScoreCombiner(DefaultAggregateWeights())

	tests := []struct {
		name           string
		efficiency     float64
		roomSize       float64
		staffing       float64
		capacity       float64
		wantOverall    int
		wantComponents model.ComponentScores
	}{
		{
			"all present",
			80, 90, 70, 60,
			77,
			model.ComponentScores{Efficiency: 80, RoomSize: 90, Staffing: 70, Capacity: 60},
		},
		{
			"all perfect",
			100, 100, 100, 100,
			100,
			model.ComponentScores{Efficiency: 100, RoomSize: 100, Staffing: 100, Capacity: 100},
		},
		{
			"all missing falls back to neutral defaults",
			math.NaN(), math.NaN(), math.NaN(), math.NaN(),
			25,
			model.ComponentScores{Efficiency: 0, RoomSize: 50, Staffing: 50, Capacity: 0},
		},
		{
			"missing staffing only",
			80, 90, math.NaN(), 60,
			72,
			model.ComponentScores{Efficiency: 80, RoomSize: 90, Staffing: 50, Capacity: 60},
		},
		{
			"zero staffing is not missing",
			80, 90, 0, 60,
			60,
			model.ComponentScores{Efficiency: 80, RoomSize: 90, Staffing: 0, Capacity: 60},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			overall, components := combiner.Combine(tt.efficiency, tt.roomSize, tt.staffing, tt.capacity)
			if overall != tt.wantOverall {
				t.Errorf("overall = %d, want %d", overall, tt.wantOverall)
			}
			if components != tt.wantComponents {
				t.Errorf("components = %+v, want %+v", components, tt.wantComponents)
			}
		})
	}
}

func TestCombineBounded(t *testing.T) {
	combiner := NewScoreCombiner(DefaultAggregateWeights())
	overall, _ := combiner.Combine(math.Inf(1), 500, -50, math.Inf(-1))
	if overall < 0 || overall > 100 {
		t.Errorf("overall = %d, want within [0,100]", overall)
	}
}

func TestScoreOrNaN(t *testing.T) {
	if !math.IsNaN(scoreOrNaN(nil)) {
		t.Error("scoreOrNaN(nil) is not NaN")
	}
	v := 42
	if got := scoreOrNaN(&v); got != 42 {
		t.Errorf("scoreOrNaN(&42) = %v, want 42", got)
	}
}
