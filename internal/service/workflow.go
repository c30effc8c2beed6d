package service

import (
	"fmt"
	"sort"

	"praxis/internal/model"
	"praxis/internal/utils"
)

// WorkflowConfig carries the tunable friction constants. PenaltyPerPoint
// converts excess distance into motion-waste points; the defaults are the
// empirically chosen production values.
type WorkflowConfig struct {
	FloorChangeFactor    float64 // friction multiplier on steps that change floors
	OptimalTotalDistance float64 // total distance above this accrues waste
	OptimalStepDistance  float64 // average step distance above this accrues waste
	BacktrackPenalty     float64 // waste points per backtracking step
	PenaltyPerPoint      float64 // distance units per waste point
	TopFrictionCount     int
}

// DefaultWorkflowConfig returns the stock friction constants.
func DefaultWorkflowConfig() WorkflowConfig {
	return WorkflowConfig{
		FloorChangeFactor:    1.5,
		OptimalTotalDistance: 60,
		OptimalStepDistance:  15,
		BacktrackPenalty:     5,
		PenaltyPerPoint:      2,
		TopFrictionCount:     3,
	}
}

// WorkflowAnalyzer scores declared patient/staff/instrument flows for
// backtracking and excess motion.
type WorkflowAnalyzer struct {
	distance *DistanceModel
	cfg      WorkflowConfig
}

// NewWorkflowAnalyzer creates a workflow analyzer.
func NewWorkflowAnalyzer(distance *DistanceModel, cfg WorkflowConfig) *WorkflowAnalyzer {
	return &WorkflowAnalyzer{distance: distance, cfg: cfg}
}

// Analyze scores one workflow against the room set. Steps referencing
// unknown rooms or rooms without valid geometry are skipped and counted,
// never an error.
func (a *WorkflowAnalyzer) Analyze(workflow model.Workflow, rooms []model.RoomSpec) model.WorkflowAnalysis {
	roomByID := make(map[string]model.RoomSpec, len(rooms))
	for _, room := range rooms {
		roomByID[room.ID] = room
	}

	analysis := model.WorkflowAnalysis{
		Name:            workflow.Name,
		Steps:           []model.WorkflowStepScore{},
		TopFriction:     []model.WorkflowStepScore{},
		Recommendations: []model.Recommendation{},
	}

	seenPairs := make(map[string]struct{})
	totalDistance := 0.0
	longSteps := 0

	for i, step := range workflow.Steps {
		from, okFrom := roomByID[step.FromRoomID]
		to, okTo := roomByID[step.ToRoomID]
		if !okFrom || !okTo || !from.HasValidGeometry() || !to.HasValidGeometry() {
			analysis.SkippedSteps++
			continue
		}

		distance := a.distance.Between(from, to)
		band := a.distance.Band(distance)
		if step.BandOverride != nil {
			band = *step.BandOverride
		}
		floorChange := from.Floor != to.Floor

		friction := distance * step.EffectiveWeight()
		if floorChange {
			friction *= a.cfg.FloorChangeFactor
			analysis.FloorChangeCount++
		}

		pairKey := undirectedPairKey(step.FromRoomID, step.ToRoomID)
		_, backtrack := seenPairs[pairKey]
		if backtrack {
			analysis.BacktrackCount++
		}
		seenPairs[pairKey] = struct{}{}

		if band == model.BandLong {
			longSteps++
		}
		totalDistance += distance

		analysis.Steps = append(analysis.Steps, model.WorkflowStepScore{
			Index:       i,
			FromRoomID:  step.FromRoomID,
			ToRoomID:    step.ToRoomID,
			Kind:        step.Kind,
			Distance:    utils.Round1(distance),
			Band:        band,
			FloorChange: floorChange,
			Backtrack:   backtrack,
			Friction:    utils.Round1(friction),
		})
	}

	stepCount := len(analysis.Steps)
	averageDistance := 0.0
	if stepCount > 0 {
		averageDistance = totalDistance / float64(stepCount)
	}
	analysis.TotalDistance = utils.Round1(totalDistance)
	analysis.AverageDistance = utils.Round1(averageDistance)

	waste := 0.0
	if totalDistance > a.cfg.OptimalTotalDistance {
		waste += (totalDistance - a.cfg.OptimalTotalDistance) / a.cfg.PenaltyPerPoint
	}
	if averageDistance > a.cfg.OptimalStepDistance {
		waste += (averageDistance - a.cfg.OptimalStepDistance) / a.cfg.PenaltyPerPoint
	}
	waste += a.cfg.BacktrackPenalty * float64(analysis.BacktrackCount)
	analysis.MotionWasteIndex = utils.ClampScore(waste)
	analysis.Score = 100 - analysis.MotionWasteIndex

	analysis.TopFriction = topFrictionSteps(analysis.Steps, a.cfg.TopFrictionCount)
	analysis.Recommendations = a.recommend(workflow.Name, longSteps, analysis.FloorChangeCount, analysis.BacktrackCount)

	return analysis
}

// topFrictionSteps returns the n highest-friction steps. Stable sort on
// friction descending so equal-friction steps keep workflow order.
func topFrictionSteps(steps []model.WorkflowStepScore, n int) []model.WorkflowStepScore {
	ranked := make([]model.WorkflowStepScore, len(steps))
	copy(ranked, steps)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Friction > ranked[j].Friction
	})
	if len(ranked) > n {
		ranked = ranked[:n]
	}
	return ranked
}

// recommend derives deterministic, templated recommendations from
// threshold checks. No generated text.
func (a *WorkflowAnalyzer) recommend(name string, longSteps, floorChanges, backtracks int) []model.Recommendation {
	recommendations := []model.Recommendation{}
	label := name
	if label == "" {
		label = "workflow"
	}
	if longSteps > 0 {
		recommendations = append(recommendations, model.Recommendation{
			Category: "distance",
			Message:  fmt.Sprintf("%s has %d long traversal(s); consider co-locating the connected rooms", label, longSteps),
		})
	}
	if floorChanges > 0 {
		recommendations = append(recommendations, model.Recommendation{
			Category: "floor_change",
			Message:  fmt.Sprintf("%s changes floors %d time(s); consider single-level placement for this pathway", label, floorChanges),
		})
	}
	if backtracks > 0 {
		recommendations = append(recommendations, model.Recommendation{
			Category: "backtracking",
			Message:  fmt.Sprintf("%s revisits %d room pair(s); batch tasks to avoid backtracking", label, backtracks),
		})
	}
	return recommendations
}

func undirectedPairKey(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + "\x00" + b
}
