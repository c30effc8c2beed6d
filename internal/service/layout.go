package service

import (
	"context"
	"fmt"

	"praxis/internal/model"
	"praxis/internal/utils"
)

// LayoutConfig carries the tunable layout scoring constants.
type LayoutConfig struct {
	BaseScore               float64 // starting point before bonuses/penalties
	CirculationOptimalBonus float64
	CirculationMaxBonus     float64
	CirculationPenalty      float64
	MissingReceptionPenalty float64
	MissingWaitingPenalty   float64
	MissingExamPenalty      float64
}

// DefaultLayoutConfig returns the stock layout constants. Exam rooms carry
// the heaviest presence penalty since they are the revenue-generating
// space.
func DefaultLayoutConfig() LayoutConfig {
	return LayoutConfig{
		BaseScore:               50,
		CirculationOptimalBonus: 10,
		CirculationMaxBonus:     5,
		CirculationPenalty:      5,
		MissingReceptionPenalty: 10,
		MissingWaitingPenalty:   8,
		MissingExamPenalty:      20,
	}
}

// circulationPair is one room-type pair with a distance guideline.
type circulationPair struct {
	from, to model.RoomType
	topic    string
}

// Fixed evaluation order keeps output deterministic.
var circulationPairs = []circulationPair{
	{model.RoomReception, model.RoomWaiting, PairReceptionWaiting},
	{model.RoomWaiting, model.RoomExam, PairWaitingExam},
	{model.RoomExam, model.RoomLab, PairExamLab},
}

// LayoutScorer scores room sizing and circulation distances against
// resolved benchmark bands.
type LayoutScorer struct {
	distance *DistanceModel
	resolver *BenchmarkResolver
	cfg      LayoutConfig
}

// NewLayoutScorer creates a layout scorer.
func NewLayoutScorer(distance *DistanceModel, resolver *BenchmarkResolver, cfg LayoutConfig) *LayoutScorer {
	return &LayoutScorer{distance: distance, resolver: resolver, cfg: cfg}
}

// Score evaluates the room set. unitsPerMeter converts normalized lengths
// to meters for area comparison; values <= 0 mean the inputs are already
// metric. A practice with no rooms at all scores 0 with critical issues
// for each required room type.
func (s *LayoutScorer) Score(ctx context.Context, rooms []model.RoomSpec, unitsPerMeter float64) model.LayoutAnalysis {
	analysis := model.LayoutAnalysis{
		RoomSizes:   []model.RoomSizeScore{},
		Circulation: []model.CirculationScore{},
		Issues:      []model.Issue{},
	}
	if unitsPerMeter <= 0 {
		unitsPerMeter = 1
	}

	scoreSum := 0
	scored := 0
	for _, room := range rooms {
		if !room.HasValidGeometry() {
			analysis.RoomSizes = append(analysis.RoomSizes, model.RoomSizeScore{
				RoomID: room.ID,
				Name:   room.Name,
				Type:   room.Type,
				Status: model.StatusMissing,
				Detail: "room has zero or negative dimensions, excluded from sizing",
			})
			analysis.Issues = append(analysis.Issues, model.Issue{
				Severity: model.SeverityWarning,
				Category: "room_size",
				Message:  fmt.Sprintf("room %s has invalid dimensions %.1fx%.1f", room.ID, room.Width, room.Height),
				Current:  0,
				Target:   1,
			})
			continue
		}

		band := s.resolver.RoomSizeBand(ctx, room.Type)
		area := (room.Width / unitsPerMeter) * (room.Height / unitsPerMeter)
		raw, assessment := scoreBand(area, band)
		score := utils.ClampScore(raw)
		scoreSum += score
		scored++

		analysis.RoomSizes = append(analysis.RoomSizes, model.RoomSizeScore{
			RoomID:        room.ID,
			Name:          room.Name,
			Type:          room.Type,
			Area:          utils.Round1(area),
			Score:         score,
			Assessment:    assessment,
			Status:        statusForScore(score),
			Detail:        fmt.Sprintf("area %.1f %s vs band %.1f-%.1f (optimal %.1f)", area, band.Unit, band.Min, band.Max, band.Optimal),
			FromKnowledge: band.FromKnowledge,
		})
	}
	if scored > 0 {
		average := utils.ClampScore(float64(scoreSum) / float64(scored))
		analysis.RoomSizeScore = &average
	}

	if len(rooms) == 0 {
		for _, missing := range []struct {
			roomType model.RoomType
			penalty  float64
		}{
			{model.RoomReception, s.cfg.MissingReceptionPenalty},
			{model.RoomWaiting, s.cfg.MissingWaitingPenalty},
			{model.RoomExam, s.cfg.MissingExamPenalty},
		} {
			analysis.Issues = append(analysis.Issues, missingRoomIssue(missing.roomType))
		}
		analysis.Score = 0
		return analysis
	}

	total := s.cfg.BaseScore
	total += s.scoreCirculation(ctx, rooms, &analysis)
	total -= s.presencePenalties(rooms, &analysis)
	analysis.Score = utils.ClampScore(total)
	return analysis
}

func (s *LayoutScorer) scoreCirculation(ctx context.Context, rooms []model.RoomSpec, analysis *model.LayoutAnalysis) float64 {
	points := 0.0
	for _, pair := range circulationPairs {
		cost, ok := s.distance.TypeFlowCost(rooms, pair.from, pair.to)
		if !ok {
			continue
		}
		guideline := s.resolver.DistanceGuideline(ctx, pair.topic)

		var pairPoints float64
		var status model.Status
		switch {
		case cost <= guideline.Optimal:
			pairPoints = s.cfg.CirculationOptimalBonus
			status = model.StatusOptimal
		case cost <= guideline.Max:
			pairPoints = s.cfg.CirculationMaxBonus
			status = model.StatusAcceptable
		default:
			pairPoints = -s.cfg.CirculationPenalty
			status = model.StatusNeedsWork
		}
		points += pairPoints

		analysis.Circulation = append(analysis.Circulation, model.CirculationScore{
			From:          pair.from,
			To:            pair.to,
			Distance:      utils.Round1(cost),
			Optimal:       guideline.Optimal,
			Max:           guideline.Max,
			Points:        int(pairPoints),
			Status:        status,
			FromKnowledge: guideline.FromKnowledge,
		})
	}
	return points
}

func (s *LayoutScorer) presencePenalties(rooms []model.RoomSpec, analysis *model.LayoutAnalysis) float64 {
	counts := map[model.RoomType]int{}
	for _, room := range rooms {
		counts[room.Type]++
	}

	penalty := 0.0
	if counts[model.RoomReception] == 0 {
		penalty += s.cfg.MissingReceptionPenalty
		analysis.Issues = append(analysis.Issues, missingRoomIssue(model.RoomReception))
	}
	if counts[model.RoomWaiting] == 0 {
		penalty += s.cfg.MissingWaitingPenalty
		analysis.Issues = append(analysis.Issues, missingRoomIssue(model.RoomWaiting))
	}
	if counts[model.RoomExam] == 0 {
		penalty += s.cfg.MissingExamPenalty
		analysis.Issues = append(analysis.Issues, missingRoomIssue(model.RoomExam))
	}
	return penalty
}

func missingRoomIssue(roomType model.RoomType) model.Issue {
	return model.Issue{
		Severity: model.SeverityCritical,
		Category: "missing_room",
		Message:  fmt.Sprintf("practice has no %s room", roomType),
		Current:  0,
		Target:   1,
	}
}
