package service

import (
	"context"
	"testing"
	"time"

	"praxis/internal/model"
)

func newTestLayoutScorer() *LayoutScorer {
	return NewLayoutScorer(
		NewDistanceModel(DefaultDistanceConfig()),
		NewBenchmarkResolver(nil, time.Minute),
		DefaultLayoutConfig(),
	)
}

func TestScoreBand(t *testing.T) {
	band := model.BenchmarkBand{Min: 9, Max: 12, Optimal: 10}

	tests := []struct {
		name       string
		value      float64
		wantScore  float64
		wantAssess string
	}{
		{"at optimal", 10, 100, AssessmentOptimal},
		{"below optimal but in band", 9, 100, AssessmentOptimal},
		{"at minimum", 9, 100, AssessmentOptimal},
		{"above optimal in band", 11, 100 - 20.0/3.0, AssessmentOptimal},
		{"at maximum", 12, 100 - 40.0/3.0, AssessmentOptimal},
		{"undersized 10 percent", 8.1, 40, AssessmentUndersized},
		{"undersized heavily", 1, 0, AssessmentUndersized},
		{"oversized 20 percent", 14.4, 80, AssessmentOversized},
		{"oversized never below floor", 120, 60, AssessmentOversized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, assess := scoreBand(tt.value, band)
			if diff := got - tt.wantScore; diff > 1e-9 || diff < -1e-9 {
				t.Errorf("scoreBand(%v) = %v, want %v", tt.value, got, tt.wantScore)
			}
			if assess != tt.wantAssess {
				t.Errorf("assessment = %q, want %q", assess, tt.wantAssess)
			}
		})
	}
}

func TestScoreBandMonotonicInBand(t *testing.T) {
	band := model.BenchmarkBand{Min: 9, Max: 12, Optimal: 10}
	prev := -1.0
	// approaching optimal from below, score may only go up
	for v := 1.0; v <= 10.0; v += 0.5 {
		got, _ := scoreBand(v, band)
		if got < prev {
			t.Fatalf("score dropped approaching optimal: %v at %v after %v", got, v, prev)
		}
		prev = got
	}
}

func TestLayoutEmptyRooms(t *testing.T) {
	analysis := newTestLayoutScorer().Score(context.Background(), nil, 1)

	if analysis.Score != 0 {
		t.Errorf("Score = %d, want 0 for empty practice", analysis.Score)
	}
	if analysis.RoomSizeScore != nil {
		t.Errorf("RoomSizeScore = %v, want nil", *analysis.RoomSizeScore)
	}
	if len(analysis.Issues) != 3 {
		t.Fatalf("Issues = %d, want 3 missing-room issues", len(analysis.Issues))
	}
	for _, issue := range analysis.Issues {
		if issue.Severity != model.SeverityCritical || issue.Category != "missing_room" {
			t.Errorf("issue = %+v, want critical missing_room", issue)
		}
	}
}

func TestLayoutScenarioCompact(t *testing.T) {
	// compact single-floor practice: all circulation pairs with rooms
	// present land in the optimal range, no lab so exam->lab is skipped
	rooms := []model.RoomSpec{
		room("r1", model.RoomReception, 0, 0, 3, 4, 0),
		room("w1", model.RoomWaiting, 4, 0, 5, 5, 0),
		room("e1", model.RoomExam, 10, 0, 3, 3, 0),
		room("e2", model.RoomExam, 10, 4, 3, 3, 0),
	}
	analysis := newTestLayoutScorer().Score(context.Background(), rooms, 1)

	if analysis.Score != 70 {
		t.Errorf("Score = %d, want 70 (base 50 plus two optimal pairs)", analysis.Score)
	}
	if len(analysis.Circulation) != 2 {
		t.Fatalf("Circulation entries = %d, want 2 (no lab present)", len(analysis.Circulation))
	}
	for _, pair := range analysis.Circulation {
		if pair.Status != model.StatusOptimal {
			t.Errorf("pair %s->%s status = %q, want optimal", pair.From, pair.To, pair.Status)
		}
	}
	if len(analysis.Issues) != 0 {
		t.Errorf("Issues = %v, want none", analysis.Issues)
	}
	if analysis.RoomSizeScore == nil {
		t.Fatal("RoomSizeScore = nil, want value")
	}
	// reception 12 and both 9 sqm exam rooms are optimal (100); waiting at
	// 25 sqm sits above optimal and lands at 93
	if *analysis.RoomSizeScore != 98 {
		t.Errorf("RoomSizeScore = %d, want 98", *analysis.RoomSizeScore)
	}
}

func TestLayoutExamAtBandMinimumIsOptimal(t *testing.T) {
	rooms := []model.RoomSpec{
		room("e1", model.RoomExam, 0, 0, 3, 3, 0), // 9 sqm, band minimum
	}
	analysis := newTestLayoutScorer().Score(context.Background(), rooms, 1)

	if len(analysis.RoomSizes) != 1 {
		t.Fatalf("RoomSizes = %d, want 1", len(analysis.RoomSizes))
	}
	size := analysis.RoomSizes[0]
	if size.Score != 100 {
		t.Errorf("Score = %d, want 100 for a functional room at band minimum", size.Score)
	}
	if size.Assessment != AssessmentOptimal {
		t.Errorf("Assessment = %q, want %q", size.Assessment, AssessmentOptimal)
	}
	if size.Status != model.StatusOptimal {
		t.Errorf("Status = %q, want optimal", size.Status)
	}
}

func TestLayoutInvalidGeometry(t *testing.T) {
	rooms := []model.RoomSpec{
		room("e1", model.RoomExam, 0, 0, 3, 3, 0),
		room("bad", model.RoomWaiting, 0, 0, 0, 5, 0),
	}
	analysis := newTestLayoutScorer().Score(context.Background(), rooms, 1)

	if len(analysis.RoomSizes) != 2 {
		t.Fatalf("RoomSizes = %d, want 2", len(analysis.RoomSizes))
	}
	var badEntry *model.RoomSizeScore
	for i := range analysis.RoomSizes {
		if analysis.RoomSizes[i].RoomID == "bad" {
			badEntry = &analysis.RoomSizes[i]
		}
	}
	if badEntry == nil {
		t.Fatal("no entry for the invalid room")
	}
	if badEntry.Status != model.StatusMissing {
		t.Errorf("invalid room status = %q, want missing", badEntry.Status)
	}

	// the invalid room does not drag the average down
	if analysis.RoomSizeScore == nil || *analysis.RoomSizeScore != 100 {
		t.Errorf("RoomSizeScore = %v, want 100 from the valid exam room alone", analysis.RoomSizeScore)
	}

	warned := false
	for _, issue := range analysis.Issues {
		if issue.Category == "room_size" && issue.Severity == model.SeverityWarning {
			warned = true
		}
	}
	if !warned {
		t.Error("no warning issue for invalid geometry")
	}
}

func TestLayoutUnitConversion(t *testing.T) {
	// 6x6 grid units at 2 units per meter is a 9 sqm exam room
	rooms := []model.RoomSpec{
		room("e1", model.RoomExam, 0, 0, 6, 6, 0),
	}
	analysis := newTestLayoutScorer().Score(context.Background(), rooms, 2)
	if analysis.RoomSizes[0].Area != 9 {
		t.Errorf("Area = %v, want 9", analysis.RoomSizes[0].Area)
	}
	if analysis.RoomSizes[0].Score != 100 {
		t.Errorf("Score = %d, want 100", analysis.RoomSizes[0].Score)
	}
}

func TestLayoutMissingRoomPenalties(t *testing.T) {
	// exam rooms only: base 50 minus reception 10 and waiting 8
	rooms := []model.RoomSpec{
		room("e1", model.RoomExam, 0, 0, 3, 3, 0),
	}
	analysis := newTestLayoutScorer().Score(context.Background(), rooms, 1)
	if analysis.Score != 32 {
		t.Errorf("Score = %d, want 32", analysis.Score)
	}
	if len(analysis.Issues) != 2 {
		t.Errorf("Issues = %d, want 2 missing-room issues", len(analysis.Issues))
	}
}
