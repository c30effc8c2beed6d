package service

import (
	"testing"

	"praxis/internal/model"
)

func newTestWorkflowAnalyzer() *WorkflowAnalyzer {
	return NewWorkflowAnalyzer(NewDistanceModel(DefaultDistanceConfig()), DefaultWorkflowConfig())
}

func TestWorkflowBacktracking(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomReception, 0, 0, 2, 2, 0),
		room("b", model.RoomExam, 4, 0, 2, 2, 0),
		room("c", model.RoomLab, 8, 0, 2, 2, 0),
	}
	workflow := model.Workflow{
		Name: "instrument run",
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowStaff},
			{FromRoomID: "b", ToRoomID: "c", Kind: model.FlowStaff},
			{FromRoomID: "b", ToRoomID: "a", Kind: model.FlowStaff},
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)

	// the third step retraverses the a-b pair in the opposite direction
	if analysis.BacktrackCount != 1 {
		t.Errorf("BacktrackCount = %d, want 1", analysis.BacktrackCount)
	}
	if !analysis.Steps[2].Backtrack {
		t.Error("step 2 not flagged as backtrack")
	}
	if analysis.Steps[0].Backtrack || analysis.Steps[1].Backtrack {
		t.Error("first traversal of a pair flagged as backtrack")
	}

	// distances are each 4, well under the waste thresholds, so only the
	// backtrack penalty applies
	if analysis.MotionWasteIndex != 5 {
		t.Errorf("MotionWasteIndex = %d, want 5", analysis.MotionWasteIndex)
	}
	if analysis.Score != 95 {
		t.Errorf("Score = %d, want 95", analysis.Score)
	}

	var backtrackRec *model.Recommendation
	for i := range analysis.Recommendations {
		if analysis.Recommendations[i].Category == "backtracking" {
			backtrackRec = &analysis.Recommendations[i]
		}
	}
	if backtrackRec == nil {
		t.Fatal("no backtracking recommendation")
	}
}

func TestWorkflowSkipsUnknownRooms(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomReception, 0, 0, 2, 2, 0),
		room("b", model.RoomExam, 4, 0, 2, 2, 0),
		room("broken", model.RoomLab, 8, 0, 0, 0, 0),
	}
	workflow := model.Workflow{
		Name: "patient visit",
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowPatient},
			{FromRoomID: "b", ToRoomID: "ghost", Kind: model.FlowPatient},
			{FromRoomID: "b", ToRoomID: "broken", Kind: model.FlowPatient},
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)
	if analysis.SkippedSteps != 2 {
		t.Errorf("SkippedSteps = %d, want 2 (unknown id and invalid geometry)", analysis.SkippedSteps)
	}
	if len(analysis.Steps) != 1 {
		t.Errorf("scored steps = %d, want 1", len(analysis.Steps))
	}
	if analysis.Score != 100 {
		t.Errorf("Score = %d, want 100", analysis.Score)
	}
}

func TestWorkflowFloorChangeFriction(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomExam, 0, 0, 2, 2, 0),
		room("b", model.RoomLab, 0, 0, 2, 2, 1),
	}
	workflow := model.Workflow{
		Name: "sterilization run",
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowInstrument},
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)
	if analysis.FloorChangeCount != 1 {
		t.Errorf("FloorChangeCount = %d, want 1", analysis.FloorChangeCount)
	}
	step := analysis.Steps[0]
	if !step.FloorChange {
		t.Error("step not flagged as floor change")
	}
	// distance is the pure floor penalty (12); friction is 12 * 1.5
	if step.Distance != 12 {
		t.Errorf("Distance = %v, want 12", step.Distance)
	}
	if step.Friction != 18 {
		t.Errorf("Friction = %v, want 18", step.Friction)
	}

	var floorRec *model.Recommendation
	for i := range analysis.Recommendations {
		if analysis.Recommendations[i].Category == "floor_change" {
			floorRec = &analysis.Recommendations[i]
		}
	}
	if floorRec == nil {
		t.Fatal("no floor_change recommendation")
	}
}

func TestWorkflowStepWeightAndBandOverride(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomExam, 0, 0, 2, 2, 0),
		room("b", model.RoomLab, 8, 0, 2, 2, 0),
	}
	weight := 3.0
	override := model.BandLong
	workflow := model.Workflow{
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowStaff, Weight: &weight, BandOverride: &override},
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)
	step := analysis.Steps[0]
	if step.Friction != 24 {
		t.Errorf("Friction = %v, want 24 (distance 8 times weight 3)", step.Friction)
	}
	if step.Band != model.BandLong {
		t.Errorf("Band = %q, want long from the override", step.Band)
	}
}

func TestWorkflowTopFriction(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomReception, 0, 0, 2, 2, 0),
		room("b", model.RoomWaiting, 3, 0, 2, 2, 0),
		room("c", model.RoomExam, 9, 0, 2, 2, 0),
		room("d", model.RoomLab, 18, 0, 2, 2, 0),
	}
	workflow := model.Workflow{
		Name: "morning round",
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowStaff}, // 3
			{FromRoomID: "b", ToRoomID: "c", Kind: model.FlowStaff}, // 6
			{FromRoomID: "c", ToRoomID: "d", Kind: model.FlowStaff}, // 9
			{FromRoomID: "d", ToRoomID: "a", Kind: model.FlowStaff}, // 18
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)
	if len(analysis.TopFriction) != 3 {
		t.Fatalf("TopFriction = %d entries, want 3", len(analysis.TopFriction))
	}
	if analysis.TopFriction[0].Index != 3 || analysis.TopFriction[1].Index != 2 || analysis.TopFriction[2].Index != 1 {
		t.Errorf("TopFriction order = %d,%d,%d, want 3,2,1",
			analysis.TopFriction[0].Index, analysis.TopFriction[1].Index, analysis.TopFriction[2].Index)
	}
}

func TestWorkflowTopFrictionStableOnTies(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomReception, 0, 0, 2, 2, 0),
		room("b", model.RoomWaiting, 4, 0, 2, 2, 0),
		room("c", model.RoomExam, 8, 0, 2, 2, 0),
	}
	workflow := model.Workflow{
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowStaff},
			{FromRoomID: "b", ToRoomID: "c", Kind: model.FlowStaff},
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)
	// both steps have friction 4; workflow order breaks the tie
	if analysis.TopFriction[0].Index != 0 || analysis.TopFriction[1].Index != 1 {
		t.Errorf("tie order = %d,%d, want 0,1",
			analysis.TopFriction[0].Index, analysis.TopFriction[1].Index)
	}
}

func TestWorkflowScoreBounds(t *testing.T) {
	rooms := []model.RoomSpec{
		room("a", model.RoomReception, 0, 0, 2, 2, 0),
		room("b", model.RoomExam, 500, 0, 2, 2, 0),
	}
	workflow := model.Workflow{
		Steps: []model.WorkflowStep{
			{FromRoomID: "a", ToRoomID: "b", Kind: model.FlowPatient},
			{FromRoomID: "b", ToRoomID: "a", Kind: model.FlowPatient},
		},
	}

	analysis := newTestWorkflowAnalyzer().Analyze(workflow, rooms)
	if analysis.MotionWasteIndex != 100 {
		t.Errorf("MotionWasteIndex = %d, want clamped 100", analysis.MotionWasteIndex)
	}
	if analysis.Score != 0 {
		t.Errorf("Score = %d, want 0", analysis.Score)
	}

	var distanceRec *model.Recommendation
	for i := range analysis.Recommendations {
		if analysis.Recommendations[i].Category == "distance" {
			distanceRec = &analysis.Recommendations[i]
		}
	}
	if distanceRec == nil {
		t.Error("no distance recommendation for long traversals")
	}
}

func TestWorkflowEmpty(t *testing.T) {
	analysis := newTestWorkflowAnalyzer().Analyze(model.Workflow{Name: "empty"}, nil)
	if analysis.Score != 100 {
		t.Errorf("Score = %d, want 100 for an empty workflow", analysis.Score)
	}
	if analysis.TotalDistance != 0 || analysis.AverageDistance != 0 {
		t.Errorf("distances = %v/%v, want 0/0", analysis.TotalDistance, analysis.AverageDistance)
	}
	if len(analysis.Recommendations) != 0 {
		t.Errorf("Recommendations = %v, want none", analysis.Recommendations)
	}
}
