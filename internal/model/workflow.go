package model

// FlowKind labels what moves along a workflow step.
type FlowKind string

const (
	FlowPatient    FlowKind = "patient"
	FlowStaff      FlowKind = "staff"
	FlowInstrument FlowKind = "instrument"
)

// DistanceBand is the coarse classification of a geometric distance.
type DistanceBand string

const (
	BandShort  DistanceBand = "short"
	BandMedium DistanceBand = "medium"
	BandLong   DistanceBand = "long"
)

// WorkflowStep is one directed traversal in a declared care pathway.
// Ordering within a workflow matters. Weight is a non-negative multiplier
// defaulting to 1.0; BandOverride forces the distance band when set.
type WorkflowStep struct {
	FromRoomID   string        `json:"from_room_id"`
	ToRoomID     string        `json:"to_room_id"`
	Kind         FlowKind      `json:"kind"`
	Weight       *float64      `json:"weight,omitempty"`
	BandOverride *DistanceBand `json:"distance_band_override,omitempty"`
}

// EffectiveWeight returns the step weight, defaulting to 1.0 and clamping
// negatives to 0.
func (s WorkflowStep) EffectiveWeight() float64 {
	if s.Weight == nil {
		return 1.0
	}
	if *s.Weight < 0 {
		return 0
	}
	return *s.Weight
}

// Workflow is a declared ordered sequence of room-to-room steps.
type Workflow struct {
	Name  string         `json:"name,omitempty"`
	Steps []WorkflowStep `json:"steps"`
}

// WorkflowStepScore is the scored form of one step.
type WorkflowStepScore struct {
	Index       int          `json:"index"`
	FromRoomID  string       `json:"from_room_id"`
	ToRoomID    string       `json:"to_room_id"`
	Kind        FlowKind     `json:"kind,omitempty"`
	Distance    float64      `json:"distance"`
	Band        DistanceBand `json:"band"`
	FloorChange bool         `json:"floor_change"`
	Backtrack   bool         `json:"backtrack"`
	Friction    float64      `json:"friction"`
}

// WorkflowAnalysis is the scored result for one declared workflow.
type WorkflowAnalysis struct {
	Name             string              `json:"name,omitempty"`
	Score            int                 `json:"score"`
	TotalDistance    float64             `json:"total_distance"`
	AverageDistance  float64             `json:"average_distance"`
	BacktrackCount   int                 `json:"backtrack_count"`
	FloorChangeCount int                 `json:"floor_change_count"`
	MotionWasteIndex int                 `json:"motion_waste_index"`
	SkippedSteps     int                 `json:"skipped_steps,omitempty"`
	Steps            []WorkflowStepScore `json:"steps"`
	TopFriction      []WorkflowStepScore `json:"top_friction"`
	Recommendations  []Recommendation    `json:"recommendations"`
}
