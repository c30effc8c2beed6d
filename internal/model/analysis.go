package model

// Status is the qualitative judgment attached to a sub-score. Always a
// closed enum, never free text used as a control value.
type Status string

const (
	StatusOptimal    Status = "optimal"
	StatusAcceptable Status = "acceptable"
	StatusNeedsWork  Status = "needs_work"
	StatusMissing    Status = "missing"
)

// Severity grades an issue entry.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// Issue is a machine-readable finding with the numeric comparison that
// produced it, so the consuming UI can explain a low score instead of
// presenting an opaque number.
type Issue struct {
	Severity Severity `json:"severity"`
	Category string   `json:"category"`
	Message  string   `json:"message"`
	Current  float64  `json:"current"`
	Target   float64  `json:"target"`
}

// Recommendation is a templated, rule-derived suggestion. Category is a
// closed set (distance, floor_change, backtracking, staffing, layout).
type Recommendation struct {
	Category string `json:"category"`
	Message  string `json:"message"`
}

// AnalyzeRequest carries one full scoring run's input. Rooms, staff and
// workflows are already loaded records; transport and persistence are the
// caller's concern.
type AnalyzeRequest struct {
	PracticeID     string        `json:"practice_id,omitempty"`
	Rooms          []RoomSpec    `json:"rooms"`
	Staff          []StaffMember `json:"staff"`
	Workflows      []Workflow    `json:"workflows,omitempty"`
	OperatingHours float64       `json:"operating_hours,omitempty"`
	PatientVolume  int           `json:"patient_volume,omitempty"`
	UnitsPerMeter  *float64      `json:"units_per_meter,omitempty"`
}

// RoomSizeScore is the sizing result for one room.
type RoomSizeScore struct {
	RoomID        string   `json:"room_id"`
	Name          string   `json:"name,omitempty"`
	Type          RoomType `json:"canonical_type"`
	Area          float64  `json:"area_sqm"`
	Score         int      `json:"score"`
	Assessment    string   `json:"assessment"`
	Status        Status   `json:"status"`
	Detail        string   `json:"detail,omitempty"`
	FromKnowledge bool     `json:"from_knowledge"`
}

// CirculationScore is the flow-cost result for one room-type pair with a
// distance guideline.
type CirculationScore struct {
	From          RoomType `json:"from"`
	To            RoomType `json:"to"`
	Distance      float64  `json:"distance"`
	Optimal       float64  `json:"optimal"`
	Max           float64  `json:"max"`
	Points        int      `json:"points"`
	Status        Status   `json:"status"`
	FromKnowledge bool     `json:"from_knowledge"`
}

// LayoutAnalysis is the layout scorer output. RoomSizeScore is nil when no
// room could be sized; the combiner substitutes its neutral default then.
type LayoutAnalysis struct {
	Score         int                `json:"score"`
	RoomSizeScore *int               `json:"room_size_score,omitempty"`
	RoomSizes     []RoomSizeScore    `json:"room_sizes"`
	Circulation   []CirculationScore `json:"circulation"`
	Issues        []Issue            `json:"issues"`
}

// StaffingRatio is one scored headcount ratio. ActualFTE is the
// FTE-weighted variant of Actual. CountsTowardOverall marks the fixed
// subset that feeds the overall staffing score; the frontdesk ratio is
// tracked but deliberately excluded.
type StaffingRatio struct {
	Name                string  `json:"name"`
	Actual              float64 `json:"actual"`
	ActualFTE           float64 `json:"actual_fte"`
	Min                 float64 `json:"min"`
	Max                 float64 `json:"max"`
	Optimal             float64 `json:"optimal"`
	Score               int     `json:"score"`
	Status              Status  `json:"status"`
	Detail              string  `json:"detail,omitempty"`
	CountsTowardOverall bool    `json:"counts_toward_overall"`
	FromKnowledge       bool    `json:"from_knowledge"`
}

// StaffingAnalysis is the staffing evaluator output. Score is nil for an
// empty roster; the combiner substitutes its neutral default then.
type StaffingAnalysis struct {
	Score     *int            `json:"score,omitempty"`
	Breakdown StaffBreakdown  `json:"breakdown"`
	Ratios    []StaffingRatio `json:"ratios"`
	Issues    []Issue         `json:"issues"`
}

// UtilizationBand classifies the projected volume-to-capacity ratio.
type UtilizationBand string

const (
	UtilizationExcellent  UtilizationBand = "excellent"
	UtilizationAcceptable UtilizationBand = "acceptable"
	UtilizationPoor       UtilizationBand = "poor"
)

// CapacityAnalysis is the capacity/wait-time projection. This is a
// closed-form heuristic, not a queueing simulation.
type CapacityAnalysis struct {
	DailyCapacity       int             `json:"daily_capacity"`
	RoomLimited         int             `json:"room_limited"`
	ProviderLimited     int             `json:"provider_limited"`
	PatientsPerHour     float64         `json:"patients_per_hour"`
	StaffQuality        float64         `json:"staff_quality"`
	VolumeRatio         float64         `json:"volume_ratio"`
	Utilization         UtilizationBand `json:"utilization"`
	ExpectedWaitMinutes int             `json:"expected_wait_minutes"`
	Score               int             `json:"score"`
	FromKnowledge       bool            `json:"from_knowledge"`
	Detail              string          `json:"detail,omitempty"`
}

// ComponentScores are the sanitized sub-scores that entered the overall
// weighting, kept inspectable next to the result.
type ComponentScores struct {
	Efficiency int `json:"efficiency"`
	RoomSize   int `json:"room_size"`
	Staffing   int `json:"staffing"`
	Capacity   int `json:"capacity"`
}

// AnalysisReport is the full pipeline output. Computed fresh on every
// request and never persisted by the scoring core itself.
type AnalysisReport struct {
	ReportID        string             `json:"report_id"`
	PracticeID      string             `json:"practice_id,omitempty"`
	OverallScore    int                `json:"overall_score"`
	Components      ComponentScores    `json:"components"`
	Layout          LayoutAnalysis     `json:"layout"`
	Staffing        StaffingAnalysis   `json:"staffing"`
	Capacity        CapacityAnalysis   `json:"capacity"`
	Workflows       []WorkflowAnalysis `json:"workflows"`
	Recommendations []Recommendation   `json:"recommendations"`
	TookMS          int64              `json:"took_ms"`
}

// WorkflowAnalyzeRequest scores a single workflow against a room set.
type WorkflowAnalyzeRequest struct {
	Rooms    []RoomSpec `json:"rooms"`
	Workflow Workflow   `json:"workflow"`
}

// FeedbackRequest records what the consuming UI did with a recommendation.
type FeedbackRequest struct {
	ReportID string `json:"report_id" binding:"required"`
	Category string `json:"category" binding:"required"`
	Action   string `json:"action" binding:"required"`
}

// FeedbackResponse represents feedback response.
type FeedbackResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}
