package service

import (
	"context"
	"log"
	"time"

	"praxis/internal/model"

	"github.com/google/uuid"
)

// AnalysisLogger persists finished reports and recommendation feedback.
// The repository implements it; nil disables logging (tests, store-less
// deployments).
type AnalysisLogger interface {
	LogAnalysis(ctx context.Context, report *model.AnalysisReport) error
	LogFeedback(ctx context.Context, reportID, category, action string) error
}

// ScoringConfig bundles all tunable constants of the pipeline.
type ScoringConfig struct {
	Distance DistanceConfig
	Layout   LayoutConfig
	Workflow WorkflowConfig
	Capacity CapacityConfig
	Weights  AggregateWeights
}

// DefaultScoringConfig returns the stock constants for every component.
func DefaultScoringConfig() ScoringConfig {
	return ScoringConfig{
		Distance: DefaultDistanceConfig(),
		Layout:   DefaultLayoutConfig(),
		Workflow: DefaultWorkflowConfig(),
		Capacity: DefaultCapacityConfig(),
		Weights:  DefaultAggregateWeights(),
	}
}

// AnalyzerService runs the full scoring pipeline: classification, layout,
// staffing, workflow friction, capacity projection and aggregation. Every
// scoring step is pure and synchronous; only benchmark resolution may
// touch the knowledge store.
type AnalyzerService struct {
	classifier *RoleClassifier
	distance   *DistanceModel
	resolver   *BenchmarkResolver
	layout     *LayoutScorer
	staffing   *StaffingEvaluator
	workflow   *WorkflowAnalyzer
	capacity   *CapacitySimulator
	combiner   *ScoreCombiner
	logs       AnalysisLogger
}

// NewAnalyzerService wires the pipeline. logs may be nil.
func NewAnalyzerService(cfg ScoringConfig, store KnowledgeStore, benchmarkTTL time.Duration, logs AnalysisLogger) *AnalyzerService {
	classifier := NewRoleClassifier()
	distance := NewDistanceModel(cfg.Distance)
	resolver := NewBenchmarkResolver(store, benchmarkTTL)
	return &AnalyzerService{
		classifier: classifier,
		distance:   distance,
		resolver:   resolver,
		layout:     NewLayoutScorer(distance, resolver, cfg.Layout),
		staffing:   NewStaffingEvaluator(classifier, resolver),
		workflow:   NewWorkflowAnalyzer(distance, cfg.Workflow),
		capacity:   NewCapacitySimulator(resolver, cfg.Capacity),
		combiner:   NewScoreCombiner(cfg.Weights),
		logs:       logs,
	}
}

// Analyze runs the complete pipeline over one practice snapshot. Never
// errors for malformed business data: degraded inputs produce degraded,
// fully-populated sub-scores.
func (s *AnalyzerService) Analyze(ctx context.Context, req *model.AnalyzeRequest) *model.AnalysisReport {
	start := time.Now()

	unitsPerMeter := 1.0
	if req.UnitsPerMeter != nil && *req.UnitsPerMeter > 0 {
		unitsPerMeter = *req.UnitsPerMeter
	}

	examRooms := 0
	for _, room := range req.Rooms {
		if room.Type == model.RoomExam {
			examRooms++
		}
	}

	layout := s.layout.Score(ctx, req.Rooms, unitsPerMeter)
	staffing := s.staffing.Evaluate(ctx, req.Staff, examRooms)
	capacity := s.capacity.Simulate(ctx, staffing.Breakdown, req.Staff, examRooms, req.OperatingHours, req.PatientVolume, layout.Score)

	workflows := make([]model.WorkflowAnalysis, 0, len(req.Workflows))
	recommendations := []model.Recommendation{}
	for _, workflow := range req.Workflows {
		result := s.workflow.Analyze(workflow, req.Rooms)
		workflows = append(workflows, result)
		recommendations = append(recommendations, result.Recommendations...)
	}

	overall, components := s.combiner.Combine(
		float64(layout.Score),
		scoreOrNaN(layout.RoomSizeScore),
		scoreOrNaN(staffing.Score),
		float64(capacity.Score),
	)

	report := &model.AnalysisReport{
		ReportID:        uuid.NewString(),
		PracticeID:      req.PracticeID,
		OverallScore:    overall,
		Components:      components,
		Layout:          layout,
		Staffing:        staffing,
		Capacity:        capacity,
		Workflows:       workflows,
		Recommendations: recommendations,
		TookMS:          time.Since(start).Milliseconds(),
	}

	if s.logs != nil {
		// fire and forget; persistence is not the scoring core's concern
		logged := *report
		go func() {
			if err := s.logs.LogAnalysis(context.Background(), &logged); err != nil {
				log.Printf("failed to log analysis %s: %v", logged.ReportID, err)
			}
		}()
	}
	return report
}

// AnalyzeWorkflow scores a single workflow against a room set, for the
// workflow-only endpoint.
func (s *AnalyzerService) AnalyzeWorkflow(req *model.WorkflowAnalyzeRequest) model.WorkflowAnalysis {
	return s.workflow.Analyze(req.Workflow, req.Rooms)
}

// Benchmarks resolves every known benchmark with provenance.
func (s *AnalyzerService) Benchmarks(ctx context.Context) []model.BenchmarkBand {
	return s.resolver.ResolveAll(ctx)
}

// LogFeedback records what the consuming UI did with a recommendation.
func (s *AnalyzerService) LogFeedback(ctx context.Context, reportID, category, action string) error {
	if s.logs == nil {
		return nil
	}
	return s.logs.LogFeedback(ctx, reportID, category, action)
}
