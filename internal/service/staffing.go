package service

import (
	"context"
	"fmt"

	"praxis/internal/model"
	"praxis/internal/utils"
)

// StaffingEvaluator scores headcount and FTE ratios against resolved
// benchmark bands.
type StaffingEvaluator struct {
	classifier *RoleClassifier
	resolver   *BenchmarkResolver
}

// NewStaffingEvaluator creates a staffing evaluator.
func NewStaffingEvaluator(classifier *RoleClassifier, resolver *BenchmarkResolver) *StaffingEvaluator {
	return &StaffingEvaluator{classifier: classifier, resolver: resolver}
}

const noProviderDetail = "no provider on roster, per-provider ratios cannot be computed"

// Evaluate scores the roster breakdown. Zero providers is a terminal case:
// every per-provider ratio reports actual=0, score=0 with the no-provider
// message instead of a division by zero. An entirely empty roster leaves
// the overall score nil so the aggregation substitutes its neutral
// default.
func (e *StaffingEvaluator) Evaluate(ctx context.Context, staff []model.StaffMember, examRoomCount int) model.StaffingAnalysis {
	breakdown := e.classifier.ClassifyStaff(staff)

	analysis := model.StaffingAnalysis{
		Breakdown: breakdown,
		Ratios:    []model.StaffingRatio{},
		Issues:    []model.Issue{},
	}

	providers := breakdown.Providers
	ratios := []struct {
		name      string
		count     float64
		fte       float64
		inOverall bool
	}{
		{RatioAssistantsPerProvider, float64(breakdown.ClinicalAssistants.Count), breakdown.ClinicalAssistants.FTE, true},
		{RatioFrontdeskPerProvider, float64(breakdown.Frontdesk.Count), breakdown.Frontdesk.FTE, false},
		{RatioSupportPerProvider, float64(breakdown.SupportTotal.Count), breakdown.SupportTotal.FTE, true},
		{RatioExamRoomsPerProvider, float64(examRoomCount), float64(examRoomCount), true},
	}

	overallSum := 0
	overallCount := 0
	for _, r := range ratios {
		band := e.resolver.RatioBand(ctx, r.name)
		ratio := model.StaffingRatio{
			Name:                r.name,
			Min:                 band.Min,
			Max:                 band.Max,
			Optimal:             band.Optimal,
			CountsTowardOverall: r.inOverall,
			FromKnowledge:       band.FromKnowledge,
		}

		if providers.Count == 0 {
			ratio.Actual = 0
			ratio.ActualFTE = 0
			ratio.Score = 0
			ratio.Status = model.StatusNeedsWork
			ratio.Detail = noProviderDetail
		} else {
			actual := r.count / float64(providers.Count)
			actualFTE := 0.0
			if providers.FTE > 0 {
				actualFTE = r.fte / providers.FTE
			}
			raw, _ := scoreBand(actual, band)
			ratio.Actual = utils.Round2(actual)
			ratio.ActualFTE = utils.Round2(actualFTE)
			ratio.Score = utils.ClampScore(raw)
			ratio.Status = statusForScore(ratio.Score)
			ratio.Detail = fmt.Sprintf("%.2f per provider vs band %.1f-%.1f (optimal %.1f)", actual, band.Min, band.Max, band.Optimal)

			if actual < band.Min {
				analysis.Issues = append(analysis.Issues, model.Issue{
					Severity: model.SeverityWarning,
					Category: "staffing_ratio",
					Message:  fmt.Sprintf("%s below benchmark minimum", r.name),
					Current:  utils.Round2(actual),
					Target:   band.Min,
				})
			}
		}

		if r.inOverall {
			overallSum += ratio.Score
			overallCount++
		}
		analysis.Ratios = append(analysis.Ratios, ratio)
	}

	if providers.Count == 0 {
		analysis.Issues = append(analysis.Issues, model.Issue{
			Severity: model.SeverityCritical,
			Category: "staffing",
			Message:  "no provider on roster",
			Current:  0,
			Target:   1,
		})
	}

	if breakdown.Total > 0 && overallCount > 0 {
		overall := utils.ClampScore(float64(overallSum) / float64(overallCount))
		analysis.Score = &overall
	}
	return analysis
}
