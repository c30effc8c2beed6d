package service

import (
	"context"
	"fmt"
	"math"

	"praxis/internal/model"
	"praxis/internal/utils"
)

// CapacityConfig carries the tunable capacity constants.
type CapacityConfig struct {
	PatientsPerRoomPerDay  int     // room-limited daily throughput
	DefaultPatientsPerHour float64 // provider throughput when durations resolve to nothing usable
	NoProviderRoomFactor   float64 // room capacity share usable without providers
	MinStaffQuality        float64 // staff-quality multiplier floor
	MaxStaffQuality        float64
	DefaultOperatingHours  float64
	MinWaitMinutes         float64
	MaxWaitMinutes         float64
}

// DefaultCapacityConfig returns the stock capacity constants.
func DefaultCapacityConfig() CapacityConfig {
	return CapacityConfig{
		PatientsPerRoomPerDay:  10,
		DefaultPatientsPerHour: 1.5,
		NoProviderRoomFactor:   0.6,
		MinStaffQuality:        0.7,
		MaxStaffQuality:        1.2,
		DefaultOperatingHours:  8,
		MinWaitMinutes:         5,
		MaxWaitMinutes:         60,
	}
}

// CapacitySimulator projects daily patient capacity and expected wait
// time. A closed-form heuristic over resolved scheduling benchmarks, not
// a discrete-event or queueing-theory simulation.
type CapacitySimulator struct {
	resolver *BenchmarkResolver
	cfg      CapacityConfig
}

// NewCapacitySimulator creates a capacity simulator.
func NewCapacitySimulator(resolver *BenchmarkResolver, cfg CapacityConfig) *CapacitySimulator {
	return &CapacitySimulator{resolver: resolver, cfg: cfg}
}

// Simulate projects capacity and wait time. layoutScore feeds the
// efficiency factor on wait time; worse layouts wait longer.
func (s *CapacitySimulator) Simulate(
	ctx context.Context,
	breakdown model.StaffBreakdown,
	staff []model.StaffMember,
	examRoomCount int,
	operatingHours float64,
	patientVolume int,
	layoutScore int,
) model.CapacityAnalysis {
	if operatingHours <= 0 {
		operatingHours = s.cfg.DefaultOperatingHours
	}

	visit := s.resolver.DurationBand(ctx, DurationStandardVisit)
	buffer := s.resolver.DurationBand(ctx, DurationVisitBuffer)
	patientsPerHour := s.cfg.DefaultPatientsPerHour
	if visit.Optimal+buffer.Optimal > 0 {
		patientsPerHour = 60 / (visit.Optimal + buffer.Optimal)
	}

	staffQuality := s.staffQuality(staff)

	roomLimited := examRoomCount * s.cfg.PatientsPerRoomPerDay
	providerLimited := int(math.Floor(float64(breakdown.Providers.Count) * patientsPerHour * operatingHours))

	var capacity int
	switch {
	case examRoomCount == 0:
		capacity = 0
	case providerLimited == 0:
		// rooms without providers still see some assisted throughput
		capacity = examRoomCount * int(math.Floor(float64(s.cfg.PatientsPerRoomPerDay)*s.cfg.NoProviderRoomFactor))
	default:
		capacity = roomLimited
		if providerLimited < capacity {
			capacity = providerLimited
		}
	}
	capacity = int(math.Floor(float64(capacity) * staffQuality))
	if examRoomCount > 0 && capacity < 1 {
		capacity = 1
	}

	volumeRatio := 0.0
	switch {
	case capacity > 0:
		volumeRatio = float64(patientVolume) / float64(capacity)
	case patientVolume > 0:
		// documented sentinel: demand with no capacity lands in the poor band
		volumeRatio = 2.0
	}

	analysis := model.CapacityAnalysis{
		DailyCapacity:   capacity,
		RoomLimited:     roomLimited,
		ProviderLimited: providerLimited,
		PatientsPerHour: utils.Round2(patientsPerHour),
		StaffQuality:    utils.Round2(staffQuality),
		VolumeRatio:     utils.Round2(volumeRatio),
		FromKnowledge:   visit.FromKnowledge || buffer.FromKnowledge,
	}

	var baseWait float64
	switch {
	case volumeRatio <= 0.7:
		baseWait = 10
		analysis.Utilization = model.UtilizationExcellent
	case volumeRatio <= 1.0:
		baseWait = 20
		analysis.Utilization = model.UtilizationAcceptable
	default:
		baseWait = 30 + (volumeRatio-1.0)*40
		analysis.Utilization = model.UtilizationPoor
	}

	efficiencyFactor := 1 + float64(100-layoutScore)/200
	staffFactor := 2 - staffQuality
	wait := utils.Clamp(baseWait*efficiencyFactor*staffFactor, s.cfg.MinWaitMinutes, s.cfg.MaxWaitMinutes)
	analysis.ExpectedWaitMinutes = int(math.Round(wait))

	analysis.Score = capacityScore(capacity, volumeRatio)
	analysis.Detail = fmt.Sprintf("capacity %d patients/day (rooms %d, providers %d), volume ratio %.2f",
		capacity, roomLimited, providerLimited, volumeRatio)
	return analysis
}

// staffQuality derives a throughput multiplier from average experience,
// floored so poor staffing alone never drives capacity to zero.
func (s *CapacitySimulator) staffQuality(staff []model.StaffMember) float64 {
	if len(staff) == 0 {
		return 1.0
	}
	total := 0.0
	counted := 0
	for _, member := range staff {
		switch member.Experience {
		case model.ExperienceJunior:
			total += 0.85
		case model.ExperienceSenior:
			total += 1.15
		default:
			total += 1.0
		}
		counted++
	}
	return utils.Clamp(total/float64(counted), s.cfg.MinStaffQuality, s.cfg.MaxStaffQuality)
}

// capacityScore maps the projection onto the 0-100 sub-score the
// aggregate weighting consumes.
func capacityScore(capacity int, volumeRatio float64) int {
	switch {
	case capacity == 0:
		return 0
	case volumeRatio <= 0.7:
		return 95
	case volumeRatio <= 0.85:
		return 85
	case volumeRatio <= 1.0:
		return 70
	default:
		return utils.ClampScore(70 - (volumeRatio-1.0)*100)
	}
}
