package service

import (
	"math"

	"praxis/internal/model"
)

// DistanceConfig carries the tunable geometry constants. The defaults are
// the empirically chosen production values; override via environment (see
// the config package) rather than editing them here.
type DistanceConfig struct {
	FloorPenalty float64 // added per level of floor difference
	ShortMax     float64 // band threshold: short when distance <= ShortMax
	MediumMax    float64 // band threshold: medium when distance <= MediumMax
	ShortWeight  float64
	MediumWeight float64
	LongWeight   float64
}

// DefaultDistanceConfig returns the stock thresholds and weights.
func DefaultDistanceConfig() DistanceConfig {
	return DistanceConfig{
		FloorPenalty: 12,
		ShortMax:     10,
		MediumMax:    25,
		ShortWeight:  1.0,
		MediumWeight: 1.5,
		LongWeight:   2.5,
	}
}

// DistanceModel computes geometric cost between rooms. Pure and
// synchronous; safe for concurrent use.
type DistanceModel struct {
	cfg DistanceConfig
}

// NewDistanceModel creates a distance model with the given constants.
func NewDistanceModel(cfg DistanceConfig) *DistanceModel {
	return &DistanceModel{cfg: cfg}
}

// Between returns the center-to-center Euclidean distance plus the floor
// penalty times the level difference. The penalty models stairs/elevator
// friction and applies even when the horizontal distance is zero.
func (m *DistanceModel) Between(a, b model.RoomSpec) float64 {
	horizontal := math.Hypot(a.CenterX()-b.CenterX(), a.CenterY()-b.CenterY())
	return horizontal + m.cfg.FloorPenalty*math.Abs(float64(a.Floor-b.Floor))
}

// Band classifies a distance as short, medium or long.
func (m *DistanceModel) Band(distance float64) model.DistanceBand {
	switch {
	case distance <= m.cfg.ShortMax:
		return model.BandShort
	case distance <= m.cfg.MediumMax:
		return model.BandMedium
	default:
		return model.BandLong
	}
}

// BandWeight returns the cost multiplier for a band.
func (m *DistanceModel) BandWeight(band model.DistanceBand) float64 {
	switch band {
	case model.BandShort:
		return m.cfg.ShortWeight
	case model.BandMedium:
		return m.cfg.MediumWeight
	default:
		return m.cfg.LongWeight
	}
}

// TypeFlowCost is the average of each source room's distance to its
// nearest destination room. Nearest-neighbor, not all-pairs: a practice
// with many exam rooms is not penalized when only proximity to the
// closest instance matters for flow. Reports ok=false when either side
// has no room with valid geometry.
func (m *DistanceModel) TypeFlowCost(rooms []model.RoomSpec, from, to model.RoomType) (float64, bool) {
	sources := roomsOfType(rooms, from)
	destinations := roomsOfType(rooms, to)
	if len(sources) == 0 || len(destinations) == 0 {
		return 0, false
	}

	total := 0.0
	counted := 0
	for _, src := range sources {
		nearest := math.MaxFloat64
		for _, dst := range destinations {
			if src.ID == dst.ID {
				continue
			}
			if d := m.Between(src, dst); d < nearest {
				nearest = d
			}
		}
		if nearest == math.MaxFloat64 {
			continue
		}
		total += nearest
		counted++
	}
	if counted == 0 {
		return 0, false
	}
	return total / float64(counted), true
}

// SequenceCost sums the type-to-type flow costs between consecutive
// elements of an idealized path (e.g. reception, waiting, exam,
// reception), skipping pairs where either side is absent.
func (m *DistanceModel) SequenceCost(rooms []model.RoomSpec, sequence []model.RoomType) float64 {
	total := 0.0
	for i := 0; i+1 < len(sequence); i++ {
		if cost, ok := m.TypeFlowCost(rooms, sequence[i], sequence[i+1]); ok {
			total += cost
		}
	}
	return total
}

func roomsOfType(rooms []model.RoomSpec, roomType model.RoomType) []model.RoomSpec {
	var filtered []model.RoomSpec
	for _, room := range rooms {
		if room.Type == roomType && room.HasValidGeometry() {
			filtered = append(filtered, room)
		}
	}
	return filtered
}
