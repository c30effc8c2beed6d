package model

// RoleCategory is the classified staff role. Classification is total:
// every raw role string maps to exactly one category, with RoleUnknown as
// the default.
type RoleCategory string

const (
	RoleProvider          RoleCategory = "provider"
	RoleClinicalAssistant RoleCategory = "clinical_assistant"
	RoleFrontdesk         RoleCategory = "frontdesk"
	RoleExcluded          RoleCategory = "excluded"
	RoleUnknown           RoleCategory = "unknown"
)

// ExperienceLevel is a coarse seniority marker used by the capacity
// simulator's staff-quality multiplier.
type ExperienceLevel string

const (
	ExperienceJunior ExperienceLevel = "junior"
	ExperienceMid    ExperienceLevel = "mid"
	ExperienceSenior ExperienceLevel = "senior"
)

// StaffMember is one entry of the practice roster. Role is free text,
// possibly non-English and punctuated; the analyzer only ever derives a
// RoleCategory from it and never mutates the record.
type StaffMember struct {
	ID         string          `json:"id"`
	Role       string          `json:"role"`
	FTE        *float64        `json:"fte,omitempty"`
	Experience ExperienceLevel `json:"experience_level,omitempty"`
	HourlyCost *float64        `json:"hourly_cost,omitempty"`
}

// EffectiveFTE returns the member's full-time-equivalent share. Missing
// values default to 1.0, negative values count as 0.
func (s StaffMember) EffectiveFTE() float64 {
	if s.FTE == nil {
		return 1.0
	}
	if *s.FTE < 0 {
		return 0
	}
	return *s.FTE
}

// CategoryTally is headcount plus FTE sum for one role category.
type CategoryTally struct {
	Count int     `json:"count"`
	FTE   float64 `json:"fte"`
}

// StaffBreakdown is the aggregate classification of a roster. The
// diagnostics (RoleHistogram, UnknownRoles) carry normalized role strings
// only, never per-staff identifiers.
type StaffBreakdown struct {
	Providers          CategoryTally  `json:"providers"`
	ClinicalAssistants CategoryTally  `json:"clinical_assistants"`
	Frontdesk          CategoryTally  `json:"frontdesk"`
	Excluded           CategoryTally  `json:"excluded"`
	Unknown            CategoryTally  `json:"unknown"`
	SupportTotal       CategoryTally  `json:"support_total"`
	Total              int            `json:"total"`
	RoleHistogram      map[string]int `json:"role_histogram"`
	UnknownRoles       []string       `json:"unknown_roles"`
}
