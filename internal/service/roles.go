package service

import (
	"sort"
	"strings"

	"praxis/internal/model"
	"praxis/internal/utils"
)

// roleRule is one category matcher: a set of exact normalized titles plus
// an ordered list of substring fragments checked when no exact title hits.
// Negative fragments veto a fragment hit, for compound titles that merely
// contain a stronger category's keyword ("zahnarzthelferin" contains
// "zahnarzt" but is assistant staff, not a provider).
type roleRule struct {
	category  model.RoleCategory
	exact     map[string]struct{}
	fragments []string
	negative  []string
}

func (r roleRule) matchesExact(normalized string) bool {
	_, ok := r.exact[normalized]
	return ok
}

func (r roleRule) matchesFragment(normalized string) bool {
	for _, negative := range r.negative {
		if strings.Contains(normalized, negative) {
			return false
		}
	}
	for _, fragment := range r.fragments {
		if strings.Contains(normalized, fragment) {
			return true
		}
	}
	return false
}

// RoleClassifier categorizes free-text staff roles. Every category's
// exact set is consulted first; only then are fragment lists evaluated,
// in a fixed priority order: excluded, provider, clinical_assistant,
// frontdesk, falling through to unknown. Excluded leads the fragment
// pass because management titles often contain provider-like substrings
// ("praxisinhaber") and must not count as clinical capacity.
type RoleClassifier struct {
	rules []roleRule
}

func exactSet(titles ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(titles))
	for _, t := range titles {
		set[t] = struct{}{}
	}
	return set
}

// NewRoleClassifier builds the rule table. All entries are already in
// normalized form.
func NewRoleClassifier() *RoleClassifier {
	return &RoleClassifier{rules: []roleRule{
		{
			category: model.RoleExcluded,
			exact: exactSet(
				"praxismanager", "praxismanagerin",
				"praxisinhaber", "praxisinhaberin",
				"geschaeftsfuehrer", "geschaeftsfuehrerin",
				"practice manager", "office manager",
				"verwaltung", "buchhaltung",
			),
			fragments: []string{
				"manager", "inhaber", "verwaltung", "buchhalt",
				"abrechnung", "controlling", "reinigung", "hausmeister",
				"marketing",
			},
		},
		{
			category: model.RoleProvider,
			exact: exactSet(
				"zahnarzt", "zahnaerztin", "arzt", "aerztin",
				"zahnmediziner", "zahnmedizinerin",
				"kieferorthopaede", "kieferorthopaedin",
				"oralchirurg", "oralchirurgin",
				"implantologe", "implantologin",
				"dentist", "doctor", "dr",
			),
			fragments: []string{
				"zahnarzt", "zahnaerzt", "zahnmedizin", "kieferorthop",
				"oralchirurg", "implantolog", "dentist", "doctor",
				"physician", "dr med", "med dent",
				// bare prefix, kept last; the negative list below fences
				// off the known compound near-misses
				"arzt",
			},
			negative: []string{"helfer", "assisten", "hygien", "sprechstund", "fachangestellt"},
		},
		{
			category: model.RoleClinicalAssistant,
			exact: exactSet(
				"zfa", "zmf", "zmp", "mfa", "dh",
				"zahnmedizinische fachangestellte",
				"zahnmedizinischer fachangestellter",
				"dentalhygienikerin", "dentalhygieniker",
				"prophylaxeassistentin", "prophylaxeassistent",
				"stuhlassistenz",
			),
			fragments: []string{
				"fachangestellt", "assisten", "helfer", "prophylaxe",
				"dentalhygien", "hygien", "sprechstund", "nurse",
				"hygienist",
			},
		},
		{
			category: model.RoleFrontdesk,
			exact: exactSet(
				"empfang", "rezeption", "reception", "anmeldung",
				"front desk", "frontdesk",
				"empfangskraft", "rezeptionist", "rezeptionistin",
			),
			fragments: []string{
				"empfang", "rezeption", "reception", "anmeldung",
				"front desk",
			},
		},
	}}
}

// Classify maps a raw role string to its category. Total and
// deterministic: the same normalized string always yields the same
// category, independent of call order, and never errors. Empty or
// non-text roles classify as unknown. Exact titles beat fragment matches
// across all categories: "zahnmedizinische fachangestellte" must hit the
// clinical-assistant exact set before the provider rule's "zahnmedizin"
// fragment is ever consulted.
func (c *RoleClassifier) Classify(raw string) model.RoleCategory {
	normalized := utils.NormalizeRole(raw)
	if normalized == "" {
		return model.RoleUnknown
	}
	for _, rule := range c.rules {
		if rule.matchesExact(normalized) {
			return rule.category
		}
	}
	for _, rule := range c.rules {
		if rule.matchesFragment(normalized) {
			return rule.category
		}
	}
	return model.RoleUnknown
}

// ClassifyStaff partitions a roster into the five categories with
// headcount and FTE sums, support totals, and the diagnostics downstream
// consumers surface: a normalized-role histogram and a sorted, de-duped
// list of unknown roles. Pure; diagnostics are returned, not logged.
func (c *RoleClassifier) ClassifyStaff(staff []model.StaffMember) model.StaffBreakdown {
	breakdown := model.StaffBreakdown{
		Total:         len(staff),
		RoleHistogram: make(map[string]int),
		UnknownRoles:  []string{},
	}
	unknownSeen := make(map[string]struct{})

	for _, member := range staff {
		normalized := utils.NormalizeRole(member.Role)
		category := c.Classify(member.Role)
		fte := member.EffectiveFTE()

		breakdown.RoleHistogram[normalized]++

		var tally *model.CategoryTally
		switch category {
		case model.RoleProvider:
			tally = &breakdown.Providers
		case model.RoleClinicalAssistant:
			tally = &breakdown.ClinicalAssistants
		case model.RoleFrontdesk:
			tally = &breakdown.Frontdesk
		case model.RoleExcluded:
			tally = &breakdown.Excluded
		default:
			tally = &breakdown.Unknown
			if normalized != "" {
				if _, seen := unknownSeen[normalized]; !seen {
					unknownSeen[normalized] = struct{}{}
					breakdown.UnknownRoles = append(breakdown.UnknownRoles, normalized)
				}
			}
		}
		tally.Count++
		tally.FTE += fte
	}

	breakdown.SupportTotal = model.CategoryTally{
		Count: breakdown.ClinicalAssistants.Count + breakdown.Frontdesk.Count,
		FTE:   breakdown.ClinicalAssistants.FTE + breakdown.Frontdesk.FTE,
	}
	sort.Strings(breakdown.UnknownRoles)

	return breakdown
}
