// Package scoring computes multi-factor template scores for a prompt's
// semantics, domain classification, and lint issues. All scoring is
// deterministic and rule-based; the bonus tables below are immutable and
// built once at package init, never reconstructed per call.
package scoring

import "promptforge/internal/types"

// factorWeights are the fixed weights of the composite score.
// domain 0.25 + intent 0.25 + complexity 0.20 + completeness 0.15 +
// context 0.15 = 1.0.
const (
	weightDomain       = 0.25
	weightIntent       = 0.25
	weightComplexity   = 0.20
	weightCompleteness = 0.15
	weightContext      = 0.15
)

// factorBase is the starting value of every factor before bonuses.
const factorBase = 50

// domainBonus maps domain -> template -> additive bonus.
// Code work favors explicit task/IO framing and ordered steps; analysis and
// research favor enumerated breakdowns; prose favors light structure.
var domainBonus = map[types.Domain]map[types.TemplateType]int{
	types.DomainCode: {
		types.TemplateTaskIO:     25,
		types.TemplateSequential: 15,
		types.TemplateEnumerated: 5,
	},
	types.DomainWriting: {
		types.TemplateMinimal:    15,
		types.TemplateEnumerated: 10,
		types.TemplateSequential: 5,
	},
	types.DomainAnalysis: {
		types.TemplateEnumerated: 25,
		types.TemplateSequential: 10,
		types.TemplateTaskIO:     5,
	},
	types.DomainResearch: {
		types.TemplateEnumerated: 20,
		types.TemplateSequential: 10,
		types.TemplateTaskIO:     5,
	},
	types.DomainGeneral: {
		types.TemplateMinimal:    10,
		types.TemplateEnumerated: 5,
	},
}

// intentBonus maps each of the nine intents to its template preferences.
var intentBonus = map[types.IntentType]map[types.TemplateType]int{
	types.IntentInstructional: {
		types.TemplateTaskIO:     25,
		types.TemplateSequential: 15,
	},
	types.IntentCreative: {
		types.TemplateMinimal:    20,
		types.TemplateEnumerated: 5,
	},
	types.IntentAnalytical: {
		types.TemplateEnumerated: 25,
		types.TemplateTaskIO:     10,
	},
	types.IntentComparative: {
		types.TemplateEnumerated: 30,
		types.TemplateTaskIO:     5,
	},
	types.IntentPlanning: {
		types.TemplateSequential: 25,
		types.TemplateEnumerated: 15,
	},
	types.IntentDebugging: {
		types.TemplateSequential: 20,
		types.TemplateTaskIO:     15,
	},
	types.IntentExplanatory: {
		types.TemplateEnumerated: 15,
		types.TemplateMinimal:    10,
	},
	types.IntentInvestigative: {
		types.TemplateEnumerated: 20,
		types.TemplateSequential: 10,
	},
	types.IntentGenerative: {
		types.TemplateMinimal: 15,
		types.TemplateTaskIO:  10,
	},
}

// complexityBonus scales template preference by complexity tier: simpler
// prompts favor minimal and enumerated structure, more complex prompts favor
// sequential and task/IO scaffolding.
var complexityBonus = map[types.ComplexityLevel]map[types.TemplateType]int{
	types.ComplexitySimple: {
		types.TemplateMinimal:    25,
		types.TemplateEnumerated: 10,
	},
	types.ComplexityModerate: {
		types.TemplateEnumerated: 15,
		types.TemplateTaskIO:     10,
		types.TemplateMinimal:    5,
	},
	types.ComplexityComplex: {
		types.TemplateSequential: 20,
		types.TemplateTaskIO:     15,
		types.TemplateEnumerated: 10,
	},
	types.ComplexityExpert: {
		types.TemplateSequential: 25,
		types.TemplateTaskIO:     20,
		types.TemplateEnumerated: 5,
	},
}

// completenessBonus scales by how much supporting detail exists to fill a
// structured template; comprehensive prompts support the most structure.
var completenessBonus = map[types.CompletenessLevel]map[types.TemplateType]int{
	types.CompletenessMinimal: {
		types.TemplateMinimal: 20,
		types.TemplateTaskIO:  10,
	},
	types.CompletenessPartial: {
		types.TemplateTaskIO:     10,
		types.TemplateEnumerated: 10,
	},
	types.CompletenessDetailed: {
		types.TemplateTaskIO:     15,
		types.TemplateSequential: 10,
		types.TemplateEnumerated: 10,
	},
	types.CompletenessComprehensive: {
		types.TemplateSequential: 20,
		types.TemplateTaskIO:     15,
		types.TemplateEnumerated: 10,
	},
}

// markerBonus maps each active context marker to the template it favors.
type markerBonus struct {
	name     string
	template types.TemplateType
	bonus    int
}

// contextBonuses lists the per-marker contributions in fixed order.
var contextBonuses = []markerBonus{
	{"sequential", types.TemplateSequential, 25},
	{"comparative", types.TemplateEnumerated, 30},
	{"technical", types.TemplateTaskIO, 20},
	{"organizational", types.TemplateEnumerated, 15},
	{"analytical", types.TemplateEnumerated, 10},
	{"temporal", types.TemplateSequential, 10},
	{"conditional", types.TemplateTaskIO, 10},
	{"creative", types.TemplateMinimal, 15},
}

// markerActive resolves a marker name against the markers struct.
func markerActive(name string, m types.ContextMarkers) bool {
	switch name {
	case "sequential":
		return m.Sequential
	case "comparative":
		return m.Comparative
	case "technical":
		return m.Technical
	case "organizational":
		return m.Organizational
	case "analytical":
		return m.Analytical
	case "temporal":
		return m.Temporal
	case "conditional":
		return m.Conditional
	case "creative":
		return m.Creative
	default:
		return false
	}
}
