// Package selection picks which template types to render for a prompt. The
// strategy tiers on domain confidence, ranks by score, and filters near
// duplicate structures so the caller never receives two templates that would
// restructure the prompt the same way.
package selection

import (
	"sort"

	"promptforge/internal/logging"
	"promptforge/internal/rules"
	"promptforge/internal/scoring"
	"promptforge/internal/types"
)

// Domain confidence tiers. High confidence narrows to the two strongest
// templates, moderate keeps three, anything below falls back to the rule
// table instead of trusting the scores.
const (
	highConfidence     = 90
	moderateConfidence = 70

	maxSelected = 3

	// Candidates at or above this pairwise similarity to an already
	// accepted template are rejected by the diversity filter.
	similarityCutoff = 0.8
)

// similarity is a fixed symmetric matrix over the four template types.
// Enumerated and sequential both produce list-shaped output, so they sit
// above the cutoff and exclude each other. Extending types.TemplateType
// requires extending this table; TestSimilarityMatrixCoversAllTypes guards
// the omission.
var similarity = map[types.TemplateType]map[types.TemplateType]float64{
	types.TemplateTaskIO: {
		types.TemplateTaskIO:     1.0,
		types.TemplateEnumerated: 0.40,
		types.TemplateSequential: 0.55,
		types.TemplateMinimal:    0.30,
	},
	types.TemplateEnumerated: {
		types.TemplateTaskIO:     0.40,
		types.TemplateEnumerated: 1.0,
		types.TemplateSequential: 0.85,
		types.TemplateMinimal:    0.35,
	},
	types.TemplateSequential: {
		types.TemplateTaskIO:     0.55,
		types.TemplateEnumerated: 0.85,
		types.TemplateSequential: 1.0,
		types.TemplateMinimal:    0.30,
	},
	types.TemplateMinimal: {
		types.TemplateTaskIO:     0.30,
		types.TemplateEnumerated: 0.35,
		types.TemplateSequential: 0.30,
		types.TemplateMinimal:    1.0,
	},
}

// Option adjusts selection behavior.
type Option func(*config)

type config struct {
	diversity bool
}

// WithoutDiversity disables the similarity filter so the raw ranking is
// returned. Used when the caller wants every viable structure.
func WithoutDiversity() Option {
	return func(c *config) {
		c.diversity = false
	}
}

// SelectTemplates returns 1 to 3 duplicate-free template types, best first.
// It never returns an empty slice.
func SelectTemplates(
	sem types.PromptSemantics,
	dom types.DomainClassification,
	lint types.LintResult,
	opts ...Option,
) []types.TemplateType {
	cfg := config{diversity: true}
	for _, opt := range opts {
		opt(&cfg)
	}

	timer := logging.StartTimer(logging.CategorySelection, "SelectTemplates")
	defer timer.Stop()

	var ranked []types.TemplateType
	limit := maxSelected

	switch {
	case dom.Confidence >= highConfidence:
		ranked = rankByScore(sem, dom, lint)
		limit = 2
		logging.SelectionDebug("high confidence tier (domain=%s conf=%d), top 2",
			dom.Domain, dom.Confidence)
	case dom.Confidence >= moderateConfidence:
		ranked = rankByScore(sem, dom, lint)
		logging.SelectionDebug("moderate confidence tier (domain=%s conf=%d), top 3",
			dom.Domain, dom.Confidence)
	default:
		ranked = rules.Recommend(rules.Input{
			Issues:             lint.IssueTypes(),
			Complexity:         sem.Complexity,
			SequentialKeywords: sem.Context.Sequential,
		})
		logging.SelectionDebug("low confidence tier (conf=%d), rule table gave %v",
			dom.Confidence, ranked)
	}

	selected := ranked
	if cfg.diversity {
		selected = diversityFilter(ranked, limit)
	} else if len(selected) > limit {
		selected = selected[:limit]
	}

	if len(selected) == 0 {
		selected = []types.TemplateType{types.TemplateMinimal}
	}

	logging.Selection("selected %v", selected)
	return selected
}

// rankByScore orders all template types by overall score, breaking ties by
// selection confidence and then by canonical type order so the result is
// fully deterministic.
func rankByScore(
	sem types.PromptSemantics,
	dom types.DomainClassification,
	lint types.LintResult,
) []types.TemplateType {
	scores := scoring.ScoreAll(sem, dom, lint)

	order := make(map[types.TemplateType]int, len(scores))
	for i, t := range types.AllTemplateTypes() {
		order[t] = i
	}

	sort.SliceStable(scores, func(i, j int) bool {
		a, b := scores[i], scores[j]
		if a.Factors.OverallScore != b.Factors.OverallScore {
			return a.Factors.OverallScore > b.Factors.OverallScore
		}
		if a.Confidence != b.Confidence {
			return a.Confidence > b.Confidence
		}
		return order[a.Template] < order[b.Template]
	})

	ranked := make([]types.TemplateType, len(scores))
	for i, s := range scores {
		ranked[i] = s.Template
	}
	return ranked
}

// diversityFilter walks the ranking and accepts a candidate only if its
// similarity to every already accepted template is below the cutoff.
func diversityFilter(ranked []types.TemplateType, limit int) []types.TemplateType {
	accepted := make([]types.TemplateType, 0, limit)
	for _, candidate := range ranked {
		if len(accepted) >= limit {
			break
		}
		diverse := true
		for _, a := range accepted {
			if similarity[candidate][a] >= similarityCutoff {
				logging.SelectionDebug("diversity filter rejected %s (%.2f to %s)",
					candidate, similarity[candidate][a], a)
				diverse = false
				break
			}
		}
		if diverse {
			accepted = append(accepted, candidate)
		}
	}
	return accepted
}
