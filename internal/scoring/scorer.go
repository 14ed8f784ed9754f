package scoring

import (
	"fmt"
	"math"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// Score computes the five-factor score of one template type against the
// prompt's semantics, domain classification, and lint issues. A fresh
// TemplateScore is produced per call; nothing is cached across prompts.
func Score(
	template types.TemplateType,
	sem types.PromptSemantics,
	dom types.DomainClassification,
	lint types.LintResult,
) types.TemplateScore {
	var reasoning []string

	domain := domainAlignment(template, dom, sem.Context, &reasoning)
	intent := intentMatch(template, sem.Intent, &reasoning)
	complexity := complexityAppropriate(template, sem.Complexity, &reasoning)
	completeness := completenessSupport(template, sem.Completeness, &reasoning)
	contextual := contextualRelevance(template, sem.Context, &reasoning)

	overall := int(math.Round(
		weightDomain*float64(domain) +
			weightIntent*float64(intent) +
			weightComplexity*float64(complexity) +
			weightCompleteness*float64(completeness) +
			weightContext*float64(contextual),
	))

	score := types.TemplateScore{
		Template: template,
		Factors: types.ScoreFactors{
			DomainAlignment:       domain,
			IntentMatch:           intent,
			ComplexityAppropriate: complexity,
			CompletenessSupport:   completeness,
			ContextualRelevance:   contextual,
			OverallScore:          overall,
		},
		Reasoning:  reasoning,
		Confidence: selectionConfidence(overall, sem),
	}

	logging.ScoringDebug("template=%s overall=%d confidence=%d factors=%+v",
		template, overall, score.Confidence, score.Factors)

	return score
}

// ScoreAll scores every template type in canonical order.
func ScoreAll(
	sem types.PromptSemantics,
	dom types.DomainClassification,
	lint types.LintResult,
) []types.TemplateScore {
	all := types.AllTemplateTypes()
	scores := make([]types.TemplateScore, 0, len(all))
	for _, t := range all {
		scores = append(scores, Score(t, sem, dom, lint))
	}
	return scores
}

// =============================================================================
// FACTOR FUNCTIONS - each returns 0-100, independently clamped
// =============================================================================

func domainAlignment(
	template types.TemplateType,
	dom types.DomainClassification,
	markers types.ContextMarkers,
	reasoning *[]string,
) int {
	score := factorBase

	if bonus := domainBonus[dom.Domain][template]; bonus > 0 {
		score += bonus
		*reasoning = append(*reasoning,
			fmt.Sprintf("domain %s favors %s (+%d)", dom.Domain, template, bonus))
	}

	switch {
	case dom.Confidence >= 80:
		score += 10
		*reasoning = append(*reasoning,
			fmt.Sprintf("high domain confidence %d (+10)", dom.Confidence))
	case dom.Confidence >= 60:
		score += 5
		*reasoning = append(*reasoning,
			fmt.Sprintf("moderate domain confidence %d (+5)", dom.Confidence))
	}

	if dom.Domain == types.DomainCode && markers.Technical {
		score += 15
		*reasoning = append(*reasoning, "code domain with technical context (+15)")
	}

	return clamp(score)
}

func intentMatch(template types.TemplateType, intent types.IntentType, reasoning *[]string) int {
	score := factorBase
	if bonus := intentBonus[intent][template]; bonus > 0 {
		score += bonus
		*reasoning = append(*reasoning,
			fmt.Sprintf("intent %s favors %s (+%d)", intent, template, bonus))
	}
	return clamp(score)
}

func complexityAppropriate(template types.TemplateType, level types.ComplexityLevel, reasoning *[]string) int {
	score := factorBase
	if bonus := complexityBonus[level][template]; bonus > 0 {
		score += bonus
		*reasoning = append(*reasoning,
			fmt.Sprintf("complexity %s fits %s (+%d)", level, template, bonus))
	}
	return clamp(score)
}

func completenessSupport(template types.TemplateType, level types.CompletenessLevel, reasoning *[]string) int {
	score := factorBase
	if bonus := completenessBonus[level][template]; bonus > 0 {
		score += bonus
		*reasoning = append(*reasoning,
			fmt.Sprintf("completeness %s supports %s (+%d)", level, template, bonus))
	}
	return clamp(score)
}

func contextualRelevance(template types.TemplateType, markers types.ContextMarkers, reasoning *[]string) int {
	score := factorBase
	for _, mb := range contextBonuses {
		if mb.template != template || !markerActive(mb.name, markers) {
			continue
		}
		score += mb.bonus
		*reasoning = append(*reasoning,
			fmt.Sprintf("%s marker favors %s (+%d)", mb.name, template, mb.bonus))
	}
	return clamp(score)
}

// selectionConfidence boosts the composite score for high semantic confidence
// and high specificity, clamped to [20, 100].
func selectionConfidence(overall int, sem types.PromptSemantics) int {
	conf := overall

	switch {
	case sem.Confidence >= 80:
		conf += 10
	case sem.Confidence >= 60:
		conf += 5
	}

	switch sem.Specificity {
	case types.SpecificityPrecise:
		conf += 10
	case types.SpecificitySpecific:
		conf += 5
	}

	if conf > 100 {
		conf = 100
	}
	if conf < 20 {
		conf = 20
	}
	return conf
}

func clamp(v int) int {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
