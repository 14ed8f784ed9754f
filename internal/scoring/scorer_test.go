package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"promptforge/internal/types"
)

func TestScoreFactorBounds(t *testing.T) {
	// Saturate every bonus path and verify clamping holds.
	sem := types.PromptSemantics{
		Intent:       types.IntentInstructional,
		Complexity:   types.ComplexityExpert,
		Completeness: types.CompletenessComprehensive,
		Specificity:  types.SpecificityPrecise,
		Confidence:   95,
		Context: types.ContextMarkers{
			Temporal: true, Conditional: true, Comparative: true,
			Sequential: true, Organizational: true, Technical: true,
			Creative: true, Analytical: true,
		},
	}
	dom := types.DomainClassification{Domain: types.DomainCode, Confidence: 95}

	for _, tt := range types.AllTemplateTypes() {
		score := Score(tt, sem, dom, types.LintResult{})
		for name, v := range map[string]int{
			"domain":       score.Factors.DomainAlignment,
			"intent":       score.Factors.IntentMatch,
			"complexity":   score.Factors.ComplexityAppropriate,
			"completeness": score.Factors.CompletenessSupport,
			"context":      score.Factors.ContextualRelevance,
			"overall":      score.Factors.OverallScore,
		} {
			assert.GreaterOrEqual(t, v, 0, "%s factor for %s", name, tt)
			assert.LessOrEqual(t, v, 100, "%s factor for %s", name, tt)
		}
		assert.GreaterOrEqual(t, score.Confidence, 20)
		assert.LessOrEqual(t, score.Confidence, 100)
	}
}

func TestCodeDomainFavorsTaskIO(t *testing.T) {
	sem := types.PromptSemantics{
		Intent:     types.IntentInstructional,
		Complexity: types.ComplexityModerate,
		Context:    types.ContextMarkers{Technical: true},
	}
	dom := types.DomainClassification{Domain: types.DomainCode, Confidence: 85}

	taskIO := Score(types.TemplateTaskIO, sem, dom, types.LintResult{})
	minimal := Score(types.TemplateMinimal, sem, dom, types.LintResult{})

	assert.Greater(t, taskIO.Factors.DomainAlignment, minimal.Factors.DomainAlignment)
	assert.Greater(t, taskIO.Factors.OverallScore, minimal.Factors.OverallScore)
}

func TestAnalysisDomainFavorsEnumerated(t *testing.T) {
	sem := types.PromptSemantics{
		Intent:     types.IntentAnalytical,
		Complexity: types.ComplexityModerate,
		Context:    types.ContextMarkers{Analytical: true},
	}
	dom := types.DomainClassification{Domain: types.DomainAnalysis, Confidence: 95}

	scores := ScoreAll(sem, dom, types.LintResult{})
	require.Len(t, scores, 4)

	best := scores[0]
	for _, s := range scores[1:] {
		if s.Factors.OverallScore > best.Factors.OverallScore {
			best = s
		}
	}
	assert.Equal(t, types.TemplateEnumerated, best.Template)
}

func TestSequentialMarkerBonus(t *testing.T) {
	base := types.PromptSemantics{Intent: types.IntentGenerative, Complexity: types.ComplexityModerate}
	withSeq := base
	withSeq.Context.Sequential = true

	dom := types.DomainClassification{Domain: types.DomainGeneral, Confidence: 50}

	plain := Score(types.TemplateSequential, base, dom, types.LintResult{})
	boosted := Score(types.TemplateSequential, withSeq, dom, types.LintResult{})

	assert.Equal(t, plain.Factors.ContextualRelevance+25, boosted.Factors.ContextualRelevance)
}

func TestComparativeMarkerBonus(t *testing.T) {
	sem := types.PromptSemantics{
		Intent:  types.IntentComparative,
		Context: types.ContextMarkers{Comparative: true},
	}
	dom := types.DomainClassification{Domain: types.DomainGeneral, Confidence: 50}

	enumerated := Score(types.TemplateEnumerated, sem, dom, types.LintResult{})
	assert.Equal(t, factorBase+30, enumerated.Factors.ContextualRelevance)
}

func TestDomainConfidenceThresholds(t *testing.T) {
	var reasons []string
	high := domainAlignment(types.TemplateMinimal,
		types.DomainClassification{Domain: types.DomainGeneral, Confidence: 80}, types.ContextMarkers{}, &reasons)
	mid := domainAlignment(types.TemplateMinimal,
		types.DomainClassification{Domain: types.DomainGeneral, Confidence: 60}, types.ContextMarkers{}, &reasons)
	low := domainAlignment(types.TemplateMinimal,
		types.DomainClassification{Domain: types.DomainGeneral, Confidence: 59}, types.ContextMarkers{}, &reasons)

	assert.Equal(t, mid+5, high)
	assert.Equal(t, low+5, mid)
}

func TestOverallWeighting(t *testing.T) {
	// All factors at base with no bonuses means overall equals the base.
	sem := types.PromptSemantics{
		Intent:       types.IntentType("unknown"),
		Complexity:   types.ComplexityLevel("unknown"),
		Completeness: types.CompletenessLevel("unknown"),
	}
	dom := types.DomainClassification{Domain: types.Domain("unknown"), Confidence: 0}

	score := Score(types.TemplateMinimal, sem, dom, types.LintResult{})
	assert.Equal(t, factorBase, score.Factors.OverallScore)
	assert.Empty(t, score.Reasoning)
}

func TestReasoningTracesThresholds(t *testing.T) {
	sem := types.PromptSemantics{
		Intent:     types.IntentPlanning,
		Complexity: types.ComplexityComplex,
		Context:    types.ContextMarkers{Sequential: true},
	}
	dom := types.DomainClassification{Domain: types.DomainCode, Confidence: 85}

	score := Score(types.TemplateSequential, sem, dom, types.LintResult{})
	require.NotEmpty(t, score.Reasoning)

	joined := ""
	for _, r := range score.Reasoning {
		joined += r + "\n"
	}
	assert.Contains(t, joined, "intent planning favors sequential")
	assert.Contains(t, joined, "sequential marker favors sequential")
	assert.Contains(t, joined, "high domain confidence")
}

func TestScoresNeverCached(t *testing.T) {
	sem := types.PromptSemantics{Intent: types.IntentAnalytical}
	dom := types.DomainClassification{Domain: types.DomainAnalysis, Confidence: 90}

	a := Score(types.TemplateEnumerated, sem, dom, types.LintResult{})
	b := Score(types.TemplateEnumerated, sem, dom, types.LintResult{})

	// Fresh slices each call: mutating one result must not leak into another.
	a.Reasoning[0] = "mutated"
	assert.NotEqual(t, a.Reasoning[0], b.Reasoning[0])
}
