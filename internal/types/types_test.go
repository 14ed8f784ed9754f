package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTemplateTypeValid(t *testing.T) {
	for _, tt := range AllTemplateTypes() {
		assert.True(t, tt.Valid(), "expected %q to be valid", tt)
	}
	assert.False(t, TemplateType("freeform").Valid())
	assert.False(t, TemplateType("").Valid())
}

func TestLevelRanks(t *testing.T) {
	assert.Equal(t, 0, ComplexitySimple.Rank())
	assert.Equal(t, 3, ComplexityExpert.Rank())
	assert.Equal(t, 0, CompletenessMinimal.Rank())
	assert.Equal(t, 3, CompletenessComprehensive.Rank())
	assert.Equal(t, 0, SpecificityVague.Rank())
	assert.Equal(t, 3, SpecificityPrecise.Rank())

	// Unknown values degrade to rank 0 rather than misordering comparisons.
	assert.Equal(t, 0, ComplexityLevel("bogus").Rank())
}

func TestContextMarkersActiveCount(t *testing.T) {
	assert.Equal(t, 0, ContextMarkers{}.ActiveCount())
	m := ContextMarkers{Sequential: true, Technical: true, Analytical: true}
	assert.Equal(t, 3, m.ActiveCount())
}

func TestLintResultHas(t *testing.T) {
	r := LintResult{Issues: []LintIssue{
		{Type: IssueMissingLanguage},
		{Type: IssueVagueWording, Term: "somehow"},
	}}
	assert.True(t, r.Has(IssueMissingLanguage))
	assert.True(t, r.Has(IssueVagueWording))
	assert.False(t, r.Has(IssueUnclearScope))
}

func TestFaithfulnessHasCritical(t *testing.T) {
	r := FaithfulnessResult{Violations: []FaithfulnessViolation{
		{Type: ViolationChangedScope, Severity: SeverityHigh},
	}}
	assert.False(t, r.HasCritical())

	r.Violations = append(r.Violations, FaithfulnessViolation{
		Type: ViolationAddedRequirement, Severity: SeverityCritical,
	})
	assert.True(t, r.HasCritical())
}
