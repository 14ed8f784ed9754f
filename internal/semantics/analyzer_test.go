package semantics

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"

	"promptforge/internal/types"
)

func TestAnalyzeIntent_Table(t *testing.T) {
	tests := []struct {
		name   string
		prompt string
		want   types.IntentType
	}{
		{"Explanatory", "explain how the scheduler picks the next task", types.IntentExplanatory},
		{"ExplanatoryQuestion", "why is the cache slower after restarts", types.IntentExplanatory},
		{"Investigative", "look into the memory growth on the worker nodes", types.IntentInvestigative},
		{"Debugging", "fix the login crash on mobile", types.IntentDebugging},
		{"Comparative", "compare postgres and mysql for this workload", types.IntentComparative},
		{"Planning", "plan the migration roadmap for next quarter", types.IntentPlanning},
		{"Analytical", "evaluate the checkout funnel metrics", types.IntentAnalytical},
		{"Instructional", "implement pagination for the user list", types.IntentInstructional},
		{"Creative", "brainstorm names for the new feature", types.IntentCreative},
		{"DefaultGenerative", "write sorting code", types.IntentGenerative},
		{"TrailingExplanatorySuppressed", "analyze user behavior and explain the trends", types.IntentAnalytical},
		{"TrailingExplanatorySuppressedImplement", "implement caching and describe the eviction policy", types.IntentInstructional},
		{"LeadingExplanatoryKept", "explain the design before we implement it", types.IntentExplanatory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sem := Analyze(tt.prompt)
			assert.Equal(t, tt.want, sem.Intent, "prompt: %q", tt.prompt)
		})
	}
}

func TestAnalyzeEmptyInput(t *testing.T) {
	for _, prompt := range []string{"", "   ", "\n\t  \n"} {
		sem := Analyze(prompt)
		assert.Equal(t, types.IntentGenerative, sem.Intent)
		assert.Equal(t, types.ComplexitySimple, sem.Complexity)
		assert.Equal(t, types.CompletenessMinimal, sem.Completeness)
		assert.Equal(t, types.SpecificityVague, sem.Specificity)
		assert.Equal(t, types.ContextMarkers{}, sem.Context)
		assert.Equal(t, 20, sem.Confidence)
	}
}

func TestAnalyzeDeterminism(t *testing.T) {
	prompt := "first parse the config, then validate each field, and finally write a report in json format"

	a := Analyze(prompt)
	b := Analyze(prompt)

	// Everything but the measured wall-clock time must be byte-identical.
	ignoreTime := cmpopts.IgnoreFields(types.PromptSemantics{}, "ProcessingTime")
	if diff := cmp.Diff(a, b, ignoreTime); diff != "" {
		t.Errorf("repeated analysis differed (-first +second):\n%s", diff)
	}
}

func TestAnalyzeTotality(t *testing.T) {
	inputs := []string{
		"",
		"?!.,;:",
		strings.Repeat("analyze ", 2000), // >5000 chars
		"emoji \U0001F600 and unicode éè",
		"if if if unless when otherwise",
	}
	for _, in := range inputs {
		assert.NotPanics(t, func() { Analyze(in) }, "input %q", in)
	}
}

func TestContextMarkers(t *testing.T) {
	sem := Analyze("first refactor the api, then compare latency daily, if the cache misses grow")

	assert.True(t, sem.Context.Sequential, "sequential marker")
	assert.True(t, sem.Context.Comparative, "comparative marker")
	assert.True(t, sem.Context.Temporal, "temporal marker")
	assert.True(t, sem.Context.Conditional, "conditional marker")
	assert.True(t, sem.Context.Technical, "technical marker")
}

func TestComplexityTiers(t *testing.T) {
	simple := Analyze("write a haiku")
	assert.Equal(t, types.ComplexitySimple, simple.Complexity)

	complexPrompt := "analyze the database schema and refactor the api endpoints. " +
		"then implement caching for the query pipeline. " +
		"if latency regresses, document the findings and plan a rollback. " +
		"finally deploy the container and test the authentication middleware thoroughly " +
		"across every backend service we operate in production today."
	got := Analyze(complexPrompt)
	assert.GreaterOrEqual(t, got.Complexity.Rank(), types.ComplexityComplex.Rank(),
		"multi-sentence multi-task technical prompt should rank complex or expert, got %s", got.Complexity)
}

func TestCompletenessTiers(t *testing.T) {
	minimal := Analyze("sort this")
	assert.Equal(t, types.CompletenessMinimal, minimal.Completeness)

	detailed := Analyze("because our legacy importer is slow, the output must be a json table, " +
		"for instance like this sample, and it should run only within the nightly budget")
	assert.GreaterOrEqual(t, detailed.Completeness.Rank(), types.CompletenessDetailed.Rank(),
		"got %s", detailed.Completeness)
}

func TestSpecificityScoring(t *testing.T) {
	vague := Analyze("make something nice, maybe improve stuff somehow")
	assert.Equal(t, types.SpecificityVague, vague.Specificity)

	precise := Analyze("set the timeout parameter to exactly 250 ms for the v2.1 endpoint, " +
		"with the threshold field at 80 percent")
	assert.Equal(t, types.SpecificityPrecise, precise.Specificity)
}

func TestConfidenceBounds(t *testing.T) {
	low := Analyze("hello")
	assert.GreaterOrEqual(t, low.Confidence, 20)
	assert.LessOrEqual(t, low.Confidence, 100)

	rich := Analyze("first analyze the api metrics daily, then compare the database latency " +
		"against the 250 ms threshold; the output must be a json table, for instance " +
		"like this sample, structured only within the v1.2 schema constraints")
	assert.GreaterOrEqual(t, rich.Confidence, 80, "rich prompt should score high, got %d", rich.Confidence)
	assert.LessOrEqual(t, rich.Confidence, 100)
}

func TestHasSequentialKeywords(t *testing.T) {
	assert.True(t, HasSequentialKeywords("first do X, then Y"))
	assert.True(t, HasSequentialKeywords("Step 1: prepare. Step 2: run."))
	assert.False(t, HasSequentialKeywords("make it faster"))
	assert.False(t, HasSequentialKeywords(""))
}

func TestPhraseIndexBoundaries(t *testing.T) {
	// "go" must not match inside "good"; boundary checks are load-bearing
	// for the whole vocabulary machinery.
	assert.Equal(t, -1, phraseIndex("a good result", "go"))
	assert.Equal(t, 2, phraseIndex("a go result", "go"))
	assert.Equal(t, 0, phraseIndex("how does it work", "how does"))
	assert.Equal(t, -1, phraseIndex("showcase", "how"))
}
