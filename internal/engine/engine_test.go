package engine

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"promptforge/internal/perf"
	"promptforge/internal/templates"
	"promptforge/internal/types"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type stubDomain struct {
	dom   types.DomainClassification
	err   error
	delay time.Duration
}

func (s stubDomain) Classify(ctx context.Context, prompt string) (types.DomainClassification, error) {
	if s.delay > 0 {
		time.Sleep(s.delay)
	}
	return s.dom, s.err
}

type brokenRenderer struct {
	t        types.TemplateType
	panicked bool
}

func (b brokenRenderer) Type() types.TemplateType                { return b.t }
func (b brokenRenderer) IsSuitable(templates.RenderContext) bool { return true }
func (b brokenRenderer) Render(templates.RenderContext) (templates.RenderResult, error) {
	if b.panicked {
		panic("renderer exploded")
	}
	return templates.RenderResult{}, fmt.Errorf("render always fails")
}

func brokenEngine(panicked bool, opts ...Option) *Engine {
	for _, tt := range types.AllTemplateTypes() {
		opts = append(opts, WithRenderer(tt, brokenRenderer{t: tt, panicked: panicked}))
	}
	return New(opts...)
}

func TestCardinalityAlwaysOneToThree(t *testing.T) {
	e := New()
	prompts := []string{
		"",
		"help",
		"write sorting code",
		"debug the function that parses the api response and refactor the module",
		"first reproduce the crash, then isolate the faulty module, finally apply a patch",
		strings.Repeat("analyze the logs and summarize the findings ", 150),
	}

	for _, prompt := range prompts {
		got := e.GenerateCandidates(context.Background(), prompt, types.LintResult{Score: 100})
		assert.GreaterOrEqual(t, len(got), 1, "prompt %q", prompt)
		assert.LessOrEqual(t, len(got), 3, "prompt %q", prompt)
	}
}

func TestCandidatesSortedBestFirst(t *testing.T) {
	e := New()

	got := e.GenerateCandidates(context.Background(),
		"debug the function that parses the api response and refactor the module",
		types.LintResult{Score: 100})

	require.NotEmpty(t, got)
	for i := 1; i < len(got); i++ {
		assert.GreaterOrEqual(t, got[i-1].Score, got[i].Score)
	}
}

func TestNoCandidateCarriesCriticalViolation(t *testing.T) {
	e := New()

	got := e.GenerateCandidates(context.Background(),
		"analyze the logs, summarize the findings, and propose fixes",
		types.LintResult{Score: 100})

	for _, c := range got {
		assert.False(t, c.Faithfulness.HasCritical(), "candidate %s", c.Template)
	}
}

func TestDomainServiceErrorDegradesToGeneral(t *testing.T) {
	e := New(WithDomainService(stubDomain{err: errors.New("classifier down")}))

	got := e.GenerateCandidates(context.Background(), "write sorting code",
		types.LintResult{Score: 100})

	require.NotEmpty(t, got)
	assert.Equal(t, types.DomainGeneral, got[0].Metadata.Domain)
	assert.Equal(t, 30, got[0].Metadata.DomainConfidence)
}

func TestSlowDomainServiceDegradesToGeneral(t *testing.T) {
	e := New(
		WithDomainService(stubDomain{
			dom:   types.DomainClassification{Domain: types.DomainCode, Confidence: 95},
			delay: 120 * time.Millisecond,
		}),
		WithTimeBudget(perf.Budget{Warning: 40 * time.Millisecond, Max: 50 * time.Millisecond}),
	)

	got := e.GenerateCandidates(context.Background(), "write sorting code",
		types.LintResult{Score: 100})

	require.NotEmpty(t, got)
	assert.Equal(t, types.DomainGeneral, got[0].Metadata.Domain)

	// Let the abandoned classifier goroutine finish before goleak runs.
	time.Sleep(150 * time.Millisecond)
}

func TestAllRenderersFailingYieldsFallback(t *testing.T) {
	e := brokenEngine(false)

	got := e.GenerateCandidates(context.Background(), "write sorting code",
		types.LintResult{Score: 100})

	require.Len(t, got, 1)
	c := got[0]
	assert.True(t, c.Metadata.Fallback)
	assert.Equal(t, types.TemplateMinimal, c.Template)
	assert.Equal(t, "write sorting code", c.Content)
	assert.Equal(t, 0.3, c.Score)
	assert.True(t, c.FaithfulnessValidated)
	assert.True(t, c.Faithfulness.IsValid)
	assert.Equal(t, 100, c.Faithfulness.Score)
	assert.NotEmpty(t, c.Faithfulness.Report)
}

func TestPanickingRendererIsContained(t *testing.T) {
	e := brokenEngine(true)

	var got []types.TemplateCandidate
	require.NotPanics(t, func() {
		got = e.GenerateCandidates(context.Background(), "write sorting code",
			types.LintResult{Score: 100})
	})

	require.Len(t, got, 1)
	assert.True(t, got[0].Metadata.Fallback)
}

func TestMaxCandidatesClamped(t *testing.T) {
	prompt := "debug the function that parses the api response and refactor the module"

	one := New(WithMaxCandidates(1)).GenerateCandidates(
		context.Background(), prompt, types.LintResult{Score: 100})
	assert.Len(t, one, 1)

	many := New(WithMaxCandidates(99)).GenerateCandidates(
		context.Background(), prompt, types.LintResult{Score: 100})
	assert.LessOrEqual(t, len(many), 3)

	zero := New(WithMaxCandidates(0)).GenerateCandidates(
		context.Background(), prompt, types.LintResult{Score: 100})
	assert.Len(t, zero, 1)
}

func TestCandidateScoreFormula(t *testing.T) {
	assert.InDelta(t, 100.0, candidateScore(true, 100), 1e-9)
	assert.InDelta(t, 95.0, candidateScore(true, 75), 1e-9)
	assert.InDelta(t, 60.0, candidateScore(false, 50), 1e-9)
	assert.InDelta(t, 50.0, candidateScore(false, 0), 1e-9)
}

func TestRepeatCallsAgreeOnTemplatesAndScores(t *testing.T) {
	e := New()
	prompt := "analyze the sales data for a seasonal trend and chart the distribution"

	first := e.GenerateCandidates(context.Background(), prompt, types.LintResult{Score: 100})
	for i := 0; i < 5; i++ {
		again := e.GenerateCandidates(context.Background(), prompt, types.LintResult{Score: 100})
		require.Len(t, again, len(first))
		for j := range first {
			assert.Equal(t, first[j].Template, again[j].Template)
			assert.Equal(t, first[j].Content, again[j].Content)
			assert.Equal(t, first[j].Score, again[j].Score)
		}
	}
}

func TestCandidateIDsAreUnique(t *testing.T) {
	e := New()

	got := e.GenerateCandidates(context.Background(),
		"analyze the logs, summarize the findings, and propose fixes",
		types.LintResult{Score: 100})

	seen := map[string]bool{}
	for _, c := range got {
		assert.NotEmpty(t, c.ID)
		assert.False(t, seen[c.ID])
		seen[c.ID] = true
	}
}

func TestConcurrentGeneration(t *testing.T) {
	e := New()
	prompts := []string{
		"write sorting code",
		"edit this blog article for tone and grammar",
		"analyze the sales data for a seasonal trend",
		"first reproduce the crash, then isolate the faulty module",
	}

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got := e.GenerateCandidates(context.Background(), prompts[i%len(prompts)],
				types.LintResult{Score: 100})
			assert.GreaterOrEqual(t, len(got), 1)
			assert.LessOrEqual(t, len(got), 3)
		}()
	}
	wg.Wait()
}
