// Package engine runs the full generation pipeline: domain classification,
// semantic analysis, template selection, parallel rendering, faithfulness
// validation, and ranking. GenerateCandidates never returns an error and
// never panics; when everything else fails the caller still gets one minimal
// candidate built from the untouched prompt.
package engine

import (
	"context"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"promptforge/internal/domain"
	"promptforge/internal/faithfulness"
	"promptforge/internal/logging"
	"promptforge/internal/perf"
	"promptforge/internal/selection"
	"promptforge/internal/semantics"
	"promptforge/internal/templates"
	"promptforge/internal/types"
)

const (
	defaultMaxCandidates         = 3
	defaultFaithfulnessThreshold = 70

	// Scoring weights over the candidate's components.
	baseScore          = 50.0
	faithfulBonus      = 30.0
	qualityWeight      = 0.2
	fallbackScore      = 0.3
	fallbackConfidence = 30
)

// Engine generates template candidates for prompts. It holds configuration
// only; no state survives a call, so one Engine is safe for concurrent use.
type Engine struct {
	maxCandidates         int
	diversity             bool
	faithfulnessThreshold int
	domainService         domain.Service
	rendererOverrides     map[types.TemplateType]templates.Renderer
	budget                perf.Budget
	headings              templates.Headings
}

// Option adjusts engine construction.
type Option func(*Engine)

// WithMaxCandidates caps how many candidates GenerateCandidates returns.
// Values outside [1,3] are clamped.
func WithMaxCandidates(n int) Option {
	return func(e *Engine) {
		if n < 1 {
			n = 1
		}
		if n > defaultMaxCandidates {
			n = defaultMaxCandidates
		}
		e.maxCandidates = n
	}
}

// WithDiversityDisabled turns off the selection similarity filter.
func WithDiversityDisabled() Option {
	return func(e *Engine) {
		e.diversity = false
	}
}

// WithFaithfulnessThreshold sets the minimum faithfulness score a candidate
// needs to be marked validated. Candidates below it are still returned,
// unvalidated, unless they carry a critical violation.
func WithFaithfulnessThreshold(score int) Option {
	return func(e *Engine) {
		e.faithfulnessThreshold = score
	}
}

// WithDomainService replaces the keyword classifier.
func WithDomainService(s domain.Service) Option {
	return func(e *Engine) {
		e.domainService = s
	}
}

// WithRenderer overrides the renderer for one template type.
func WithRenderer(t types.TemplateType, r templates.Renderer) Option {
	return func(e *Engine) {
		if e.rendererOverrides == nil {
			e.rendererOverrides = map[types.TemplateType]templates.Renderer{}
		}
		e.rendererOverrides[t] = r
	}
}

// WithTimeBudget replaces the per-operation time budget.
func WithTimeBudget(b perf.Budget) Option {
	return func(e *Engine) {
		e.budget = b
	}
}

// WithHeadings applies template pack heading overrides to every render.
func WithHeadings(h templates.Headings) Option {
	return func(e *Engine) {
		e.headings = h
	}
}

// New builds an engine with defaults: keyword domain classifier, built-in
// renderers, diversity on, threshold 70, default time budget.
func New(opts ...Option) *Engine {
	e := &Engine{
		maxCandidates:         defaultMaxCandidates,
		diversity:             true,
		faithfulnessThreshold: defaultFaithfulnessThreshold,
		domainService:         domain.Classifier{},
		budget:                perf.DefaultBudget,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// GenerateCandidates runs the pipeline for one prompt. The returned slice
// always holds between 1 and maxCandidates entries, best first.
func (e *Engine) GenerateCandidates(
	ctx context.Context,
	prompt string,
	lint types.LintResult,
) (result []types.TemplateCandidate) {
	timer := logging.StartTimer(logging.CategoryEngine, "GenerateCandidates")
	defer timer.StopWithThreshold(e.budget.Warning)

	defer func() {
		if r := recover(); r != nil {
			logging.EngineError("pipeline panic recovered: %v", r)
			result = []types.TemplateCandidate{e.fallbackCandidate(prompt, types.DomainClassification{
				Domain:     types.DomainGeneral,
				Confidence: fallbackConfidence,
			}, types.PromptSemantics{})}
		}
	}()

	dom := e.classifyDomain(ctx, prompt)
	sem := semantics.Analyze(prompt)

	var selOpts []selection.Option
	if !e.diversity {
		selOpts = append(selOpts, selection.WithoutDiversity())
	}
	selected := selection.SelectTemplates(sem, dom, lint, selOpts...)

	candidates := e.renderAll(ctx, prompt, sem, dom, selected)

	if len(candidates) == 0 {
		logging.EngineWarn("no candidate survived rendering, using fallback")
		return []types.TemplateCandidate{e.fallbackCandidate(prompt, dom, sem)}
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
	if len(candidates) > e.maxCandidates {
		candidates = candidates[:e.maxCandidates]
	}

	logging.Engine("generated %d candidates for prompt of %d chars", len(candidates), len(prompt))
	return candidates
}

// classifyDomain consults the domain service under the time budget. Any
// error or timeout degrades to general with low confidence rather than
// failing the pipeline.
func (e *Engine) classifyDomain(ctx context.Context, prompt string) types.DomainClassification {
	res := perf.MeasureCtx(ctx, "domain.Classify", e.budget,
		func() (types.DomainClassification, error) {
			return e.domainService.Classify(ctx, prompt)
		},
		func() (types.DomainClassification, error) {
			return types.DomainClassification{
				Domain:     types.DomainGeneral,
				Confidence: fallbackConfidence,
			}, nil
		})
	if res.Err != nil {
		logging.EngineWarn("domain classification failed: %v", res.Err)
		return types.DomainClassification{
			Domain:     types.DomainGeneral,
			Confidence: fallbackConfidence,
		}
	}
	return res.Value
}

// renderAll renders the selected template types in parallel, preserving
// selection order in the output. A renderer failure or an unsuitable
// renderer drops that slot; it never fails the batch.
func (e *Engine) renderAll(
	ctx context.Context,
	prompt string,
	sem types.PromptSemantics,
	dom types.DomainClassification,
	selected []types.TemplateType,
) []types.TemplateCandidate {
	slots := make([]*types.TemplateCandidate, len(selected))

	g, gctx := errgroup.WithContext(ctx)
	for i, tmpl := range selected {
		g.Go(func() error {
			// A panicking renderer costs its slot, not the batch.
			defer func() {
				if r := recover(); r != nil {
					logging.EngineError("renderer %s panicked: %v", tmpl, r)
				}
			}()
			if c := e.renderOne(gctx, prompt, sem, dom, tmpl); c != nil {
				slots[i] = c
			}
			return nil
		})
	}
	// Workers never return errors; Wait is only a join point.
	_ = g.Wait()

	candidates := make([]types.TemplateCandidate, 0, len(slots))
	for _, c := range slots {
		if c != nil {
			candidates = append(candidates, *c)
		}
	}
	return candidates
}

func (e *Engine) renderOne(
	ctx context.Context,
	prompt string,
	sem types.PromptSemantics,
	dom types.DomainClassification,
	tmpl types.TemplateType,
) *types.TemplateCandidate {
	renderer, err := e.rendererFor(tmpl)
	if err != nil {
		logging.EngineError("renderer lookup for %s: %v", tmpl, err)
		return nil
	}

	rc := templates.RenderContext{
		Prompt:    prompt,
		Semantics: sem,
		Headings:  e.headings,
	}
	if !renderer.IsSuitable(rc) {
		logging.EngineDebug("renderer %s unsuitable for prompt", tmpl)
		return nil
	}

	res := perf.MeasureCtx(ctx, "render."+string(tmpl), e.budget,
		func() (templates.RenderResult, error) {
			return renderer.Render(rc)
		}, nil)
	if res.Err != nil {
		logging.EngineWarn("render %s failed: %v", tmpl, res.Err)
		return nil
	}

	verdict := faithfulness.Validate(prompt, res.Value.Content)
	if verdict.HasCritical() {
		logging.EngineWarn("render %s dropped: %s", tmpl, verdict.Report)
		return nil
	}
	validated := verdict.IsValid && verdict.Score >= e.faithfulnessThreshold

	return &types.TemplateCandidate{
		ID:                    uuid.NewString(),
		Template:              tmpl,
		Content:               res.Value.Content,
		Score:                 candidateScore(validated, res.Value.QualityScore),
		FaithfulnessValidated: validated,
		Faithfulness:          verdict,
		GenerationTime:        res.ExecutionTime,
		Metadata: types.CandidateMetadata{
			Domain:           dom.Domain,
			DomainConfidence: dom.Confidence,
			Intent:           sem.Intent,
			RendererQuality:  res.Value.QualityScore,
			Warnings:         res.Warnings,
		},
	}
}

func (e *Engine) rendererFor(tmpl types.TemplateType) (templates.Renderer, error) {
	if r, ok := e.rendererOverrides[tmpl]; ok {
		return r, nil
	}
	return templates.ForType(tmpl)
}

func candidateScore(validated bool, quality int) float64 {
	score := baseScore + qualityWeight*float64(quality)
	if validated {
		score += faithfulBonus
	}
	return math.Min(100, math.Max(0, score))
}

// fallbackCandidate wraps the untouched prompt in a minimal candidate. Its
// score marks it as a last resort.
func (e *Engine) fallbackCandidate(
	prompt string,
	dom types.DomainClassification,
	sem types.PromptSemantics,
) types.TemplateCandidate {
	return types.TemplateCandidate{
		ID:                    uuid.NewString(),
		Template:              types.TemplateMinimal,
		Content:               prompt,
		Score:                 fallbackScore,
		FaithfulnessValidated: true,
		Faithfulness: types.FaithfulnessResult{
			IsValid: true,
			Score:   100,
			Report:  "fallback: prompt returned unchanged",
		},
		GenerationTime: time.Duration(0),
		Metadata: types.CandidateMetadata{
			Domain:           dom.Domain,
			DomainConfidence: dom.Confidence,
			Intent:           sem.Intent,
			Fallback:         true,
		},
	}
}
