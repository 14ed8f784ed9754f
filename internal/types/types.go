// Package types provides shared type definitions used across promptforge packages.
// This package exists to break import cycles between semantics, scoring, selection,
// and the engine. Types in this package should be foundational data structures
// with no complex dependencies.
package types

import "time"

// =============================================================================
// TEMPLATE TYPES
// =============================================================================

// TemplateType identifies one of the fixed restructuring styles.
// The set is closed: adding a value requires extending the scoring tables
// and the similarity matrix in internal/selection.
type TemplateType string

const (
	TemplateTaskIO     TemplateType = "task_io"
	TemplateEnumerated TemplateType = "enumerated"
	TemplateSequential TemplateType = "sequential"
	TemplateMinimal    TemplateType = "minimal"
)

// AllTemplateTypes returns every template type in canonical order.
// The order doubles as the deterministic tie-break order during selection.
func AllTemplateTypes() []TemplateType {
	return []TemplateType{TemplateTaskIO, TemplateEnumerated, TemplateSequential, TemplateMinimal}
}

// Valid reports whether t is a known template type.
func (t TemplateType) Valid() bool {
	switch t {
	case TemplateTaskIO, TemplateEnumerated, TemplateSequential, TemplateMinimal:
		return true
	}
	return false
}

// =============================================================================
// SEMANTIC ANALYSIS TYPES
// =============================================================================

// IntentType classifies what the prompt is asking for.
type IntentType string

const (
	IntentInstructional IntentType = "instructional"
	IntentCreative      IntentType = "creative"
	IntentAnalytical    IntentType = "analytical"
	IntentComparative   IntentType = "comparative"
	IntentPlanning      IntentType = "planning"
	IntentDebugging     IntentType = "debugging"
	IntentExplanatory   IntentType = "explanatory"
	IntentInvestigative IntentType = "investigative"
	IntentGenerative    IntentType = "generative"
)

// AllIntentTypes returns every intent type.
func AllIntentTypes() []IntentType {
	return []IntentType{
		IntentInstructional, IntentCreative, IntentAnalytical,
		IntentComparative, IntentPlanning, IntentDebugging,
		IntentExplanatory, IntentInvestigative, IntentGenerative,
	}
}

// ComplexityLevel grades structural complexity of a prompt.
type ComplexityLevel string

const (
	ComplexitySimple   ComplexityLevel = "simple"
	ComplexityModerate ComplexityLevel = "moderate"
	ComplexityComplex  ComplexityLevel = "complex"
	ComplexityExpert   ComplexityLevel = "expert"
)

// Rank returns the ordinal position of the level (simple=0 .. expert=3).
func (c ComplexityLevel) Rank() int {
	switch c {
	case ComplexityModerate:
		return 1
	case ComplexityComplex:
		return 2
	case ComplexityExpert:
		return 3
	default:
		return 0
	}
}

// CompletenessLevel grades how much supporting detail a prompt carries.
type CompletenessLevel string

const (
	CompletenessMinimal       CompletenessLevel = "minimal"
	CompletenessPartial       CompletenessLevel = "partial"
	CompletenessDetailed      CompletenessLevel = "detailed"
	CompletenessComprehensive CompletenessLevel = "comprehensive"
)

// Rank returns the ordinal position of the level (minimal=0 .. comprehensive=3).
func (c CompletenessLevel) Rank() int {
	switch c {
	case CompletenessPartial:
		return 1
	case CompletenessDetailed:
		return 2
	case CompletenessComprehensive:
		return 3
	default:
		return 0
	}
}

// SpecificityLevel grades how concrete the prompt's vocabulary is.
type SpecificityLevel string

const (
	SpecificityVague    SpecificityLevel = "vague"
	SpecificityGeneral  SpecificityLevel = "general"
	SpecificitySpecific SpecificityLevel = "specific"
	SpecificityPrecise  SpecificityLevel = "precise"
)

// Rank returns the ordinal position of the level (vague=0 .. precise=3).
func (s SpecificityLevel) Rank() int {
	switch s {
	case SpecificityGeneral:
		return 1
	case SpecificitySpecific:
		return 2
	case SpecificityPrecise:
		return 3
	default:
		return 0
	}
}

// ContextMarkers holds the eight independent structural signals detected in a prompt.
type ContextMarkers struct {
	Temporal       bool `json:"temporal"`
	Conditional    bool `json:"conditional"`
	Comparative    bool `json:"comparative"`
	Sequential     bool `json:"sequential"`
	Organizational bool `json:"organizational"`
	Technical      bool `json:"technical"`
	Creative       bool `json:"creative"`
	Analytical     bool `json:"analytical"`
}

// ActiveCount returns how many markers are set.
func (m ContextMarkers) ActiveCount() int {
	count := 0
	for _, b := range []bool{
		m.Temporal, m.Conditional, m.Comparative, m.Sequential,
		m.Organizational, m.Technical, m.Creative, m.Analytical,
	} {
		if b {
			count++
		}
	}
	return count
}

// PromptSemantics is the immutable result of one semantic analysis pass.
// Identical prompt text always produces an identical value except for
// ProcessingTime.
type PromptSemantics struct {
	Intent         IntentType        `json:"intent"`
	Complexity     ComplexityLevel   `json:"complexity"`
	Completeness   CompletenessLevel `json:"completeness"`
	Specificity    SpecificityLevel  `json:"specificity"`
	Context        ContextMarkers    `json:"context"`
	Confidence     int               `json:"confidence"` // 0-100, floored at 20
	Indicators     []string          `json:"indicators"` // matched pattern names, for audit
	ProcessingTime time.Duration     `json:"processing_time"`
}

// =============================================================================
// EXTERNAL COLLABORATOR TYPES
// =============================================================================

// Domain is a coarse subject-matter label supplied by the domain classifier.
type Domain string

const (
	DomainCode     Domain = "code"
	DomainWriting  Domain = "writing"
	DomainAnalysis Domain = "analysis"
	DomainResearch Domain = "research"
	DomainGeneral  Domain = "general"
)

// DomainClassification pairs a domain label with the classifier's confidence.
type DomainClassification struct {
	Domain     Domain `json:"domain"`
	Confidence int    `json:"confidence"` // 0-100
}

// LintIssueType identifies a structural defect category in the original prompt.
type LintIssueType string

const (
	IssueMissingTaskVerb   LintIssueType = "missing_task_verb"
	IssueMissingLanguage   LintIssueType = "missing_language"
	IssueMissingIOSpec     LintIssueType = "missing_io_specification"
	IssueVagueWording      LintIssueType = "vague_wording"
	IssueUnclearScope      LintIssueType = "unclear_scope"
)

// LintIssue is one detected defect.
type LintIssue struct {
	Type    LintIssueType `json:"type"`
	Message string        `json:"message"`
	Term    string        `json:"term,omitempty"` // offending token, when one exists
}

// LintResult is the full output of the lint pass over a prompt.
type LintResult struct {
	Score  int         `json:"score"` // 0-100
	Issues []LintIssue `json:"issues"`
}

// Has reports whether the result contains an issue of the given type.
func (r LintResult) Has(t LintIssueType) bool {
	for _, issue := range r.Issues {
		if issue.Type == t {
			return true
		}
	}
	return false
}

// IssueTypes returns the distinct issue types in detection order.
func (r LintResult) IssueTypes() []LintIssueType {
	seen := make(map[LintIssueType]bool, len(r.Issues))
	out := make([]LintIssueType, 0, len(r.Issues))
	for _, issue := range r.Issues {
		if !seen[issue.Type] {
			seen[issue.Type] = true
			out = append(out, issue.Type)
		}
	}
	return out
}

// =============================================================================
// SCORING TYPES
// =============================================================================

// ScoreFactors holds the five per-factor scores plus the weighted composite.
// Every field is in [0, 100].
type ScoreFactors struct {
	DomainAlignment       int `json:"domain_alignment"`
	IntentMatch           int `json:"intent_match"`
	ComplexityAppropriate int `json:"complexity_appropriate"`
	CompletenessSupport   int `json:"completeness_support"`
	ContextualRelevance   int `json:"contextual_relevance"`
	OverallScore          int `json:"overall_score"`
}

// TemplateScore is one scoring pass for one template type. Produced fresh
// per prompt; never cached across prompts.
type TemplateScore struct {
	Template   TemplateType `json:"template"`
	Factors    ScoreFactors `json:"factors"`
	Reasoning  []string     `json:"reasoning"` // audit trace, not used in scoring
	Confidence int          `json:"confidence"`
}

// =============================================================================
// FAITHFULNESS TYPES
// =============================================================================

// Severity grades a faithfulness violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// ViolationType identifies the category of unfaithful content.
type ViolationType string

const (
	ViolationAddedRequirement  ViolationType = "added_requirement"
	ViolationChangedScope      ViolationType = "changed_scope"
	ViolationAddedAssumption   ViolationType = "added_assumption"
	ViolationTechnicalAddition ViolationType = "technical_addition"
	ViolationContextAssumption ViolationType = "context_assumption"
)

// FaithfulnessViolation records one detected fidelity breach.
type FaithfulnessViolation struct {
	Type        ViolationType `json:"type"`
	Description string        `json:"description"`
	Severity    Severity      `json:"severity"`
}

// FaithfulnessResult is the verdict for one (original, generated) pair.
type FaithfulnessResult struct {
	IsValid    bool                    `json:"is_valid"`
	Score      int                     `json:"score"` // 0-100
	Violations []FaithfulnessViolation `json:"violations"`
	Report     string                  `json:"report"`
}

// HasCritical reports whether any violation is critical. A single critical
// violation fails validation regardless of the numeric score.
func (r FaithfulnessResult) HasCritical() bool {
	for _, v := range r.Violations {
		if v.Severity == SeverityCritical {
			return true
		}
	}
	return false
}

// =============================================================================
// CANDIDATE TYPES
// =============================================================================

// CandidateMetadata carries audit details attached to a candidate.
type CandidateMetadata struct {
	Domain           Domain     `json:"domain"`
	DomainConfidence int        `json:"domain_confidence"`
	Intent           IntentType `json:"intent"`
	RendererQuality  int        `json:"renderer_quality"` // 0-100 as reported by the renderer
	Fallback         bool       `json:"fallback"`         // true for the minimal emergency candidate
	Warnings         []string   `json:"warnings,omitempty"`
}

// TemplateCandidate is one generated, scored, validated restructuring of a
// prompt. Candidates are created per call, ranked, returned, and discarded;
// nothing in the core persists them.
type TemplateCandidate struct {
	ID                    string             `json:"id"`
	Template              TemplateType       `json:"template"`
	Content               string             `json:"content"`
	Score                 float64            `json:"score"` // 0-100
	FaithfulnessValidated bool               `json:"faithfulness_validated"`
	Faithfulness          FaithfulnessResult `json:"faithfulness"`
	GenerationTime        time.Duration      `json:"generation_time"`
	Metadata              CandidateMetadata  `json:"metadata"`
}
