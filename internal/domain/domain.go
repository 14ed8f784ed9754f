// Package domain classifies a prompt into a coarse subject area. The engine
// treats this as the one potentially slow collaborator, so Classify takes a
// context and reports cancellation as an error.
package domain

import (
	"context"
	"strings"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// domainVocab is consulted in fixed order; ties go to the earlier domain.
var domainVocab = []struct {
	domain types.Domain
	terms  []string
}{
	{types.DomainCode, []string{
		"code", "program", "script", "function", "api", "bug", "compile",
		"debug", "implement", "refactor", "algorithm", "class", "module",
		"library", "database", "server", "deploy", "test", "framework",
	}},
	{types.DomainWriting, []string{
		"essay", "article", "blog", "story", "email", "letter", "draft",
		"edit", "tone", "paragraph", "grammar", "rewrite", "prose",
		"headline", "copy",
	}},
	{types.DomainAnalysis, []string{
		"analyze", "analyse", "analysis", "data", "trend", "metric",
		"chart", "statistics", "pattern", "insight", "breakdown",
		"correlation", "distribution",
	}},
	{types.DomainResearch, []string{
		"research", "study", "literature", "survey", "sources", "citation",
		"investigate", "evidence", "hypothesis", "findings", "peer",
	}},
}

// Service is the classifier interface the engine depends on.
type Service interface {
	Classify(ctx context.Context, prompt string) (types.DomainClassification, error)
}

// Classifier is the keyword-table implementation of Service. The zero value
// is ready to use.
type Classifier struct{}

// Classify scores the prompt against each domain's vocabulary. Confidence
// grows with the number of distinct matched terms; a prompt matching nothing
// is general with low confidence.
func (Classifier) Classify(ctx context.Context, prompt string) (types.DomainClassification, error) {
	if err := ctx.Err(); err != nil {
		return types.DomainClassification{}, err
	}

	words := tokenize(prompt)

	best := types.DomainGeneral
	bestCount := 0
	for _, entry := range domainVocab {
		count := 0
		for _, term := range entry.terms {
			if words[term] {
				count++
			}
		}
		if count > bestCount {
			best = entry.domain
			bestCount = count
		}
	}

	confidence := 30
	if bestCount > 0 {
		confidence = 40 + 15*bestCount
		if confidence > 95 {
			confidence = 95
		}
	}

	logging.DomainDebug("domain=%s confidence=%d matches=%d", best, confidence, bestCount)
	return types.DomainClassification{Domain: best, Confidence: confidence}, nil
}

func tokenize(prompt string) map[string]bool {
	fields := strings.FieldsFunc(strings.ToLower(prompt), func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	})
	set := make(map[string]bool, len(fields))
	for _, f := range fields {
		set[f] = true
	}
	return set
}
