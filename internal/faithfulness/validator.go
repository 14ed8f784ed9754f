package faithfulness

import (
	"fmt"
	"regexp"
	"strings"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// Severity penalties subtracted from the starting score of 100.
const (
	penaltyCritical = 50
	penaltyHigh     = 25
	penaltyMedium   = 15
	penaltyLow      = 5
)

// versionPattern matches version tokens like "3.12", "v2", "1.0.4".
var versionPattern = regexp.MustCompile(`\b(v\d+(\.\d+)*|\d+\.\d+(\.\d+)*)\b`)

// Validate inspects an (original, generated) pair and returns the verdict.
// Five independent checkers each contribute zero or more violations. A single
// critical violation fails validation outright regardless of the numeric
// score; violations below critical lower the score but keep IsValid true.
func Validate(original, generated string) types.FaithfulnessResult {
	timer := logging.StartTimer(logging.CategoryFaithfulness, "Validate")
	defer timer.Stop()

	origWords := tokenize(original)
	genWords := tokenize(generated)
	origTokens := toSet(origWords)
	genTokens := toSet(genWords)

	var violations []types.FaithfulnessViolation
	violations = append(violations, checkForbiddenAdditions(origTokens, genTokens)...)
	violations = append(violations, checkScopeChange(len(origWords), len(genWords))...)
	violations = append(violations, checkContextAssumptions(origTokens, genTokens)...)
	violations = append(violations, checkTechnicalAdditions(original, generated, origTokens, genTokens)...)
	violations = append(violations, checkRequirementExpansion(origTokens, genTokens)...)

	score := 100
	for _, v := range violations {
		switch v.Severity {
		case types.SeverityCritical:
			score -= penaltyCritical
		case types.SeverityHigh:
			score -= penaltyHigh
		case types.SeverityMedium:
			score -= penaltyMedium
		case types.SeverityLow:
			score -= penaltyLow
		}
	}
	if score < 0 {
		score = 0
	}

	result := types.FaithfulnessResult{
		Score:      score,
		Violations: violations,
	}
	result.IsValid = !result.HasCritical()
	result.Report = buildReport(result)

	if !result.IsValid {
		logging.Faithfulness("validation failed: %d violations, score=%d", len(violations), score)
	}

	return result
}

// =============================================================================
// CHECKERS
// =============================================================================

// checkForbiddenAdditions flags named languages (critical) and frameworks
// (high) present in the generated text but absent from the original.
func checkForbiddenAdditions(orig, gen map[string]bool) []types.FaithfulnessViolation {
	var out []types.FaithfulnessViolation

	for _, lang := range programmingLanguages {
		if gen[lang] && !orig[lang] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationAddedRequirement,
				Description: fmt.Sprintf("introduces programming language %q not present in original", lang),
				Severity:    types.SeverityCritical,
			})
		}
	}

	for _, fw := range frameworks {
		if gen[fw] && !orig[fw] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationAddedRequirement,
				Description: fmt.Sprintf("introduces framework %q not present in original", fw),
				Severity:    types.SeverityHigh,
			})
		}
	}

	return out
}

// checkScopeChange compares total word counts, repetitions included: more
// than doubling the text is a high violation, shrinking it below half is
// medium.
func checkScopeChange(origWords, genWords int) []types.FaithfulnessViolation {
	if origWords == 0 {
		return nil
	}

	ratio := float64(genWords) / float64(origWords)
	switch {
	case ratio > 2.0:
		return []types.FaithfulnessViolation{{
			Type:        types.ViolationChangedScope,
			Description: fmt.Sprintf("generated text is %.1fx the original length", ratio),
			Severity:    types.SeverityHigh,
		}}
	case ratio < 0.5:
		return []types.FaithfulnessViolation{{
			Type:        types.ViolationChangedScope,
			Description: fmt.Sprintf("generated text is %.1fx the original length", ratio),
			Severity:    types.SeverityMedium,
		}}
	}
	return nil
}

// checkContextAssumptions flags skill levels and project types the original
// never named.
func checkContextAssumptions(orig, gen map[string]bool) []types.FaithfulnessViolation {
	var out []types.FaithfulnessViolation

	for _, term := range skillLevels {
		if gen[term] && !orig[term] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationContextAssumption,
				Description: fmt.Sprintf("assumes skill level %q not stated in original", term),
				Severity:    types.SeverityMedium,
			})
		}
	}

	for _, term := range projectTypes {
		if gen[term] && !orig[term] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationContextAssumption,
				Description: fmt.Sprintf("assumes project type %q not stated in original", term),
				Severity:    types.SeverityMedium,
			})
		}
	}

	return out
}

// checkTechnicalAdditions flags version numbers (high) and named environments
// (medium) introduced by the generated text.
func checkTechnicalAdditions(original, generated string, orig, gen map[string]bool) []types.FaithfulnessViolation {
	var out []types.FaithfulnessViolation

	origVersions := map[string]bool{}
	for _, v := range versionPattern.FindAllString(strings.ToLower(original), -1) {
		origVersions[v] = true
	}
	for _, v := range versionPattern.FindAllString(strings.ToLower(generated), -1) {
		if !origVersions[v] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationTechnicalAddition,
				Description: fmt.Sprintf("introduces version %q not present in original", v),
				Severity:    types.SeverityHigh,
			})
		}
	}

	for _, env := range environments {
		if gen[env] && !orig[env] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationTechnicalAddition,
				Description: fmt.Sprintf("introduces environment %q not present in original", env),
				Severity:    types.SeverityMedium,
			})
		}
	}

	return out
}

// checkRequirementExpansion flags feature vocabulary (high) and constraint
// vocabulary (medium) absent from the original.
func checkRequirementExpansion(orig, gen map[string]bool) []types.FaithfulnessViolation {
	var out []types.FaithfulnessViolation

	for _, term := range featureVocab {
		if gen[term] && !orig[term] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationAddedRequirement,
				Description: fmt.Sprintf("expands requirements with %q not present in original", term),
				Severity:    types.SeverityHigh,
			})
		}
	}

	for _, term := range constraintVocab {
		if gen[term] && !orig[term] {
			out = append(out, types.FaithfulnessViolation{
				Type:        types.ViolationAddedAssumption,
				Description: fmt.Sprintf("adds constraint wording %q not present in original", term),
				Severity:    types.SeverityMedium,
			})
		}
	}

	return out
}

// =============================================================================
// HELPERS
// =============================================================================

func buildReport(r types.FaithfulnessResult) string {
	if len(r.Violations) == 0 {
		return "faithful: no additions detected"
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d violation(s), score %d:", len(r.Violations), r.Score)
	for _, v := range r.Violations {
		fmt.Fprintf(&sb, "\n- [%s/%s] %s", v.Severity, v.Type, v.Description)
	}
	return sb.String()
}

// tokenize lowercases and splits text into words, repetitions kept.
func tokenize(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		return r != '\''
	})
}

func toSet(toks []string) map[string]bool {
	set := make(map[string]bool, len(toks))
	for _, tok := range toks {
		set[tok] = true
	}
	return set
}
