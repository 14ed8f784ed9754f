package semantics

import (
	"strings"
	"time"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// Analyze converts raw prompt text into a PromptSemantics record.
// The function is total: any string input, including empty and whitespace-only
// text, produces a well-formed result and never panics.
func Analyze(prompt string) types.PromptSemantics {
	start := time.Now()

	trimmed := strings.TrimSpace(prompt)
	if trimmed == "" {
		return emptySemantics(time.Since(start))
	}

	lower := strings.ToLower(trimmed)
	toks := tokenize(lower)
	tokenSet := make(map[string]bool, len(toks))
	for _, tok := range toks {
		tokenSet[tok] = true
	}

	var indicators []string

	intent := detectIntent(lower, tokenSet, &indicators)
	markers := detectMarkers(lower, tokenSet, &indicators)
	complexity := scoreComplexity(lower, toks, tokenSet)
	completeness := scoreCompleteness(lower, tokenSet)
	specificity := scoreSpecificity(lower, toks, tokenSet)

	sem := types.PromptSemantics{
		Intent:       intent,
		Complexity:   complexity,
		Completeness: completeness,
		Specificity:  specificity,
		Context:      markers,
		Indicators:   indicators,
	}
	sem.Confidence = overallConfidence(sem)
	sem.ProcessingTime = time.Since(start)

	logging.SemanticsDebug(
		"analyzed prompt (%d chars): intent=%s complexity=%s completeness=%s specificity=%s confidence=%d",
		len(trimmed), intent, complexity, completeness, specificity, sem.Confidence,
	)

	return sem
}

// emptySemantics is the fixed result for empty or whitespace-only input.
func emptySemantics(elapsed time.Duration) types.PromptSemantics {
	return types.PromptSemantics{
		Intent:         types.IntentGenerative,
		Complexity:     types.ComplexitySimple,
		Completeness:   types.CompletenessMinimal,
		Specificity:    types.SpecificityVague,
		Context:        types.ContextMarkers{},
		Confidence:     20,
		Indicators:     nil,
		ProcessingTime: elapsed,
	}
}

// =============================================================================
// INTENT DETECTION
// =============================================================================

// detectIntent walks the fixed pattern priority list and returns the first
// matching intent, applying the trailing-explanatory-clause suppression.
func detectIntent(lower string, tokenSet map[string]bool, indicators *[]string) types.IntentType {
	for _, pat := range intentPatterns {
		phrase, pos := firstPhraseMatch(lower, tokenSet, pat.phrases)
		if pos < 0 {
			continue
		}

		if pat.intent == types.IntentExplanatory && isTrailingExplanatoryClause(lower, pos) {
			*indicators = append(*indicators, "intent:explanatory:suppressed-trailing-clause")
			continue
		}

		*indicators = append(*indicators, "intent:"+string(pat.intent)+":"+phrase)
		return pat.intent
	}

	return types.IntentGenerative
}

// isTrailingExplanatoryClause reports whether an explanatory phrase at pos is
// subordinate to a stronger primary verb earlier in the same sentence.
// Example: "analyze user behavior and explain the trends" is analytical.
func isTrailingExplanatoryClause(lower string, pos int) bool {
	if pos <= 0 {
		return false
	}

	// Scope the search to the containing sentence.
	sentStart := 0
	for _, loc := range sentenceSplitPattern.FindAllStringIndex(lower[:pos], -1) {
		sentStart = loc[1]
	}

	prefix := lower[sentStart:pos]
	for _, verb := range primaryVerbs {
		if phraseIndex(prefix, verb) >= 0 {
			return true
		}
	}
	return false
}

// firstPhraseMatch returns the earliest-occurring phrase from the list and
// its index in lower, or ("", -1) when nothing matches. Single-word phrases
// are checked against the token set first to avoid substring false positives.
func firstPhraseMatch(lower string, tokenSet map[string]bool, phrases []string) (string, int) {
	best := -1
	matched := ""
	for _, phrase := range phrases {
		if !strings.ContainsAny(phrase, " .") && !tokenSet[phrase] {
			continue
		}
		if pos := phraseIndex(lower, phrase); pos >= 0 && (best < 0 || pos < best) {
			best = pos
			matched = phrase
		}
	}
	return matched, best
}

// =============================================================================
// CONTEXT MARKERS
// =============================================================================

func detectMarkers(lower string, tokenSet map[string]bool, indicators *[]string) types.ContextMarkers {
	markers := types.ContextMarkers{
		Temporal:       anyPhrase(lower, tokenSet, temporalSignals),
		Conditional:    anyPhrase(lower, tokenSet, conditionalMarkers),
		Comparative:    anyPhrase(lower, tokenSet, comparativeSignals),
		Sequential:     anyPhrase(lower, tokenSet, sequentialSignals),
		Organizational: anyPhrase(lower, tokenSet, organizationalSignals),
		Technical:      anyPhrase(lower, tokenSet, technicalTerms),
		Creative:       anyPhrase(lower, tokenSet, creativeSignals),
		Analytical:     anyPhrase(lower, tokenSet, analyticalSignals),
	}

	// Fixed iteration order keeps the indicator trace deterministic.
	for _, m := range []struct {
		name   string
		active bool
	}{
		{"temporal", markers.Temporal},
		{"conditional", markers.Conditional},
		{"comparative", markers.Comparative},
		{"sequential", markers.Sequential},
		{"organizational", markers.Organizational},
		{"technical", markers.Technical},
		{"creative", markers.Creative},
		{"analytical", markers.Analytical},
	} {
		if m.active {
			*indicators = append(*indicators, "marker:"+m.name)
		}
	}

	return markers
}

// HasSequentialKeywords reports whether the prompt carries sequential
// connectives. The fallback rule table consults this independently of a full
// analysis pass.
func HasSequentialKeywords(prompt string) bool {
	lower := strings.ToLower(strings.TrimSpace(prompt))
	if lower == "" {
		return false
	}
	toks := tokenize(lower)
	tokenSet := make(map[string]bool, len(toks))
	for _, tok := range toks {
		tokenSet[tok] = true
	}
	return anyPhrase(lower, tokenSet, sequentialSignals)
}

// =============================================================================
// COMPLEXITY
// =============================================================================

// scoreComplexity builds an additive integer score from structural signals
// and thresholds it: 0-1 simple, 2-4 moderate, 5-7 complex, 8+ expert.
func scoreComplexity(lower string, toks []string, tokenSet map[string]bool) types.ComplexityLevel {
	score := 0

	words := len(toks)
	switch {
	case words > 50:
		score += 2
	case words > 20:
		score++
	}

	sentences := countSentences(lower)
	switch {
	case sentences > 3:
		score += 2
	case sentences > 1:
		score++
	}

	tasks := countOccurrences(toks, taskVerbs)
	switch {
	case tasks > 2:
		score += 2
	case tasks > 1:
		score++
	}

	tech := countDistinctMatches(lower, tokenSet, technicalTerms)
	switch {
	case tech >= 3:
		score += 2
	case tech >= 1:
		score++
	}

	if anyPhrase(lower, tokenSet, conditionalMarkers) {
		score++
	}

	switch {
	case score >= 8:
		return types.ComplexityExpert
	case score >= 5:
		return types.ComplexityComplex
	case score >= 2:
		return types.ComplexityModerate
	default:
		return types.ComplexitySimple
	}
}

// =============================================================================
// COMPLETENESS
// =============================================================================

// scoreCompleteness counts six independent presence checks and thresholds
// the sum: 0-1 minimal, 2-3 partial, 4-5 detailed, 6+ comprehensive.
func scoreCompleteness(lower string, tokenSet map[string]bool) types.CompletenessLevel {
	score := 0
	for _, signals := range [][]string{
		contextSignals, requirementSignals, constraintSignals,
		outputSignals, exampleSignals, formatSignals,
	} {
		if anyPhrase(lower, tokenSet, signals) {
			score++
		}
	}

	switch {
	case score >= 6:
		return types.CompletenessComprehensive
	case score >= 4:
		return types.CompletenessDetailed
	case score >= 2:
		return types.CompletenessPartial
	default:
		return types.CompletenessMinimal
	}
}

// =============================================================================
// SPECIFICITY
// =============================================================================

// scoreSpecificity computes 2*specificTerms + quantifiers + 3*hasTechSpec -
// vagueTerms and thresholds: <2 vague, 2-4 general, 5-7 specific, 8+ precise.
func scoreSpecificity(lower string, toks []string, tokenSet map[string]bool) types.SpecificityLevel {
	specific := countDistinctMatches(lower, tokenSet, specificTerms) +
		countDistinctMatches(lower, tokenSet, technicalTerms)
	quantifiers := len(quantifierPattern.FindAllString(lower, -1))
	vague := countOccurrences(toks, vagueTerms)

	score := 2*specific + quantifiers - vague
	if technicalSpecPattern.MatchString(lower) {
		score += 3
	}

	switch {
	case score >= 8:
		return types.SpecificityPrecise
	case score >= 5:
		return types.SpecificitySpecific
	case score >= 2:
		return types.SpecificityGeneral
	default:
		return types.SpecificityVague
	}
}

// =============================================================================
// CONFIDENCE
// =============================================================================

// overallConfidence starts at 50 and adds bonuses for non-default findings,
// clamped to [20, 100].
func overallConfidence(sem types.PromptSemantics) int {
	conf := 50

	if sem.Intent != types.IntentGenerative {
		conf += 10
	}
	conf += 5 * sem.Complexity.Rank()
	conf += 5 * sem.Completeness.Rank()
	conf += 5 * sem.Specificity.Rank()
	conf += 3 * sem.Context.ActiveCount()

	if conf > 100 {
		conf = 100
	}
	if conf < 20 {
		conf = 20
	}
	return conf
}

// =============================================================================
// TEXT HELPERS
// =============================================================================

// tokenize splits lowercased text into word tokens, dropping punctuation.
func tokenize(lower string) []string {
	return strings.FieldsFunc(lower, func(r rune) bool {
		if r >= 'a' && r <= 'z' {
			return false
		}
		if r >= '0' && r <= '9' {
			return false
		}
		return r != '\''
	})
}

// phraseIndex finds phrase in text with word-boundary checks on both ends.
// Returns the match index or -1. Prevents "go" matching inside "good".
func phraseIndex(text, phrase string) int {
	offset := 0
	for {
		idx := strings.Index(text[offset:], phrase)
		if idx < 0 {
			return -1
		}
		abs := offset + idx
		beforeOK := abs == 0 || !isWordChar(text[abs-1])
		end := abs + len(phrase)
		afterOK := end >= len(text) || !isWordChar(text[end])
		if beforeOK && afterOK {
			return abs
		}
		offset = abs + 1
	}
}

func isWordChar(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// anyPhrase reports whether any phrase from the list occurs in the text.
func anyPhrase(lower string, tokenSet map[string]bool, phrases []string) bool {
	for _, phrase := range phrases {
		if strings.ContainsAny(phrase, " .") {
			if phraseIndex(lower, phrase) >= 0 {
				return true
			}
		} else if tokenSet[phrase] {
			return true
		}
	}
	return false
}

// countDistinctMatches counts how many distinct phrases from the list occur.
func countDistinctMatches(lower string, tokenSet map[string]bool, phrases []string) int {
	count := 0
	for _, phrase := range phrases {
		if strings.ContainsAny(phrase, " .") {
			if phraseIndex(lower, phrase) >= 0 {
				count++
			}
		} else if tokenSet[phrase] {
			count++
		}
	}
	return count
}

// countOccurrences counts token occurrences of single-word terms.
func countOccurrences(toks []string, terms []string) int {
	wanted := make(map[string]bool, len(terms))
	for _, term := range terms {
		if !strings.ContainsAny(term, " .") {
			wanted[term] = true
		}
	}
	count := 0
	for _, tok := range toks {
		if wanted[tok] {
			count++
		}
	}
	return count
}

func countSentences(lower string) int {
	parts := sentenceSplitPattern.Split(lower, -1)
	count := 0
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			count++
		}
	}
	if count == 0 {
		count = 1
	}
	return count
}
