package templates

import (
	"fmt"
	"regexp"
	"strings"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// =============================================================================
// TASK/IO RENDERER
// =============================================================================

type taskIORenderer struct{}

func (taskIORenderer) Type() types.TemplateType { return types.TemplateTaskIO }

func (taskIORenderer) IsSuitable(rc RenderContext) bool {
	return strings.TrimSpace(rc.Prompt) != ""
}

// Render splits the prompt into task, input, and output sections. Sections
// the prompt never states stay as generic placeholders rather than invented
// detail.
func (taskIORenderer) Render(rc RenderContext) (RenderResult, error) {
	norm := normalize(rc.Prompt)
	if norm == "" {
		return RenderResult{}, fmt.Errorf("empty prompt")
	}
	h := rc.Headings.orDefault()

	sentences := splitSentences(norm)
	task := sentences[0]
	input := findSentence(sentences[1:], inputKeywords)
	output := findSentence(sentences[1:], outputKeywords)

	quality := 60
	if input == "" {
		input = "as provided"
	} else {
		quality += 15
	}
	if output == "" {
		output = "as requested"
	} else {
		quality += 15
	}

	content := fmt.Sprintf("%s %s\n%s %s\n%s %s",
		h.Task, task, h.Input, input, h.Output, output)

	logging.TemplatesDebug("task_io rendered, quality=%d", quality)
	return RenderResult{Content: content, QualityScore: quality}, nil
}

var inputKeywords = []string{"input", "given"}
var outputKeywords = []string{"output", "return", "produce", "result"}

// =============================================================================
// ENUMERATED RENDERER
// =============================================================================

type enumeratedRenderer struct{}

func (enumeratedRenderer) Type() types.TemplateType { return types.TemplateEnumerated }

func (enumeratedRenderer) IsSuitable(rc RenderContext) bool {
	return len(splitClauses(rc.Prompt)) >= 2
}

func (enumeratedRenderer) Render(rc RenderContext) (RenderResult, error) {
	items := splitClauses(rc.Prompt)
	if len(items) == 0 {
		return RenderResult{}, fmt.Errorf("no clauses to enumerate")
	}
	h := rc.Headings.orDefault()

	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = h.Bullet + " " + item
	}

	quality := 40 + 15*len(items)
	if quality > 100 {
		quality = 100
	}

	logging.TemplatesDebug("enumerated rendered %d items, quality=%d", len(items), quality)
	return RenderResult{Content: strings.Join(lines, "\n"), QualityScore: quality}, nil
}

// =============================================================================
// SEQUENTIAL RENDERER
// =============================================================================

type sequentialRenderer struct{}

func (sequentialRenderer) Type() types.TemplateType { return types.TemplateSequential }

func (sequentialRenderer) IsSuitable(rc RenderContext) bool {
	return rc.Semantics.Context.Sequential || len(splitSteps(rc.Prompt)) >= 2
}

func (sequentialRenderer) Render(rc RenderContext) (RenderResult, error) {
	steps := splitSteps(rc.Prompt)
	if len(steps) == 0 {
		return RenderResult{}, fmt.Errorf("no steps to order")
	}
	h := rc.Headings.orDefault()

	lines := make([]string, len(steps))
	for i, step := range steps {
		lines[i] = fmt.Sprintf("%s %d: %s", h.Step, i+1, step)
	}

	quality := 40 + 15*len(steps)
	if quality > 100 {
		quality = 100
	}

	logging.TemplatesDebug("sequential rendered %d steps, quality=%d", len(steps), quality)
	return RenderResult{Content: strings.Join(lines, "\n"), QualityScore: quality}, nil
}

// =============================================================================
// MINIMAL RENDERER
// =============================================================================

type minimalRenderer struct{}

func (minimalRenderer) Type() types.TemplateType { return types.TemplateMinimal }

func (minimalRenderer) IsSuitable(rc RenderContext) bool {
	return strings.TrimSpace(rc.Prompt) != ""
}

// Render normalizes the prompt to a single clean line. Short prompts score
// higher: minimal restructuring suits them best.
func (minimalRenderer) Render(rc RenderContext) (RenderResult, error) {
	norm := normalize(rc.Prompt)
	if norm == "" {
		return RenderResult{}, fmt.Errorf("empty prompt")
	}

	quality := 60
	if len(strings.Fields(norm)) <= 12 {
		quality = 75
	}

	return RenderResult{Content: norm, QualityScore: quality}, nil
}

// =============================================================================
// TEXT SPLITTING
// =============================================================================

var (
	sentenceEnd = regexp.MustCompile(`[.;!?]+`)

	// Leading connectives are dropped from emitted items; they order the
	// prose but carry no content of their own.
	leadingConnectives = []string{
		"and ", "then ", "next ", "finally ", "first ", "second ",
		"third ", "after that ", "also ",
	}

	clauseSeparators = []string{", ", " and "}
	stepSeparators   = []string{", then ", " then ", " after that ", " next ", " finally ", ", "}
)

func normalize(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func splitSentences(norm string) []string {
	var out []string
	for _, s := range sentenceEnd.Split(norm, -1) {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		out = []string{norm}
	}
	return out
}

// findSentence returns the first sentence containing any keyword as a whole
// word, or "".
func findSentence(sentences, keywords []string) string {
	for _, s := range sentences {
		lower := strings.ToLower(s)
		for _, kw := range keywords {
			if containsWord(lower, kw) {
				return s
			}
		}
	}
	return ""
}

func containsWord(haystack, word string) bool {
	for _, f := range strings.FieldsFunc(haystack, func(r rune) bool {
		return !('a' <= r && r <= 'z') && !('0' <= r && r <= '9')
	}) {
		if f == word {
			return true
		}
	}
	return false
}

// splitClauses breaks a prompt into independent clauses for bullet lists.
func splitClauses(prompt string) []string {
	return splitOn(prompt, clauseSeparators)
}

// splitSteps breaks a prompt into ordered steps on sequential connectives.
func splitSteps(prompt string) []string {
	return splitOn(prompt, stepSeparators)
}

func splitOn(prompt string, separators []string) []string {
	norm := normalize(prompt)
	parts := splitSentences(norm)
	for _, sep := range separators {
		var next []string
		for _, p := range parts {
			next = append(next, strings.Split(strings.ToLower(p), sep)...)
		}
		parts = next
	}

	var out []string
	for _, p := range parts {
		p = strings.Trim(p, ",; ")
		for changed := true; changed; {
			changed = false
			for _, conn := range leadingConnectives {
				if strings.HasPrefix(p, conn) {
					p = strings.TrimSpace(strings.TrimPrefix(p, conn))
					changed = true
				}
			}
		}
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
