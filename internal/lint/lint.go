// Package lint flags structural weaknesses in a raw prompt before any
// restructuring happens. Its issue list feeds both the CLI and the
// low-confidence selection fallback.
package lint

import (
	"strings"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// Per-issue score penalties.
var penalties = map[types.LintIssueType]int{
	types.IssueMissingTaskVerb: 25,
	types.IssueMissingLanguage: 15,
	types.IssueMissingIOSpec:   15,
	types.IssueVagueWording:    10,
	types.IssueUnclearScope:    20,
}

var taskVerbs = []string{
	"analyze", "analyse", "build", "compare", "create", "debug", "design",
	"document", "evaluate", "explain", "fix", "generate", "implement",
	"improve", "investigate", "list", "migrate", "optimize", "plan",
	"refactor", "review", "rewrite", "sort", "summarize", "test", "write",
}

// codeSignals mark a prompt as code-related; language and IO checks only
// apply to those.
var codeSignals = []string{
	"code", "program", "script", "function", "api", "bug", "compile",
	"implementation", "algorithm", "class", "module", "library",
}

var languageNames = []string{
	"python", "javascript", "typescript", "java", "go", "golang", "ruby",
	"rust", "php", "kotlin", "swift", "scala", "sql", "bash", "c", "cpp",
}

var ioSignals = []string{
	"input", "output", "given", "return", "returns", "produce", "result",
	"reads", "writes", "takes", "expects",
}

var vagueTerms = []string{
	"something", "stuff", "things", "somehow", "whatever", "maybe",
	"kinda", "sorta", "etc",
}

// Analyze lints a prompt. It is total and synchronous: any input, including
// empty, yields a result.
func Analyze(prompt string) types.LintResult {
	timer := logging.StartTimer(logging.CategoryLint, "Analyze")
	defer timer.Stop()

	words := tokenize(prompt)
	var issues []types.LintIssue

	if !containsAny(words, taskVerbs) {
		issues = append(issues, types.LintIssue{
			Type:    types.IssueMissingTaskVerb,
			Message: "no task verb found; start with what should be done",
		})
	}

	if containsAny(words, codeSignals) {
		if !containsAny(words, languageNames) {
			issues = append(issues, types.LintIssue{
				Type:    types.IssueMissingLanguage,
				Message: "code-related prompt names no programming language",
			})
		}
		if !containsAny(words, ioSignals) {
			issues = append(issues, types.LintIssue{
				Type:    types.IssueMissingIOSpec,
				Message: "code-related prompt specifies neither input nor output",
			})
		}
	}

	for _, term := range vagueTerms {
		if words[term] {
			issues = append(issues, types.LintIssue{
				Type:    types.IssueVagueWording,
				Message: "vague wording weakens the prompt",
				Term:    term,
			})
		}
	}

	if len(words) > 0 && len(words) < 4 && !containsAny(words, codeSignals) {
		issues = append(issues, types.LintIssue{
			Type:    types.IssueUnclearScope,
			Message: "prompt is too short to establish scope",
		})
	}

	score := 100
	for _, issue := range issues {
		score -= penalties[issue.Type]
	}
	if score < 0 {
		score = 0
	}

	logging.LintDebug("score=%d issues=%d", score, len(issues))
	return types.LintResult{Score: score, Issues: issues}
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

func containsAny(words map[string]bool, vocab []string) bool {
	for _, v := range vocab {
		if words[v] {
			return true
		}
	}
	return false
}
