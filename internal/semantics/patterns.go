// Package semantics converts raw prompt text into a PromptSemantics record:
// intent, complexity, completeness, specificity, context markers, confidence.
// Analysis is a pure function of the input string. Pattern lists below are
// fixed at build time; identical input always yields identical output.
package semantics

import (
	"regexp"

	"promptforge/internal/types"
)

// intentPattern ties an intent to the phrases that signal it. Patterns are
// evaluated in the order of intentPatterns; the first match wins.
type intentPattern struct {
	intent  types.IntentType
	phrases []string
}

// intentPatterns is the fixed priority order for intent detection.
// Explanatory and investigative are checked before instructional so that
// multi-clause prompts like "implement X and explain why" are not
// miscategorized purely by verb position; the trailing-explanatory-clause
// heuristic in analyzer.go handles the inverse case.
var intentPatterns = []intentPattern{
	{types.IntentExplanatory, []string{
		"explain", "why", "how does", "how do", "what is", "what are",
		"describe", "clarify", "walk me through",
	}},
	{types.IntentInvestigative, []string{
		"investigate", "explore", "research", "find out", "look into",
		"examine", "dig into", "identify the cause",
	}},
	{types.IntentDebugging, []string{
		"debug", "fix", "troubleshoot", "resolve", "diagnose",
		"not working", "broken", "fails", "crash", "error",
	}},
	{types.IntentComparative, []string{
		"compare", "versus", "vs", "difference between", "contrast",
		"pros and cons", "trade-offs", "tradeoffs",
	}},
	{types.IntentPlanning, []string{
		"plan", "roadmap", "strategy", "schedule", "milestones",
		"outline the steps", "prioritize",
	}},
	{types.IntentAnalytical, []string{
		"analyze", "analyse", "evaluate", "assess", "review",
		"measure", "audit", "benchmark",
	}},
	{types.IntentInstructional, []string{
		"implement", "build", "develop", "refactor", "install",
		"configure", "set up", "migrate", "convert", "add",
	}},
	{types.IntentCreative, []string{
		"story", "poem", "imagine", "brainstorm", "invent",
		"slogan", "name ideas", "creative",
	}},
	// Generative is the default; "write", "create", "generate", "make" and
	// anything unmatched land here.
}

// primaryVerbs are the strong leading verbs that suppress a trailing
// explanatory clause ("analyze user behavior and explain the trends" is
// analytical, not explanatory). Known heuristic gap: sentences whose primary
// verb is outside this fixed list keep the explanatory label.
var primaryVerbs = []string{
	"analyze", "analyse", "implement", "create", "build", "fix",
	"refactor", "compare", "design", "evaluate",
}

// taskVerbs signal actionable units of work; their count feeds complexity.
var taskVerbs = []string{
	"write", "create", "build", "implement", "fix", "analyze", "analyse",
	"design", "develop", "refactor", "test", "review", "document",
	"deploy", "optimize", "generate", "summarize", "translate",
	"compare", "plan", "organize", "explain", "investigate",
}

// technicalTerms is the fixed vocabulary used both for complexity scoring
// and the technical context marker.
var technicalTerms = []string{
	"api", "database", "function", "class", "algorithm", "server",
	"endpoint", "query", "schema", "cache", "thread", "async",
	"frontend", "backend", "deployment", "container", "pipeline",
	"repository", "framework", "library", "compiler", "runtime",
	"authentication", "encryption", "middleware", "microservice",
	"regression", "latency", "throughput", "sdk", "cli", "json",
	"yaml", "http", "rest", "graphql", "sql",
}

// conditionalMarkers signal branching logic in the prompt.
var conditionalMarkers = []string{
	"if", "unless", "otherwise", "in case", "depending on", "when",
}

// Completeness presence checks. Each group that matches contributes one
// point toward the completeness score.
var (
	contextSignals = []string{
		"because", "since", "currently", "background", "we have",
		"our team", "existing", "legacy", "context",
	}
	requirementSignals = []string{
		"must", "should", "need to", "needs to", "required", "requirement",
		"have to", "necessary",
	}
	constraintSignals = []string{
		"only", "without", "limit", "constraint", "no more than",
		"at most", "at least", "within", "budget", "cannot",
	}
	outputSignals = []string{
		"output", "return", "result", "produce", "deliverable",
		"should give", "respond with",
	}
	exampleSignals = []string{
		"example", "e.g.", "for instance", "such as", "like this",
		"sample",
	}
	formatSignals = []string{
		"format", "json", "markdown", "table", "bullet", "csv",
		"numbered", "template", "structure",
	}
)

// Specificity vocabulary.
var (
	specificTerms = []string{
		"exactly", "specifically", "precisely", "version", "endpoint",
		"parameter", "field", "column", "metric", "threshold", "config",
		"timeout", "interval", "byte", "millisecond", "percent",
	}
	vagueTerms = []string{
		"something", "stuff", "things", "somehow", "maybe", "etc",
		"whatever", "nice", "good", "better", "improve", "various",
		"some", "a bit",
	}
)

// Context marker vocabulary (beyond the shared lists above).
var (
	temporalSignals = []string{
		"today", "tonight", "tomorrow", "yesterday", "deadline",
		"urgent", "asap", "daily", "weekly", "monthly", "by friday",
		"by monday", "this week", "next week",
	}
	comparativeSignals = []string{
		"compare", "versus", "vs", "difference", "contrast",
		"better than", "worse than", "pros and cons",
	}
	sequentialSignals = []string{
		"first", "then", "next", "after that", "finally", "step",
		"followed by", "afterwards", "lastly", "second", "third",
	}
	organizationalSignals = []string{
		"organize", "structure", "categorize", "group", "sort",
		"arrange", "prioritize", "rank", "classify",
	}
	creativeSignals = []string{
		"creative", "story", "imagine", "brainstorm", "invent",
		"novel", "artistic", "poem", "metaphor",
	}
	analyticalSignals = []string{
		"analyze", "analyse", "data", "metrics", "evaluate",
		"statistics", "trends", "insights", "pattern", "correlation",
	}
)

// quantifierPattern matches explicit numeric quantities ("3 items", "25%",
// "1.5s"). Plain numbers count as quantifiers for specificity scoring.
var quantifierPattern = regexp.MustCompile(`\b\d+(\.\d+)?\s*(%|ms|s|kb|mb|gb|px|x)?\b`)

// technicalSpecPattern matches version strings and explicit technical
// specifications ("v2.1", "python 3.12", "HTTP/2").
var technicalSpecPattern = regexp.MustCompile(`\b(v\d+(\.\d+)*|\d+\.\d+(\.\d+)+|http/\d(\.\d)?)\b`)

// sentenceSplitPattern splits prose into sentences on terminal punctuation.
var sentenceSplitPattern = regexp.MustCompile(`[.!?]+`)
