// Package rules evaluates the low-confidence fallback rule table as a
// Datalog program on the Mangle engine. When the domain classifier is too
// uncertain for score-based selection, template choice is keyed directly on
// lint-issue combinations; expressing the table as rules keeps it inspectable
// and keeps the combination logic out of imperative branching.
package rules

import (
	"fmt"
	"strings"
	"sync"

	"github.com/google/mangle/analysis"
	"github.com/google/mangle/ast"
	_ "github.com/google/mangle/builtin"
	"github.com/google/mangle/engine"
	"github.com/google/mangle/factstore"
	"github.com/google/mangle/parse"

	"promptforge/internal/logging"
	"promptforge/internal/types"
)

// fallbackProgram is the fixed rule table. Baseline /none facts keep every
// EDB predicate present in the unit; runtime facts are asserted per
// evaluation into a fresh store, so evaluations never observe each other.
const fallbackProgram = `
issue(/none).
complexity(/none).
below_complex(/none).
clean_wording(/none).
few_issues(/none).
sequential_keywords(/none).

# Missing language and IO details, on a prompt that is neither complex nor
# vague, call for explicit task/input/output framing.
recommend(/task_io) :-
    issue(/missing_language),
    issue(/missing_io_specification),
    below_complex(/yes),
    clean_wording(/yes).

# Vague wording with unclear scope benefits from an enumerated breakdown.
recommend(/enumerated) :-
    issue(/vague_wording),
    issue(/unclear_scope).

# Sequential connectives in the prompt call for ordered steps.
recommend(/sequential) :- sequential_keywords(/yes).

# A near-clean simple prompt needs only light restructuring.
recommend(/minimal) :- few_issues(/yes), complexity(/simple).
`

// recommendPriority fixes the best-first order of derived recommendations.
var recommendPriority = []types.TemplateType{
	types.TemplateTaskIO,
	types.TemplateEnumerated,
	types.TemplateSequential,
	types.TemplateMinimal,
}

// Input carries the facts the rule table is evaluated against.
type Input struct {
	Issues             []types.LintIssueType
	Complexity         types.ComplexityLevel
	SequentialKeywords bool
}

var (
	programOnce sync.Once
	programInfo *analysis.ProgramInfo
	programErr  error
)

func loadProgram() (*analysis.ProgramInfo, error) {
	programOnce.Do(func() {
		unit, err := parse.Unit(strings.NewReader(fallbackProgram))
		if err != nil {
			programErr = fmt.Errorf("parse fallback rules: %w", err)
			return
		}
		info, err := analysis.AnalyzeOneUnit(unit, nil)
		if err != nil {
			programErr = fmt.Errorf("analyze fallback rules: %w", err)
			return
		}
		programInfo = info
	})
	return programInfo, programErr
}

// Evaluate runs the rule table against the input facts and returns the
// derived template recommendations in priority order. The result may be
// empty; callers wanting the always-non-empty contract use Recommend.
func Evaluate(in Input) ([]types.TemplateType, error) {
	info, err := loadProgram()
	if err != nil {
		return nil, err
	}

	store := factstore.NewSimpleInMemoryStore()
	for _, fact := range inputFacts(in) {
		store.Add(fact)
	}

	if _, err := engine.EvalProgramWithStats(info, store); err != nil {
		return nil, fmt.Errorf("evaluate fallback rules: %w", err)
	}

	derived := map[types.TemplateType]bool{}
	pred := ast.PredicateSym{Symbol: "recommend", Arity: 1}
	err = store.GetFacts(ast.NewQuery(pred), func(atom ast.Atom) error {
		if len(atom.Args) != 1 {
			return nil
		}
		if c, ok := atom.Args[0].(ast.Constant); ok {
			t := types.TemplateType(strings.TrimPrefix(c.Symbol, "/"))
			if t.Valid() {
				derived[t] = true
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query recommendations: %w", err)
	}

	var ordered []types.TemplateType
	for _, t := range recommendPriority {
		if derived[t] {
			ordered = append(ordered, t)
		}
	}

	logging.RulesDebug("fallback table derived %d recommendations from %d issues",
		len(ordered), len(in.Issues))

	return ordered, nil
}

// Recommend evaluates the table and guarantees at least one template.
// Any evaluation failure degrades to the minimal template rather than
// surfacing an error into the selection path.
func Recommend(in Input) []types.TemplateType {
	ordered, err := Evaluate(in)
	if err != nil {
		logging.Get(logging.CategoryRules).Error("fallback rule evaluation failed: %v", err)
		return []types.TemplateType{types.TemplateMinimal}
	}
	if len(ordered) == 0 {
		return []types.TemplateType{types.TemplateMinimal}
	}
	return ordered
}

// inputFacts converts the Go-side input into ground Mangle atoms.
func inputFacts(in Input) []ast.Atom {
	var facts []ast.Atom

	add := func(predicate, name string) {
		atom, err := parse.Atom(fmt.Sprintf("%s(%s)", predicate, name))
		if err != nil {
			// Predicates and name constants here are fixed strings; a
			// failure is a programming error worth surfacing in the log.
			logging.Get(logging.CategoryRules).Error("bad fact %s(%s): %v", predicate, name, err)
			return
		}
		facts = append(facts, atom)
	}

	hasVague := false
	for _, issue := range in.Issues {
		add("issue", "/"+string(issue))
		if issue == types.IssueVagueWording {
			hasVague = true
		}
	}

	add("complexity", "/"+string(in.Complexity))
	if in.Complexity.Rank() < types.ComplexityComplex.Rank() {
		add("below_complex", "/yes")
	}
	if !hasVague {
		add("clean_wording", "/yes")
	}
	if len(in.Issues) <= 1 {
		add("few_issues", "/yes")
	}
	if in.SequentialKeywords {
		add("sequential_keywords", "/yes")
	}

	return facts
}
