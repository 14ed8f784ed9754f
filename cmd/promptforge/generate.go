package main

import (
	"context"
	"fmt"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"promptforge/internal/engine"
	"promptforge/internal/lint"
	"promptforge/internal/rules"
	"promptforge/internal/store"
	"promptforge/internal/templates"
	"promptforge/internal/types"
)

var (
	auditEnabled bool

	// rules check flags
	rulesIssues     []string
	rulesComplexity string
	rulesSequential bool
)

// generateCmd runs the full pipeline on one prompt
var generateCmd = &cobra.Command{
	Use:   "generate [prompt]",
	Short: "Generate template candidates for a prompt",
	Long: `Runs the full pipeline: lint, domain classification, semantic analysis,
template selection, rendering, and faithfulness validation. Prints up to
three ranked candidates.

Example:
  promptforge generate "analyze the logs, summarize findings, and propose fixes"`,
	Args: cobra.MinimumNArgs(1),
	RunE: runGenerate,
}

// rulesCmd groups rule-table tooling
var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "Inspect the low-confidence fallback rule table",
}

// rulesCheckCmd evaluates the fallback rules against a synthetic lint summary
var rulesCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Evaluate the fallback rules against a lint summary",
	Long: `Feeds a hand-built lint summary to the Datalog rule table and prints which
templates it recommends.

Example:
  promptforge rules check --issues vague_wording,unclear_scope --complexity simple`,
	RunE: runRulesCheck,
}

func runGenerate(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []engine.Option{
		engine.WithMaxCandidates(cfg.MaxCandidates),
		engine.WithFaithfulnessThreshold(cfg.FaithfulnessThreshold),
		engine.WithTimeBudget(cfg.Budget()),
	}
	if !cfg.DiversityEnabled {
		opts = append(opts, engine.WithDiversityDisabled())
	}
	if cfg.TemplatePack != "" {
		headings, err := templates.LoadPack(cfg.TemplatePack)
		if err != nil {
			return err
		}
		opts = append(opts, engine.WithHeadings(headings))
	}

	lintResult := lint.Analyze(prompt)

	start := time.Now()
	candidates := engine.New(opts...).GenerateCandidates(ctx, prompt, lintResult)
	elapsed := time.Since(start)

	if auditEnabled {
		if err := recordAudit(ctx, prompt, elapsed, candidates); err != nil {
			logger.Warn("audit record failed", zap.Error(err))
		}
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"lint":       lintResult,
			"candidates": candidates,
			"elapsed_ms": elapsed.Milliseconds(),
		})
	}

	return printCandidates(candidates, elapsed)
}

func printCandidates(candidates []types.TemplateCandidate, elapsed time.Duration) error {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("init markdown renderer: %w", err)
	}

	for i, c := range candidates {
		title := fmt.Sprintf("#%d %s  score %.1f", i+1, c.Template, c.Score)
		fmt.Println(headerStyle.Render(title))

		if c.Metadata.Fallback {
			fmt.Println(warnStyle.Render("  fallback: prompt returned unchanged"))
		} else if c.FaithfulnessValidated {
			fmt.Println(okStyle.Render(fmt.Sprintf("  faithful (%d/100)", c.Faithfulness.Score)))
		} else {
			fmt.Println(warnStyle.Render(fmt.Sprintf("  unvalidated: %s", c.Faithfulness.Report)))
		}

		md := "```\n" + c.Content + "\n```"
		out, err := renderer.Render(md)
		if err != nil {
			fmt.Println(c.Content)
		} else {
			fmt.Print(out)
		}
	}

	fmt.Println(labelStyle.Render(fmt.Sprintf("generated %d candidates in %v", len(candidates), elapsed)))
	return nil
}

func recordAudit(ctx context.Context, prompt string, elapsed time.Duration, candidates []types.TemplateCandidate) error {
	s, err := store.Open(cfg.AuditDB)
	if err != nil {
		return err
	}
	defer s.Close()

	return s.RecordRun(ctx, store.Run{
		PromptHash: store.HashPrompt(prompt),
		Duration:   elapsed,
		Candidates: store.RecordFromCandidates(candidates),
	})
}

func runRulesCheck(cmd *cobra.Command, args []string) error {
	var issues []types.LintIssueType
	for _, raw := range rulesIssues {
		issues = append(issues, types.LintIssueType(strings.TrimSpace(raw)))
	}

	recommended := rules.Recommend(rules.Input{
		Issues:             issues,
		Complexity:         types.ComplexityLevel(rulesComplexity),
		SequentialKeywords: rulesSequential,
	})

	if jsonOutput {
		return printJSON(map[string]any{"recommended": recommended})
	}

	fmt.Println(headerStyle.Render("Rule Table Recommendation"))
	for _, tmpl := range recommended {
		fmt.Println("  " + string(tmpl))
	}
	return nil
}

func init() {
	generateCmd.Flags().BoolVar(&auditEnabled, "audit", false, "record this run in the audit store")

	rulesCheckCmd.Flags().StringSliceVar(&rulesIssues, "issues", nil,
		"comma-separated lint issue types")
	rulesCheckCmd.Flags().StringVar(&rulesComplexity, "complexity", "simple",
		"complexity level (simple|moderate|complex|expert)")
	rulesCheckCmd.Flags().BoolVar(&rulesSequential, "sequential", false,
		"prompt contains sequential keywords")
	rulesCmd.AddCommand(rulesCheckCmd)
}
