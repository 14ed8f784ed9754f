package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"promptforge/internal/config"
	"promptforge/internal/domain"
	"promptforge/internal/lint"
	"promptforge/internal/logging"
	"promptforge/internal/semantics"
	"promptforge/internal/types"
)

var (
	// Global flags
	verbose    bool
	jsonOutput bool
	configPath string
	workspace  string

	// Logger
	logger *zap.Logger

	cfg config.Config
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("11"))
	errStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	okStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "promptforge",
	Short: "promptforge - template selection and generation for prompts",
	Long: `promptforge restructures natural-language prompts into stronger templates.

It analyzes a prompt's semantics, scores four template structures against it,
renders the best matches, and validates that nothing was added that the
original prompt did not state.`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		zc := zap.NewProductionConfig()
		if verbose {
			zc.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
		}
		var err error
		logger, err = zc.Build()
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}

		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if err := logging.Initialize(workspace); err != nil {
			logger.Warn("category logging unavailable", zap.Error(err))
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logging.CloseAll()
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

// analyzeCmd prints the semantic profile of a prompt
var analyzeCmd = &cobra.Command{
	Use:   "analyze [prompt]",
	Short: "Analyze a prompt's semantics",
	Long: `Runs semantic analysis and domain classification on a prompt and prints
intent, complexity, completeness, specificity, context markers, and confidence.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runAnalyze,
}

// lintCmd reports structural weaknesses in a prompt
var lintCmd = &cobra.Command{
	Use:   "lint [prompt]",
	Short: "Lint a prompt for structural weaknesses",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runLint,
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")

	sem := semantics.Analyze(prompt)
	dom, err := domain.Classifier{}.Classify(cmd.Context(), prompt)
	if err != nil {
		return err
	}

	if jsonOutput {
		return printJSON(map[string]any{
			"semantics": sem,
			"domain":    dom,
		})
	}

	fmt.Println(headerStyle.Render("Semantic Analysis"))
	row("Intent", string(sem.Intent))
	row("Complexity", string(sem.Complexity))
	row("Completeness", string(sem.Completeness))
	row("Specificity", string(sem.Specificity))
	row("Confidence", fmt.Sprintf("%d%%", sem.Confidence))
	row("Markers", markerSummary(sem))
	fmt.Println(headerStyle.Render("Domain"))
	row("Domain", string(dom.Domain))
	row("Confidence", fmt.Sprintf("%d%%", dom.Confidence))
	return nil
}

func runLint(cmd *cobra.Command, args []string) error {
	prompt := strings.Join(args, " ")
	result := lint.Analyze(prompt)

	if jsonOutput {
		return printJSON(result)
	}

	fmt.Println(headerStyle.Render(fmt.Sprintf("Lint Score: %d/100", result.Score)))
	if len(result.Issues) == 0 {
		fmt.Println(okStyle.Render("no issues found"))
		return nil
	}
	for _, issue := range result.Issues {
		line := fmt.Sprintf("[%s] %s", issue.Type, issue.Message)
		if issue.Term != "" {
			line += fmt.Sprintf(" (%q)", issue.Term)
		}
		fmt.Println(warnStyle.Render(line))
	}
	return nil
}

func row(label, value string) {
	fmt.Printf("  %s %s\n", labelStyle.Render(label+":"), value)
}

func markerSummary(sem types.PromptSemantics) string {
	names := []struct {
		name   string
		active bool
	}{
		{"temporal", sem.Context.Temporal},
		{"conditional", sem.Context.Conditional},
		{"comparative", sem.Context.Comparative},
		{"sequential", sem.Context.Sequential},
		{"organizational", sem.Context.Organizational},
		{"technical", sem.Context.Technical},
		{"creative", sem.Context.Creative},
		{"analytical", sem.Context.Analytical},
	}
	var active []string
	for _, n := range names {
		if n.active {
			active = append(active, n.name)
		}
	}
	if len(active) == 0 {
		return "none"
	}
	return strings.Join(active, ", ")
}

func printJSON(v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(out))
	return nil
}

func main() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "print raw JSON instead of styled output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", ".promptforge/config.yaml", "config file path")
	rootCmd.PersistentFlags().StringVar(&workspace, "workspace", ".", "workspace directory")

	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(lintCmd)
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(rulesCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errStyle.Render(err.Error()))
		os.Exit(1)
	}
}
