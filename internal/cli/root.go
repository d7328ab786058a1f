// Package cli wires the cobra command surface to the resolution, cost, and
// collaborator layers. Only this package reads the environment.
package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/sstitle/public-explanation/internal/cost"
	"github.com/sstitle/public-explanation/internal/explain"
	"github.com/sstitle/public-explanation/internal/tui"
)

// Exit codes.
const (
	exitOK       = 0
	exitError    = 1
	exitDryRun   = 2
	exitDeclined = 3
)

var flags struct {
	model          string
	maxFileMB      int
	maxTotalMB     int
	thresholdCents float64
	noAPI          bool
	dryRun         bool
	force          bool
	verbose        bool
}

var rootCmd = &cobra.Command{
	Use:   "public-explanation <repository> <question>",
	Short: "AI-powered GitHub repository explanation tool",
	Long: `Ask natural-language questions about a public GitHub repository.

The repository reference can be a full URL, an owner/repo pair, or a free
search term. Content extraction, the AI query, and markdown rendering are
delegated to gitingest, mods, and glow.

Examples:
  public-explanation "facebook/react" "how does the virtual DOM work?"
  public-explanation "react router" "how do I set up nested routes?"
  public-explanation "https://github.com/microsoft/vscode" "extension architecture"`,
	Args:          cobra.ExactArgs(2),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := configFromEnv(args[0], args[1])
		return run(cfg, liveDeps(cfg))
	},
}

func init() {
	rootCmd.Flags().StringVar(&flags.model, "model", "gpt-4o", "OpenAI model to use")
	rootCmd.Flags().IntVar(&flags.maxFileMB, "max-file-size", 1, "maximum file size in MB to include")
	rootCmd.Flags().IntVar(&flags.maxTotalMB, "max-total-size", 50, "maximum total repository size in MB")
	rootCmd.Flags().Float64Var(&flags.thresholdCents, "threshold", cost.DefaultThresholdCents, "cost in cents above which confirmation is required")
	rootCmd.Flags().BoolVar(&flags.noAPI, "no-api", false, "skip GitHub API calls (URL and owner/repo forms only)")
	rootCmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "show what would be processed without making API calls")
	rootCmd.Flags().BoolVar(&flags.force, "force", false, "skip the cost confirmation prompt")
	rootCmd.Flags().BoolVarP(&flags.verbose, "verbose", "v", false, "enable verbose output")

	rootCmd.AddCommand(versionCmd)
}

// configFromEnv builds the invocation config from flags and environment.
// Components below this layer never touch the environment themselves.
func configFromEnv(reference, question string) Config {
	return Config{
		Reference:      reference,
		Question:       question,
		Model:          flags.model,
		MaxFileKB:      flags.maxFileMB * 1024,
		MaxTotalKB:     flags.maxTotalMB * 1024,
		ThresholdCents: flags.thresholdCents,
		NoAPI:          flags.noAPI,
		DryRun:         flags.dryRun,
		Force:          flags.force,
		Verbose:        flags.verbose,
		OpenAIKey:      os.Getenv("OPENAI_API_KEY"),
		GitHubToken:    os.Getenv("GITHUB_TOKEN"),
	}
}

// Execute runs the CLI and returns the process exit code.
func Execute() int {
	_ = godotenv.Load()

	err := rootCmd.Execute()
	if err == nil {
		return exitOK
	}

	switch {
	case errors.Is(err, errDryRunComplete):
		fmt.Fprintln(os.Stderr, tui.InfoStyle.Render("Dry run complete - no API calls were made"))
		return exitDryRun
	case errors.Is(err, explain.ErrUserDeclined):
		fmt.Fprintln(os.Stderr, tui.WarnStyle.Render("Cancelled: "+err.Error()))
		return exitDeclined
	default:
		fmt.Fprintln(os.Stderr, tui.ErrorStyle.Render("Error: "+err.Error()))
		var ce *explain.CollaboratorError
		if errors.As(err, &ce) && flags.verbose && ce.Detail() != "" {
			fmt.Fprintln(os.Stderr, tui.DimStyle.Render(ce.Detail()))
		}
		return exitError
	}
}
