package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sstitle/public-explanation/internal/collab"
	"github.com/sstitle/public-explanation/internal/cost"
	"github.com/sstitle/public-explanation/internal/explain"
	"github.com/sstitle/public-explanation/internal/github"
	"github.com/sstitle/public-explanation/internal/resolve"
	"github.com/sstitle/public-explanation/internal/tui"
)

// errDryRunComplete marks the intentional abort at the confirmation gate
// during a dry run; Execute maps it to its own exit code.
var errDryRunComplete = errors.New("dry run")

// Config is the full invocation configuration, assembled once in the cobra
// layer and passed down explicitly.
type Config struct {
	Reference      string
	Question       string
	Model          string
	MaxFileKB      int
	MaxTotalKB     int
	ThresholdCents float64
	NoAPI          bool
	DryRun         bool
	Force          bool
	Verbose        bool
	OpenAIKey      string
	GitHubToken    string
}

// dependencies are the orchestrator's side-effectful collaborators, injected
// so the pipeline order is testable without network, subprocesses, or a TTY.
type dependencies struct {
	resolve func(ctx context.Context, input string) (resolve.Resolution, error)
	pick    func(candidates []resolve.Candidate) (explain.Repository, error)
	confirm func(message string) (bool, error)
	extract func(ctx context.Context, repoURL string, maxFileKB, maxTotalKB int) (string, error)
	ask     func(ctx context.Context, prompt, model, apiKey string) (string, error)
	render  func(ctx context.Context, markdown string) error
	missing func() []string
	status  io.Writer
}

// liveDeps builds the real dependency set.
func liveDeps(cfg Config) dependencies {
	client := github.New(cfg.GitHubToken, cfg.Verbose)
	resolver := resolve.New(client, cfg.NoAPI)
	tools := collab.New(cfg.Verbose)

	return dependencies{
		resolve: resolver.Resolve,
		pick:    tui.PickRepository,
		confirm: tui.Confirm,
		extract: tools.Extract,
		ask:     tools.Ask,
		render:  tools.Render,
		missing: tools.Missing,
		status:  os.Stderr,
	}
}

// run sequences resolver → selection → estimator → gate → collaborators.
func run(cfg Config, deps dependencies) error {
	ctx := context.Background()

	// Credentials are checked before any other stage; dry runs never reach
	// the paid collaborator so they are exempt.
	if !cfg.DryRun && cfg.OpenAIKey == "" {
		return fmt.Errorf("%w (set it in the environment or a .env file)", explain.ErrMissingCredentials)
	}

	if cfg.Verbose {
		printConfig(deps.status, cfg)
	}

	res, err := deps.resolve(ctx, cfg.Reference)
	if err != nil {
		return err
	}

	repo := res.Repo
	if res.Ambiguous() {
		if cfg.Verbose {
			printCandidates(deps.status, res.Candidates)
		}
		repo, err = deps.pick(res.Candidates)
		if err != nil {
			return err
		}
	}
	fmt.Fprintln(deps.status, tui.SuccessStyle.Render("Resolved: ")+repo.FullName())

	est, err := cost.ForRepo(repo.SizeBytes, cfg.Model, cfg.MaxFileKB, cfg.MaxTotalKB)
	if err != nil {
		return err
	}
	if cfg.Verbose {
		printEstimate(deps.status, repo, est)
	}

	switch cost.Decide(est, cfg.ThresholdCents, cfg.Force, cfg.DryRun) {
	case cost.Abort:
		printPlan(deps.status, cfg, repo, est)
		return errDryRunComplete

	case cost.PromptUser:
		msg := fmt.Sprintf("Estimated cost for %s: %s (threshold %.1f¢)", repo.FullName(), est, cfg.ThresholdCents)
		ok, err := deps.confirm(msg)
		if err != nil {
			return err
		}
		if !ok {
			return fmt.Errorf("cost confirmation refused: %w", explain.ErrUserDeclined)
		}
	}

	if hints := deps.missing(); len(hints) > 0 && cfg.Verbose {
		fmt.Fprintln(deps.status, tui.WarnStyle.Render("Missing tools: ")+strings.Join(hints, ", "))
	}

	fmt.Fprintln(deps.status, tui.InfoStyle.Render("Extracting repository content..."))
	digest, err := deps.extract(ctx, repo.URL(), cfg.MaxFileKB, cfg.MaxTotalKB)
	if err != nil {
		return err
	}

	prompt := collab.BuildPrompt(repo, cfg.Question, digest)
	if cfg.Verbose {
		fmt.Fprintf(deps.status, "Prompt: %d bytes\n", len(prompt))
		collab.PreviewPrompt(deps.status, promptHead(prompt))
	}

	fmt.Fprintln(deps.status, tui.InfoStyle.Render("Querying "+cfg.Model+"..."))
	answer, err := deps.ask(ctx, prompt, cfg.Model, cfg.OpenAIKey)
	if err != nil {
		return err
	}

	if err := deps.render(ctx, answer); err != nil {
		return err
	}

	fmt.Fprintln(deps.status, tui.SuccessStyle.Render("Done: ")+repo.FullName())
	return nil
}

// promptHead returns the first lines of the prompt for the verbose preview,
// stopping before the digest body floods the terminal.
func promptHead(prompt string) string {
	const maxLines = 40
	lines := strings.SplitN(prompt, "\n", maxLines+1)
	if len(lines) <= maxLines {
		return prompt
	}
	return strings.Join(lines[:maxLines], "\n") + "\n...\n"
}

func printConfig(w io.Writer, cfg Config) {
	panel := fmt.Sprintf(
		"Repository: %s\nQuestion: %s\nModel: %s\nMax file size: %dMB\nMax total size: %dMB\nThreshold: %.1f¢\nDry run: %v",
		cfg.Reference, cfg.Question, cfg.Model, cfg.MaxFileKB/1024, cfg.MaxTotalKB/1024, cfg.ThresholdCents, cfg.DryRun,
	)
	fmt.Fprintln(w, tui.PanelStyle.Render(panel))
}

func printCandidates(w io.Writer, candidates []resolve.Candidate) {
	fmt.Fprintln(w, tui.DimStyle.Render("Candidates:"))
	for i, c := range candidates {
		fmt.Fprintf(w, "  %2d. %-40s score %.2f\n", i+1, c.Repo.FullName(), c.Score)
	}
}

func printEstimate(w io.Writer, repo explain.Repository, est cost.Estimate) {
	fmt.Fprintf(w, "Size: %d bytes (%.1fMB), effective %d bytes\n", repo.SizeBytes, repo.SizeMB(), est.EffectiveBytes)
	fmt.Fprintf(w, "Tokens: %d prompt + %d response = %d\n", est.PromptTokens, est.ResponseTokens, est.TotalTokens)
	fmt.Fprintf(w, "Cost: %.2f¢ (%s)\n", est.CostCents, est.Model)
}

// printPlan shows what a real run would do, for dry-run output.
func printPlan(w io.Writer, cfg Config, repo explain.Repository, est cost.Estimate) {
	plan := fmt.Sprintf(
		"Would process %s\n  1. Extract content from %s (max file %dMB, max total %dMB)\n  2. Query %s with the digest and question\n  3. Render the markdown answer\nEstimate: %s",
		repo.FullName(), repo.URL(), cfg.MaxFileKB/1024, cfg.MaxTotalKB/1024, cfg.Model, est,
	)
	fmt.Fprintln(w, tui.PanelStyle.Render(plan))
}
