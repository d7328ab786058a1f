// Package collab invokes the three external collaborators: gitingest for
// content extraction, mods for the AI query, and glow for markdown rendering.
// Each call is a synchronous subprocess invocation; nothing here retries.
package collab

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/sstitle/public-explanation/internal/explain"
)

// Install URLs shown when a collaborator is missing.
const (
	gitingestURL = "https://github.com/coderamp-labs/gitingest"
	modsURL      = "https://github.com/charmbracelet/mods"
	glowURL      = "https://github.com/charmbracelet/glow"
)

const (
	probeTimeout   = 5 * time.Second
	extractTimeout = 5 * time.Minute
	askTimeout     = 2 * time.Minute
	renderTimeout  = 30 * time.Second
)

// invocation describes one subprocess call.
type invocation struct {
	name        string
	args        []string
	stdin       string
	extraEnv    []string
	interactive bool // inherit the parent's stdout/stderr (for glow)
}

type runResult struct {
	stdout   string
	stderr   string
	exitCode int
}

type runFunc func(ctx context.Context, inv invocation) (runResult, error)

// Tools wraps the external collaborator binaries. Binary names are fields so
// tests and exotic installs can point elsewhere.
type Tools struct {
	Gitingest string
	Mods      string
	Glow      string
	Verbose   bool
	Out       io.Writer // rendered output (fallback path)
	Log       io.Writer // verbose diagnostics

	run runFunc
}

// New returns a Tools with the standard binary names.
func New(verbose bool) *Tools {
	return &Tools{
		Gitingest: "gitingest",
		Mods:      "mods",
		Glow:      "glow",
		Verbose:   verbose,
		Out:       os.Stdout,
		Log:       os.Stderr,
		run:       execute,
	}
}

// execute is the real subprocess runner.
func execute(ctx context.Context, inv invocation) (runResult, error) {
	cmd := exec.CommandContext(ctx, inv.name, inv.args...)
	if inv.stdin != "" {
		cmd.Stdin = strings.NewReader(inv.stdin)
	}
	if len(inv.extraEnv) > 0 {
		cmd.Env = append(os.Environ(), inv.extraEnv...)
	}

	var stdout, stderr bytes.Buffer
	if inv.interactive {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	} else {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	}

	err := cmd.Run()
	res := runResult{stdout: stdout.String(), stderr: stderr.String()}
	if cmd.ProcessState != nil {
		res.exitCode = cmd.ProcessState.ExitCode()
	}
	return res, err
}

// Available reports whether a tool responds to --version.
func (t *Tools) Available(name string) bool {
	ctx, cancel := context.WithTimeout(context.Background(), probeTimeout)
	defer cancel()
	res, err := t.run(ctx, invocation{name: name, args: []string{"--version"}})
	return err == nil && res.exitCode == 0
}

// Missing returns install hints for collaborators that are not on PATH.
// Glow is optional (a built-in fallback renderer exists), so callers treat
// its absence as a warning, not an error.
func (t *Tools) Missing() []string {
	var hints []string
	for _, tool := range []struct{ name, url string }{
		{t.Gitingest, gitingestURL},
		{t.Mods, modsURL},
		{t.Glow, glowURL},
	} {
		if !t.Available(tool.name) {
			hints = append(hints, fmt.Sprintf("%s (%s)", tool.name, tool.url))
		}
	}
	return hints
}

// collabError wraps a subprocess failure into the error taxonomy. When the
// binary is missing the exec error says so; otherwise exit code and stderr
// are carried for verbose display.
func collabError(tool string, res runResult, err error) error {
	if errors.Is(err, exec.ErrNotFound) {
		return &explain.CollaboratorError{Tool: tool, Err: fmt.Errorf("not installed: %w", err)}
	}
	return &explain.CollaboratorError{Tool: tool, ExitCode: res.exitCode, Stderr: res.stderr, Err: err}
}

func (t *Tools) logf(format string, args ...any) {
	if t.Verbose {
		fmt.Fprintf(t.Log, format+"\n", args...)
	}
}
