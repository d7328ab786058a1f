package explain

import (
	"errors"
	"fmt"
	"strings"
)

// Failure conditions that abort an invocation. Callers match with errors.Is.
var (
	// ErrNotFound means the reference did not resolve to any public repository.
	ErrNotFound = errors.New("repository not found")

	// ErrRateLimited means the GitHub API quota is exhausted for this run.
	ErrRateLimited = errors.New("github api rate limit exceeded")

	// ErrUnknownModel means the requested model has no pricing entry.
	ErrUnknownModel = errors.New("unknown model")

	// ErrMissingCredentials means no OpenAI API key is configured.
	ErrMissingCredentials = errors.New("OPENAI_API_KEY not set")

	// ErrUserDeclined means an interactive confirmation or selection was refused.
	ErrUserDeclined = errors.New("declined by user")
)

// CollaboratorError reports a failed external tool invocation: the tool was
// missing, exited non-zero, or produced unusable output.
type CollaboratorError struct {
	Tool     string
	ExitCode int
	Stderr   string
	Err      error
}

func (e *CollaboratorError) Error() string {
	msg := fmt.Sprintf("%s failed", e.Tool)
	if e.ExitCode != 0 {
		msg = fmt.Sprintf("%s (exit %d)", msg, e.ExitCode)
	}
	if e.Err != nil {
		msg = fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *CollaboratorError) Unwrap() error {
	return e.Err
}

// Detail returns the captured stderr, trimmed, for verbose display.
func (e *CollaboratorError) Detail() string {
	return strings.TrimSpace(e.Stderr)
}
