package collab

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/glamour"
)

// Render displays markdown in the terminal: through glow when installed,
// otherwise through the built-in glamour renderer.
func (t *Tools) Render(ctx context.Context, markdown string) error {
	if !t.Available(t.Glow) {
		t.logf("%s not installed, rendering with built-in renderer", t.Glow)
		return t.renderFallback(markdown)
	}

	f, err := os.CreateTemp("", "explanation-*.md")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(f.Name())

	if _, err := f.WriteString(markdown); err != nil {
		f.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	f.Close()

	ctx, cancel := context.WithTimeout(ctx, renderTimeout)
	defer cancel()

	t.logf("rendering: %s %s", t.Glow, f.Name())
	res, err := t.run(ctx, invocation{
		name:        t.Glow,
		args:        []string{f.Name()},
		interactive: true,
	})
	if err != nil {
		return collabError(t.Glow, res, err)
	}
	return nil
}

// renderFallback renders markdown in-process with glamour.
func (t *Tools) renderFallback(markdown string) error {
	out, err := glamour.Render(markdown, "dark")
	if err != nil {
		// Last resort: raw markdown is still better than nothing.
		fmt.Fprintln(t.Out, markdown)
		return nil
	}
	fmt.Fprint(t.Out, out)
	return nil
}
