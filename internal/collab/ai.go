package collab

import (
	"context"
	"fmt"
	"strings"
)

// Ask sends the prompt to OpenAI through mods and returns the markdown
// answer. The prompt travels over stdin; the API key is injected into the
// subprocess environment only.
func (t *Tools) Ask(ctx context.Context, prompt, model, apiKey string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, askTimeout)
	defer cancel()

	args := []string{"-a", "openai", "-m", model, "-f"}
	t.logf("querying: %s %v (prompt %d chars)", t.Mods, args, len(prompt))

	res, err := t.run(ctx, invocation{
		name:     t.Mods,
		args:     args,
		stdin:    prompt,
		extraEnv: []string{"OPENAI_API_KEY=" + apiKey},
	})
	if err != nil {
		return "", collabError(t.Mods, res, err)
	}

	answer := strings.TrimSpace(res.stdout)
	if answer == "" {
		return "", collabError(t.Mods, res, fmt.Errorf("empty response"))
	}

	t.logf("answer: %d chars", len(answer))
	return answer, nil
}
