// Package cost estimates token usage and API cost for a repository-sized
// prompt, and gates invocations on that estimate.
package cost

import (
	"fmt"

	"github.com/sstitle/public-explanation/internal/explain"
)

// bytesPerToken is the fixed heuristic ratio used instead of running a
// tokenizer: roughly 4 bytes of source text per token.
const bytesPerToken = 4

// maxResponseTokens caps the assumed response size.
const maxResponseTokens = 1000

// modelRate is the price in cents per 1K tokens.
type modelRate struct {
	inCents  float64
	outCents float64
}

// pricing maps supported model names to their rates.
var pricing = map[string]modelRate{
	"gpt-4o":        {0.5, 1.5},
	"gpt-4o-mini":   {0.015, 0.06},
	"gpt-4-turbo":   {1.0, 3.0},
	"gpt-3.5-turbo": {0.05, 0.15},
}

// Models returns the supported model names, for error messages.
func Models() []string {
	names := make([]string, 0, len(pricing))
	for name := range pricing {
		names = append(names, name)
	}
	return names
}

// Estimate is the projected token usage and cost of one invocation. It is a
// pure function of its inputs; actual usage may differ.
type Estimate struct {
	Model          string
	EffectiveBytes int64
	PromptTokens   int64
	ResponseTokens int64
	TotalTokens    int64
	CostCents      float64
}

func (e Estimate) String() string {
	return fmt.Sprintf("~%d tokens, ~%.1f¢ (%s)", e.TotalTokens, e.CostCents, e.Model)
}

// ForRepo estimates processing cost for a repository of sizeBytes. The
// effective size is capped at maxTotalKB so cost stays bounded for
// arbitrarily large repositories. maxFileKB is part of the configured limits
// but does not change the estimate: per-file filtering only redistributes
// which bytes fill the total cap.
func ForRepo(sizeBytes int64, model string, maxFileKB, maxTotalKB int) (Estimate, error) {
	rate, ok := pricing[model]
	if !ok {
		return Estimate{}, fmt.Errorf("%w: %q (supported: %v)", explain.ErrUnknownModel, model, Models())
	}
	if sizeBytes < 0 {
		sizeBytes = 0
	}

	effective := sizeBytes
	if limit := int64(maxTotalKB) * 1024; effective > limit {
		effective = limit
	}

	prompt := (effective + bytesPerToken - 1) / bytesPerToken
	response := prompt / 10
	if response > maxResponseTokens {
		response = maxResponseTokens
	}

	cents := float64(prompt)/1000*rate.inCents + float64(response)/1000*rate.outCents

	return Estimate{
		Model:          model,
		EffectiveBytes: effective,
		PromptTokens:   prompt,
		ResponseTokens: response,
		TotalTokens:    prompt + response,
		CostCents:      cents,
	}, nil
}
