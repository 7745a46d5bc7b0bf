package rewrite

import (
	"context"
	"fmt"
	"strings"

	"github.com/CRautomation-ai/showcase-agent/pkg/llm"
)

// Turn is one completed question/answer exchange, oldest first.
type Turn struct {
	Query  string
	Answer string
}

const promptTemplate = `Use the previous messages and the current user query to create a new, standalone user query that provides full context and is a complete question. The new query should be self-contained so that someone reading only it understands what is being asked. Output only the new query, nothing else.

Previous messages:
%s

Current user query: %s

New standalone query:`

// Rewriter folds conversation history into a single standalone retrieval
// query. Canonicalization, not prose, so the completion runs cool and short.
type Rewriter struct {
	provider    llm.LLMProvider
	temperature float64
	maxTokens   int
}

func NewRewriter(provider llm.LLMProvider) *Rewriter {
	return &Rewriter{
		provider:    provider,
		temperature: 0.3,
		maxTokens:   200,
	}
}

// Rewrite returns a self-contained query. With no history the input is
// returned verbatim without touching the model. An empty completion also
// falls back to the input; the result is never empty for non-empty input.
func (r *Rewriter) Rewrite(ctx context.Context, currentQuery string, previous []Turn) (string, error) {
	if len(previous) == 0 {
		return currentQuery, nil
	}

	prompt := fmt.Sprintf(promptTemplate, transcript(previous), currentQuery)

	completion, err := r.provider.Generate(ctx, prompt,
		llm.WithTemperature(r.temperature),
		llm.WithMaxTokens(r.maxTokens),
	)
	if err != nil {
		return "", fmt.Errorf("rewrite query: %w", err)
	}

	rewritten := strings.TrimSpace(completion)
	if rewritten == "" {
		return currentQuery, nil
	}
	return rewritten, nil
}

func transcript(turns []Turn) string {
	lines := make([]string, len(turns))
	for i, t := range turns {
		lines[i] = fmt.Sprintf("Q: %s\nA: %s", t.Query, t.Answer)
	}
	return strings.Join(lines, "\n\n")
}
