package answer

import (
	"context"
	"fmt"
	"strings"

	"github.com/CRautomation-ai/showcase-agent/pkg/embedding"
	"github.com/CRautomation-ai/showcase-agent/pkg/llm"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/citation"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/rewrite"
)

// NoContextAnswer is returned verbatim when retrieval comes back empty.
const NoContextAnswer = "I couldn't find any relevant information in the documents to answer your question."

const systemPrompt = `You are a helpful assistant that answers questions based on the provided context from documents.
Use only the information from the context to answer the question. If the context doesn't contain enough information to answer the question, say so.`

const contextSeparator = "\n\n---\n\n"

// RetrievedChunk is one ranked similarity-search hit.
type RetrievedChunk struct {
	Text   string
	Source citation.Source
}

// Searcher returns up to topK chunks ranked by descending similarity.
type Searcher interface {
	SearchSimilar(ctx context.Context, vector []float32, topK int) ([]RetrievedChunk, error)
}

// QueryRewriter folds conversation history into a standalone query.
type QueryRewriter interface {
	Rewrite(ctx context.Context, currentQuery string, previous []rewrite.Turn) (string, error)
}

// Result is the outcome of one answered query. Sources are unique citation
// strings in first-occurrence retrieval order.
type Result struct {
	Answer  string
	Sources []string
}

// Answerer orchestrates rewrite, embed, search, context assembly and answer
// generation. Stateless across calls; collaborator failures propagate
// without retry.
type Answerer struct {
	rewriter    QueryRewriter
	embedder    embedding.EmbeddingProvider
	searcher    Searcher
	provider    llm.LLMProvider
	temperature float64
	maxTokens   int
}

func NewAnswerer(rewriter QueryRewriter, embedder embedding.EmbeddingProvider, searcher Searcher, provider llm.LLMProvider) *Answerer {
	return &Answerer{
		rewriter:    rewriter,
		embedder:    embedder,
		searcher:    searcher,
		provider:    provider,
		temperature: 0.7,
		maxTokens:   1000,
	}
}

func (a *Answerer) Answer(ctx context.Context, userQuery string, topK int, previous []rewrite.Turn) (*Result, error) {
	if topK <= 0 {
		topK = 5
	}

	// The rewritten query drives both retrieval and generation so the answer
	// addresses the fully contextualized question.
	searchQuery := userQuery
	if len(previous) > 0 {
		rewritten, err := a.rewriter.Rewrite(ctx, userQuery, previous)
		if err != nil {
			return nil, err
		}
		searchQuery = rewritten
	}

	vector, err := a.embedder.Generate(ctx, searchQuery, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	chunks, err := a.searcher.SearchSimilar(ctx, vector, topK)
	if err != nil {
		return nil, fmt.Errorf("similarity search: %w", err)
	}

	if len(chunks) == 0 {
		return &Result{
			Answer:  NoContextAnswer,
			Sources: []string{},
		}, nil
	}

	contextBlock, sources := assembleContext(chunks)

	userPrompt := fmt.Sprintf("Context from documents:\n\n%s\n\nQuestion: %s\n", contextBlock, searchQuery)

	answerText, err := a.provider.Chat(ctx, []llm.Message{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: userPrompt},
	},
		llm.WithTemperature(a.temperature),
		llm.WithMaxTokens(a.maxTokens),
	)
	if err != nil {
		return nil, fmt.Errorf("generate answer: %w", err)
	}

	return &Result{
		Answer:  answerText,
		Sources: sources,
	}, nil
}

// assembleContext renders each chunk as "[Source: <citation>]\n<text>" in
// rank order and collects the deduplicated citation list from the same
// formatting pass, so inline markers and sources always match.
func assembleContext(chunks []RetrievedChunk) (string, []string) {
	blocks := make([]string, len(chunks))
	citations := make([]string, len(chunks))
	for i, chunk := range chunks {
		c := citation.Format(chunk.Source)
		blocks[i] = fmt.Sprintf("[Source: %s]\n%s", c, chunk.Text)
		citations[i] = c
	}
	return strings.Join(blocks, contextSeparator), citation.Dedup(citations)
}
