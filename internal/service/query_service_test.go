package service

import (
	"context"
	"strings"
	"testing"

	"github.com/CRautomation-ai/showcase-agent/internal/dto"
	"github.com/CRautomation-ai/showcase-agent/pkg/llm"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/answer"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/citation"
	"github.com/CRautomation-ai/showcase-agent/pkg/rag/rewrite"
)

type scriptedLLM struct {
	response string
	prompts  []string
}

func (f *scriptedLLM) Chat(ctx context.Context, history []llm.Message, opts ...llm.Option) (string, error) {
	for _, m := range history {
		f.prompts = append(f.prompts, m.Content)
	}
	return f.response, nil
}

func (f *scriptedLLM) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return f.Chat(ctx, []llm.Message{{Role: "user", Content: prompt}}, opts...)
}

type staticSearcher struct {
	chunks   []answer.RetrievedChunk
	lastTopK int
}

func (s *staticSearcher) SearchSimilar(ctx context.Context, vector []float32, topK int) ([]answer.RetrievedChunk, error) {
	s.lastTopK = topK
	return s.chunks, nil
}

func newQueryServiceForTest(chat *scriptedLLM, searcher *staticSearcher, defaultTopK int) IQueryService {
	answerer := answer.NewAnswerer(
		rewrite.NewRewriter(chat),
		&countingEmbedder{},
		searcher,
		chat,
	)
	return NewQueryService(answerer, defaultTopK, noopLogger{})
}

func TestQuery_DefaultTopKApplied(t *testing.T) {
	searcher := &staticSearcher{}
	svc := newQueryServiceForTest(&scriptedLLM{response: "answer"}, searcher, 7)

	res, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "what is covered?"})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if searcher.lastTopK != 7 {
		t.Errorf("topK = %d, want configured default 7", searcher.lastTopK)
	}
	if res.Answer != answer.NoContextAnswer {
		t.Errorf("Answer = %q, want fallback for empty retrieval", res.Answer)
	}
	if len(res.Sources) != 0 {
		t.Errorf("Sources = %v, want empty", res.Sources)
	}
}

func TestQuery_ExplicitTopKWins(t *testing.T) {
	searcher := &staticSearcher{}
	svc := newQueryServiceForTest(&scriptedLLM{response: "answer"}, searcher, 7)

	if _, err := svc.Query(context.Background(), &dto.QueryRequest{Query: "q", TopK: 3}); err != nil {
		t.Fatalf("Query() error = %v", err)
	}
	if searcher.lastTopK != 3 {
		t.Errorf("topK = %d, want 3", searcher.lastTopK)
	}
}

func TestQuery_PreviousMessagesReachRewriter(t *testing.T) {
	page := 2
	searcher := &staticSearcher{chunks: []answer.RetrievedChunk{
		{Text: "refunds take 30 days", Source: citation.Source{SourceFile: "policy.pdf", PageNumber: &page}},
	}}
	chat := &scriptedLLM{response: "Refunds are processed within 30 days."}
	svc := newQueryServiceForTest(chat, searcher, 5)

	res, err := svc.Query(context.Background(), &dto.QueryRequest{
		Query: "and how long does it take?",
		PreviousMessages: []dto.PreviousMessage{
			{Query: "can I get a refund?", Answer: "Yes, within the policy window."},
		},
	})
	if err != nil {
		t.Fatalf("Query() error = %v", err)
	}

	var sawTranscript bool
	for _, p := range chat.prompts {
		if strings.Contains(p, "Q: can I get a refund?\nA: Yes, within the policy window.") {
			sawTranscript = true
		}
	}
	if !sawTranscript {
		t.Error("conversation history never reached the rewrite prompt")
	}

	if len(res.Sources) != 1 || res.Sources[0] != "policy.pdf > Page 2" {
		t.Errorf("Sources = %v, want [policy.pdf > Page 2]", res.Sources)
	}
}
