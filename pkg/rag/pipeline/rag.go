package pipeline

import (
	"context"
	"fmt"

	"pdf-chatbot-be/pkg/embedding"
	"pdf-chatbot-be/pkg/llm"
	"pdf-chatbot-be/pkg/rag/index"
	"pdf-chatbot-be/pkg/rag/prompt"
)

// TopK is the number of passages retrieved for each question.
const TopK = 3

// answerTemperature keeps generation close to the retrieved material.
const answerTemperature = 0.2

// RAGPipeline answers a question from one session's vector index: retrieve
// the top passages, build a grounding prompt, generate.
type RAGPipeline struct {
	embedder embedding.EmbeddingProvider
	llm      llm.LLMProvider
}

func NewRAGPipeline(embedder embedding.EmbeddingProvider, llmProvider llm.LLMProvider) *RAGPipeline {
	return &RAGPipeline{
		embedder: embedder,
		llm:      llmProvider,
	}
}

// Answer runs the retrieval-answering flow against idx. It returns the
// generated answer and the passages it was grounded on.
func (p *RAGPipeline) Answer(ctx context.Context, idx *index.Index, question string) (string, []index.Result, error) {
	results, err := idx.Query(ctx, p.embedder, question, TopK)
	if err != nil {
		return "", nil, fmt.Errorf("retrieve passages: %w", err)
	}

	answer, err := p.llm.Generate(
		ctx,
		prompt.NewBuilder(question, results).Build(),
		llm.WithTemperature(answerTemperature),
	)
	if err != nil {
		return "", nil, fmt.Errorf("generate answer: %w", err)
	}

	return answer, results, nil
}
