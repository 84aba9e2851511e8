package index

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"

	"pdf-chatbot-be/pkg/embedding"
)

// ErrEmptyIndex is returned when a query hits an index with no passages.
var ErrEmptyIndex = errors.New("vector index has no passages")

// Chunk is a piece of document text ready for embedding.
type Chunk struct {
	Text   string
	Source string
	Page   int
}

// Passage is an embedded chunk owned by the index that stored it. The vector
// is L2-normalized, so similarity is a plain dot product.
type Passage struct {
	Text   string
	Source string
	Page   int
	Vector []float32
}

// Result pairs a retrieved passage with its similarity score.
type Result struct {
	Passage Passage
	Score   float32
}

// Embed turns chunks into passages by calling the embedding provider for each
// chunk's text. The first provider failure aborts the whole batch.
func Embed(ctx context.Context, provider embedding.EmbeddingProvider, chunks []Chunk) ([]Passage, error) {
	passages := make([]Passage, 0, len(chunks))
	for _, chunk := range chunks {
		vec, err := provider.Generate(ctx, chunk.Text, embedding.TaskRetrievalDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk of %s: %w", chunk.Source, err)
		}
		passages = append(passages, Passage{
			Text:   chunk.Text,
			Source: chunk.Source,
			Page:   chunk.Page,
			Vector: normalize(vec),
		})
	}
	return passages, nil
}

// Index is an append-only in-memory collection of passages with brute-force
// nearest-neighbor search. One instance lives per session.
type Index struct {
	passages []Passage
}

// New builds an index over the given passages. An empty passage list yields
// no index (nil), never an empty one; callers must check.
func New(passages []Passage) *Index {
	if len(passages) == 0 {
		return nil
	}
	return &Index{passages: passages}
}

func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.passages)
}

// Query embeds the question and returns the min(k, Len) most similar
// passages by descending score. Ties keep insertion order.
func (ix *Index) Query(ctx context.Context, provider embedding.EmbeddingProvider, question string, k int) ([]Result, error) {
	if k < 1 {
		return nil, fmt.Errorf("k must be at least 1, got %d", k)
	}
	if ix.Len() == 0 {
		return nil, ErrEmptyIndex
	}

	vec, err := provider.Generate(ctx, question, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, fmt.Errorf("embed question: %w", err)
	}
	queryVec := normalize(vec)

	scores := make([]float32, len(ix.passages))
	order := make([]int, len(ix.passages))
	for i := range ix.passages {
		scores[i] = dot(ix.passages[i].Vector, queryVec)
		order[i] = i
	}

	sort.SliceStable(order, func(a, b int) bool {
		return scores[order[a]] > scores[order[b]]
	})

	if k > len(order) {
		k = len(order)
	}
	results := make([]Result, 0, k)
	for _, i := range order[:k] {
		results = append(results, Result{
			Passage: ix.passages[i],
			Score:   scores[i],
		})
	}
	return results, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func normalize(vec []float32) []float32 {
	var sum float64
	for _, v := range vec {
		sum += float64(v) * float64(v)
	}
	norm := math.Sqrt(sum)
	if norm == 0 {
		return vec
	}
	out := make([]float32, len(vec))
	for i, v := range vec {
		out[i] = float32(float64(v) / norm)
	}
	return out
}
