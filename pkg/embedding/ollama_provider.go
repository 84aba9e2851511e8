package embedding

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// OllamaProvider generates embeddings from a local Ollama instance. Useful
// for running without a Gemini key.
type OllamaProvider struct {
	BaseURL string
	Model   string
	Client  *http.Client
}

var _ EmbeddingProvider = &OllamaProvider{}

func NewOllamaProvider(baseURL, model string) *OllamaProvider {
	return &OllamaProvider{
		BaseURL: baseURL,
		Model:   model,
		Client: &http.Client{
			Timeout: 120 * time.Second,
		},
	}
}

type ollamaEmbedRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbedResponse struct {
	Embedding []float64 `json:"embedding"`
}

func (p *OllamaProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	// Nomic-style models ignore the task type; kept for interface compatibility.
	_ = taskType

	payload, err := json.Marshal(ollamaEmbedRequest{
		Model:  p.Model,
		Prompt: text,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		p.BaseURL+"/api/embeddings",
		bytes.NewBuffer(payload),
	)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from ollama response, code %d, body %s", res.StatusCode, string(resBody))
	}

	var embRes ollamaEmbedResponse
	if err := json.Unmarshal(resBody, &embRes); err != nil {
		return nil, err
	}

	vec := make([]float32, len(embRes.Embedding))
	for i, v := range embRes.Embedding {
		vec[i] = float32(v)
	}
	return vec, nil
}
