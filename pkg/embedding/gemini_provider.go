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

type GeminiProvider struct {
	ApiKey string
	Model  string
	Client *http.Client
}

var _ EmbeddingProvider = &GeminiProvider{}

func NewGeminiProvider(apiKey, model string) *GeminiProvider {
	return &GeminiProvider{
		ApiKey: apiKey,
		Model:  model,
		Client: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type geminiEmbedRequestContentPart struct {
	Text string `json:"text"`
}

type geminiEmbedRequestContent struct {
	Parts []geminiEmbedRequestContentPart `json:"parts"`
}

type geminiEmbedRequest struct {
	Model    string                    `json:"model"`
	Content  geminiEmbedRequestContent `json:"content"`
	TaskType string                    `json:"task_type,omitempty"`
}

type geminiEmbedResponseEmbedding struct {
	Values []float32 `json:"values"`
}

type geminiEmbedResponse struct {
	Embedding geminiEmbedResponseEmbedding `json:"embedding"`
}

func (p *GeminiProvider) Generate(ctx context.Context, text string, taskType string) ([]float32, error) {
	geminiReq := geminiEmbedRequest{
		Model: p.Model,
		Content: geminiEmbedRequestContent{
			Parts: []geminiEmbedRequestContentPart{
				{
					Text: text,
				},
			},
		},
		TaskType: taskType,
	}
	geminiReqJson, err := json.Marshal(geminiReq)
	if err != nil {
		return nil, err
	}

	endpoint := fmt.Sprintf(
		"https://generativelanguage.googleapis.com/v1/models/%s:embedContent",
		p.Model,
	)

	req, err := http.NewRequestWithContext(
		ctx,
		"POST",
		endpoint,
		bytes.NewBuffer(geminiReqJson),
	)
	if err != nil {
		return nil, err
	}

	req.Header.Set("x-goog-api-key", p.ApiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	resByte, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, err
	}

	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("error from gemini response, code %d, body %s", res.StatusCode, string(resByte))
	}

	var resEmbedding geminiEmbedResponse
	err = json.Unmarshal(resByte, &resEmbedding)
	if err != nil {
		return nil, err
	}

	return resEmbedding.Embedding.Values, nil
}
