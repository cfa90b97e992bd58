package gemini

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"fiberise-be/pkg/genai"
)

const defaultBaseURL = "https://generativelanguage.googleapis.com/v1beta"

type geminiChatParts struct {
	Text string `json:"text"`
}

type geminiChatContent struct {
	Parts []*geminiChatParts `json:"parts"`
	Role  string             `json:"role,omitempty"`
}

type geminiChatRequest struct {
	SystemInstruction *geminiChatContent   `json:"system_instruction,omitempty"`
	Contents          []*geminiChatContent `json:"contents"`
}

type geminiChatCandidate struct {
	Content *geminiChatContent `json:"content"`
}

type geminiChatResponse struct {
	Candidates []*geminiChatCandidate `json:"candidates"`
}

// Provider calls the Gemini generateContent REST API.
type Provider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewProvider(apiKey string) *Provider {
	return &Provider{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// NewProviderWithBaseURL exists for tests pointing at a stub server.
func NewProviderWithBaseURL(apiKey, baseURL string) *Provider {
	p := NewProvider(apiKey)
	p.baseURL = baseURL
	return p
}

func (p *Provider) Chat(ctx context.Context, model, systemInstruction string, history []genai.Message) (string, error) {
	contents := make([]*geminiChatContent, 0, len(history))
	for _, msg := range history {
		contents = append(contents, &geminiChatContent{
			Parts: []*geminiChatParts{{Text: msg.Content}},
			Role:  msg.Role,
		})
	}

	payload := geminiChatRequest{Contents: contents}
	if systemInstruction != "" {
		payload.SystemInstruction = &geminiChatContent{
			Parts: []*geminiChatParts{{Text: systemInstruction}},
		}
	}

	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	url := fmt.Sprintf("%s/models/%s:generateContent", p.baseURL, model)
	req, err := http.NewRequestWithContext(ctx, "POST", url, bytes.NewBuffer(payloadJson))
	if err != nil {
		return "", err
	}
	req.Header.Set("x-goog-api-key", p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := p.client.Do(req)
	if err != nil {
		return "", err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return "", err
	}

	if res.StatusCode != http.StatusOK {
		return "", &genai.StatusError{
			StatusCode: res.StatusCode,
			Model:      model,
			Body:       string(resBody),
		}
	}

	var geminiRes geminiChatResponse
	if err := json.Unmarshal(resBody, &geminiRes); err != nil {
		return "", err
	}

	if len(geminiRes.Candidates) == 0 || geminiRes.Candidates[0].Content == nil ||
		len(geminiRes.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini: empty candidates in response for model %s", model)
	}

	return geminiRes.Candidates[0].Content.Parts[0].Text, nil
}
