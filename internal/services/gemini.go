package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"google.golang.org/genai"
)

// GeminiService is the generative-text backend boundary. One call per model
// attempt; the fallback chain lives in the analyzer, not here.
type GeminiService interface {
	GenerateText(ctx context.Context, model, prompt string) (string, error)
}

type geminiService struct {
	mu          sync.Mutex
	client      *genai.Client
	apiKey      string
	temperature float32
}

// NewGeminiService never fails: the underlying client is created on first
// use, so the server still boots (and serves /health) when the API key is
// absent and requests fail individually instead.
func NewGeminiService(apiKey string, temperature float32) GeminiService {
	return &geminiService{
		apiKey:      apiKey,
		temperature: temperature,
	}
}

func (g *geminiService) ensureClient(ctx context.Context) (*genai.Client, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.client != nil {
		return g.client, nil
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  g.apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	g.client = client
	return client, nil
}

// GenerateText implements GeminiService.
func (g *geminiService) GenerateText(ctx context.Context, model, prompt string) (string, error) {
	client, err := g.ensureClient(ctx)
	if err != nil {
		return "", err
	}

	temperature := g.temperature
	config := &genai.GenerateContentConfig{
		Temperature:     &temperature,
		MaxOutputTokens: 4096,
	}

	resp, err := client.Models.GenerateContent(ctx, model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("failed to generate text: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("no response generated (nil response)")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("no text content in response")
	}

	return text, nil
}

// IsModelUnavailable reports whether err is the backend's structured signal
// that the requested model does not exist or is not served, which is the only
// condition that moves the fallback chain to the next model. Auth, quota and
// network failures are assumed to hit every model equally and stay fatal.
func IsModelUnavailable(err error) bool {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusNotFound
	}
	return false
}
