package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"
	"time"
)

// StandardizerService rewrites messy ingredient strings into standard names
// via a remote chat-completion endpoint. It is strictly best-effort: on any
// error the raw strings pass through unchanged, and downstream normalization
// still applies to whatever comes back.
type StandardizerService struct {
	apiKey string
	apiURL string
	client *http.Client
}

// NewStandardizerService creates a StandardizerService. Returns nil when no
// endpoint is configured; callers treat a nil service as "standardization off".
func NewStandardizerService(apiURL, apiKey string) *StandardizerService {
	if apiURL == "" || apiKey == "" {
		return nil
	}
	return &StandardizerService{
		apiKey: apiKey,
		apiURL: apiURL,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

type standardizerMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type standardizerRequest struct {
	Model          string                `json:"model"`
	Messages       []standardizerMessage `json:"messages"`
	ResponseFormat map[string]string     `json:"response_format"`
	Temperature    float64               `json:"temperature"`
}

// Standardize maps raw ingredient strings to standard names. The input is
// returned unchanged on any failure.
func (s *StandardizerService) Standardize(ctx context.Context, ingredients []string) []string {
	if len(ingredients) == 0 {
		return ingredients
	}

	prompt := "Standardize these food ingredient names. Respond only with JSON like {\"ingredients\":[\"name\"]}, one entry per input, same order:\n" +
		strings.Join(ingredients, "\n")

	reqBody := standardizerRequest{
		Model: "deepseek-chat",
		Messages: []standardizerMessage{
			{
				Role:    "system",
				Content: "You are a food labelling expert. Map each ingredient string to its standard ingredient name. Keep unknown entries unchanged.",
			},
			{
				Role:    "user",
				Content: prompt,
			},
		},
		ResponseFormat: map[string]string{"type": "json_object"},
		Temperature:    0,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return ingredients
	}

	req, err := http.NewRequestWithContext(ctx, "POST", s.apiURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return ingredients
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", s.apiKey))

	resp, err := s.client.Do(req)
	if err != nil {
		log.Printf("[StandardizerService] request failed: %v", err)
		return ingredients
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return ingredients
	}
	if resp.StatusCode != http.StatusOK {
		log.Printf("[StandardizerService] request failed with status %d: %s", resp.StatusCode, string(body))
		return ingredients
	}

	var result struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.Unmarshal(body, &result); err != nil || len(result.Choices) == 0 {
		return ingredients
	}

	var parsed struct {
		Ingredients []string `json:"ingredients"`
	}
	if err := json.Unmarshal([]byte(result.Choices[0].Message.Content), &parsed); err != nil {
		return ingredients
	}

	// A response with a different cardinality cannot be trusted to line up
	// with the input, so fall back to the raw strings.
	if len(parsed.Ingredients) != len(ingredients) {
		return ingredients
	}

	return parsed.Ingredients
}
