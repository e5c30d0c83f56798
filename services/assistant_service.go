package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// systemInstruction pins the assistant to its domain; prepended to every
// question.
const systemInstruction = "Answer briefly. Fitness & nutrition only."

var ErrMissingAPIKey = errors.New("API key missing")

// AssistantService forwards questions to the generative-text completion API.
// Stateless; nothing is persisted.
type AssistantService struct {
	apiKey  string
	baseURL string
	model   string
	client  *http.Client
}

func NewAssistantService() *AssistantService {
	return &AssistantService{
		apiKey:  os.Getenv("GEMINI_API_KEY"),
		baseURL: "https://generativelanguage.googleapis.com",
		model:   "gemini-1.5-flash",
		client:  &http.Client{Timeout: 15 * time.Second},
	}
}

type generateContentRequest struct {
	Contents []promptContent `json:"contents"`
}

type promptContent struct {
	Parts []promptPart `json:"parts"`
}

type promptPart struct {
	Text string `json:"text"`
}

type generateContentResponse struct {
	Candidates []struct {
		Content struct {
			Parts []struct {
				Text string `json:"text"`
			} `json:"parts"`
		} `json:"content"`
	} `json:"candidates"`
}

// Ask sends the question upstream and returns the plain-text answer. Every
// failure comes back as an error; callers decide how much of it to expose.
func (s *AssistantService) Ask(ctx context.Context, question string) (string, error) {
	if s.apiKey == "" {
		return "", ErrMissingAPIKey
	}

	payload := generateContentRequest{
		Contents: []promptContent{{
			Parts: []promptPart{{Text: systemInstruction + "\nUser: " + question}},
		}},
	}
	b, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal completion payload: %w", err)
	}

	u := fmt.Sprintf("%s/v1beta/models/%s:generateContent?key=%s", s.baseURL, s.model, s.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, bytes.NewReader(b))
	if err != nil {
		return "", fmt.Errorf("failed to create completion request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to call completion API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read completion response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion API error %d: %s", resp.StatusCode, string(body))
	}

	var out generateContentResponse
	if err := json.Unmarshal(body, &out); err != nil {
		return "", fmt.Errorf("failed to parse completion JSON: %w", err)
	}
	if len(out.Candidates) == 0 || len(out.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("completion API returned no answer")
	}
	return strings.TrimSpace(out.Candidates[0].Content.Parts[0].Text), nil
}
