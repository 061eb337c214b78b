package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	neturl "net/url"
	"strings"
	"time"
)

var errEmptyEndpoint = errors.New("openai-compatible endpoint is empty")

// OpenAICompatible talks to any server exposing /v1/chat/completions, such
// as a self-hosted model gateway.
type OpenAICompatible struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewOpenAICompatible returns a gateway for the chat completions endpoint
// rooted at endpoint (with or without a trailing /v1).
func NewOpenAICompatible(endpoint, apiKey string, timeout time.Duration) *OpenAICompatible {
	return &OpenAICompatible{
		endpoint: normalizeOpenAICompatibleEndpoint(endpoint),
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatCompletionRequest struct {
	Model     string        `json:"model"`
	Messages  []chatMessage `json:"messages"`
	MaxTokens int           `json:"max_tokens"`
}

type chatCompletionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *OpenAICompatible) Summarize(ctx context.Context, text, model string) (string, error) {
	if g.endpoint == "" {
		return "", &TransportError{Err: errEmptyEndpoint}
	}

	body, _ := json.Marshal(chatCompletionRequest{
		Model: model,
		Messages: []chatMessage{
			{Role: "system", Content: condenseSystemPrompt},
			{Role: "user", Content: text},
		},
		MaxTokens: maxOutputTokens,
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.endpoint+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := g.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var result chatCompletionResponse
		msg := strings.TrimSpace(string(respBody))
		if err := json.Unmarshal(respBody, &result); err == nil && result.Error != nil && result.Error.Message != "" {
			msg = result.Error.Message
		}
		if msg == "" {
			msg = http.StatusText(resp.StatusCode)
		}
		return "", &TransportError{StatusCode: resp.StatusCode, Message: msg}
	}

	var result chatCompletionResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", ErrMalformedResponse
	}
	if len(result.Choices) == 0 {
		return "", ErrMalformedResponse
	}
	return chatReplyText(result.Choices[0].Message.Content)
}

func normalizeOpenAICompatibleEndpoint(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}

	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimSuffix(strings.TrimRight(base, "/"), "/v1")
	}

	path := strings.TrimRight(parsed.Path, "/")
	parsed.Path = strings.TrimSuffix(path, "/v1")
	return strings.TrimRight(parsed.String(), "/")
}
