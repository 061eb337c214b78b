package inference

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const maxResponseBytes = 1 << 20

// HuggingFace calls the hosted summarization task of the Hugging Face
// inference API: POST {endpoint}/models/{model}.
type HuggingFace struct {
	endpoint string
	apiKey   string
	client   *http.Client
}

// NewHuggingFace returns a gateway for the given inference endpoint.
func NewHuggingFace(endpoint, apiKey string, timeout time.Duration) *HuggingFace {
	return &HuggingFace{
		endpoint: strings.TrimRight(strings.TrimSpace(endpoint), "/"),
		apiKey:   strings.TrimSpace(apiKey),
		client:   &http.Client{Timeout: timeout},
	}
}

type summarizationRequest struct {
	Inputs string `json:"inputs"`
}

// summarizationOutput is one element of the provider reply. SummaryText is
// nil when the field is absent.
type summarizationOutput struct {
	SummaryText *string `json:"summary_text"`
}

type providerError struct {
	Error json.RawMessage `json:"error"`
}

func (h *HuggingFace) Summarize(ctx context.Context, text, model string) (string, error) {
	body, _ := json.Marshal(summarizationRequest{Inputs: text})

	url := h.endpoint + "/models/" + strings.Trim(model, "/")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Authorization", "Bearer "+h.apiKey)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := h.client.Do(req)
	if err != nil {
		return "", &TransportError{Err: err}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return "", &TransportError{StatusCode: resp.StatusCode, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", &TransportError{
			StatusCode: resp.StatusCode,
			Message:    providerErrorMessage(resp.StatusCode, respBody),
		}
	}
	return decodeSummary(respBody)
}

// decodeSummary accepts both the list form `[{"summary_text": ...}]` and a
// bare object.
func decodeSummary(body []byte) (string, error) {
	trimmed := bytes.TrimSpace(body)

	var out summarizationOutput
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var list []summarizationOutput
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
		}
		if len(list) == 0 {
			return "", ErrMalformedResponse
		}
		out = list[0]
	} else if err := json.Unmarshal(trimmed, &out); err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if out.SummaryText == nil {
		return "", ErrMalformedResponse
	}
	return *out.SummaryText, nil
}

// providerErrorMessage extracts `{"error": "..."}` or `{"error": ["..."]}`
// from a failed reply, falling back to the raw body.
func providerErrorMessage(status int, body []byte) string {
	var pe providerError
	if err := json.Unmarshal(body, &pe); err == nil && len(pe.Error) > 0 {
		var msg string
		if err := json.Unmarshal(pe.Error, &msg); err == nil && strings.TrimSpace(msg) != "" {
			return strings.TrimSpace(msg)
		}
		var msgs []string
		if err := json.Unmarshal(pe.Error, &msgs); err == nil && len(msgs) > 0 {
			return strings.Join(msgs, "; ")
		}
	}
	if msg := strings.TrimSpace(string(body)); msg != "" {
		return msg
	}
	return http.StatusText(status)
}
