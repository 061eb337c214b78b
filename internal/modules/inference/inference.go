// Package inference wraps the hosted model provider behind a single
// summarization call.
package inference

import (
	"context"
	"errors"
	"fmt"
	"strings"

	appcfg "github.com/shelfshare/notesum/internal/config"
)

// Gateway performs one blocking summarization call against the provider.
// Implementations are immutable after construction and safe for concurrent use.
type Gateway interface {
	Summarize(ctx context.Context, text, model string) (string, error)
}

// ErrMalformedResponse is returned when the provider replied successfully but
// without the expected summary text.
var ErrMalformedResponse = errors.New("inference response is missing summary text")

// TransportError reports a failed exchange with the provider: the request
// never completed, or the provider answered with a non-2xx status.
type TransportError struct {
	StatusCode int // 0 when no response was received
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	msg := strings.TrimSpace(e.Message)
	if msg == "" && e.Err != nil {
		msg = e.Err.Error()
	}
	if e.StatusCode > 0 {
		return fmt.Sprintf("status %d: %s", e.StatusCode, msg)
	}
	return msg
}

func (e *TransportError) Unwrap() error { return e.Err }

// New builds the gateway selected by cfg.Provider.
func New(cfg appcfg.InferenceConfig) (Gateway, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, appcfg.ErrMissingCredential
	}
	switch cfg.Provider {
	case appcfg.ProviderHuggingFace:
		return NewHuggingFace(cfg.Endpoint, cfg.APIKey, cfg.Timeout), nil
	case appcfg.ProviderOpenAI, appcfg.ProviderAnthropic:
		return NewChat(cfg.Provider, cfg.Endpoint, cfg.APIKey, cfg.Timeout), nil
	case appcfg.ProviderOpenAICompatible:
		return NewOpenAICompatible(cfg.Endpoint, cfg.APIKey, cfg.Timeout), nil
	}
	return nil, fmt.Errorf("unsupported inference provider %q", cfg.Provider)
}
