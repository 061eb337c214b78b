package inference

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	neturl "net/url"
	"strings"
	"time"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
	appcfg "github.com/shelfshare/notesum/internal/config"
	jetai "go.jetify.com/ai"
	jetapi "go.jetify.com/ai/api"
	jetanthropic "go.jetify.com/ai/provider/anthropic"
	jetopenai "go.jetify.com/ai/provider/openai"
)

const (
	maxOutputTokens = 300

	condenseSystemPrompt = "You condense text. Reply with the condensed result only, as plain text, " +
		"in the language of the input, without any preamble or explanation."
)

// Chat summarizes through a chat model (OpenAI or Anthropic). Provider SDK
// retries are disabled: a failed call fails the request.
type Chat struct {
	provider  string
	timeout   time.Duration
	openai    openaiclient.Client
	anthropic anthropicclient.Client
}

// NewChat returns a chat-model gateway for provider "openai" or "anthropic".
func NewChat(provider, endpoint, apiKey string, timeout time.Duration) *Chat {
	g := &Chat{provider: provider, timeout: timeout}
	apiKey = strings.TrimSpace(apiKey)
	endpoint = strings.TrimSpace(endpoint)

	if provider == appcfg.ProviderAnthropic {
		opts := []anthropicoption.RequestOption{
			anthropicoption.WithAPIKey(apiKey),
			anthropicoption.WithMaxRetries(0),
		}
		if endpoint != "" {
			opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
		}
		g.anthropic = anthropicclient.NewClient(opts...)
		return g
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(apiKey),
		openaioption.WithMaxRetries(0),
	}
	if normalized := normalizeOpenAIBaseURL(endpoint); normalized != "" {
		opts = append(opts, openaioption.WithBaseURL(normalized))
	}
	g.openai = openaiclient.NewClient(opts...)
	return g
}

func (g *Chat) languageModel(modelID string) jetapi.LanguageModel {
	if g.provider == appcfg.ProviderAnthropic {
		return jetanthropic.NewLanguageModel(modelID, jetanthropic.WithClient(g.anthropic))
	}
	return jetopenai.NewLanguageModel(modelID, jetopenai.WithClient(g.openai))
}

func (g *Chat) Summarize(ctx context.Context, text, model string) (string, error) {
	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	resp, err := jetai.GenerateText(
		ctx,
		buildPromptMessages(condenseSystemPrompt, text),
		jetai.WithModel(g.languageModel(model)),
		jetai.WithMaxOutputTokens(maxOutputTokens),
	)
	if err != nil {
		return "", sdkError(err)
	}

	var full strings.Builder
	for _, block := range resp.Content {
		textBlock, ok := block.(*jetapi.TextBlock)
		if !ok || textBlock.Text == "" {
			continue
		}
		full.WriteString(textBlock.Text)
	}
	return chatReplyText(full.String())
}

// sdkError maps an SDK failure to a *TransportError, keeping the status
// and message when the provider answered.
func sdkError(err error) *TransportError {
	var oaiErr *openaiclient.Error
	if errors.As(err, &oaiErr) && oaiErr.StatusCode > 0 {
		msg := strings.TrimSpace(oaiErr.Message)
		if msg == "" {
			msg = http.StatusText(oaiErr.StatusCode)
		}
		return &TransportError{StatusCode: oaiErr.StatusCode, Message: msg, Err: err}
	}

	var antErr *anthropicclient.Error
	if errors.As(err, &antErr) && antErr.StatusCode > 0 {
		msg := anthropicErrorMessage(antErr.RawJSON())
		if msg == "" {
			msg = http.StatusText(antErr.StatusCode)
		}
		return &TransportError{StatusCode: antErr.StatusCode, Message: msg, Err: err}
	}

	return &TransportError{Err: err}
}

func anthropicErrorMessage(raw string) string {
	var body struct {
		Error struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if raw == "" || json.Unmarshal([]byte(raw), &body) != nil {
		return ""
	}
	return strings.TrimSpace(body.Error.Message)
}

func buildPromptMessages(systemPrompt, prompt string) []jetapi.Message {
	messages := make([]jetapi.Message, 0, 2)
	if strings.TrimSpace(systemPrompt) != "" {
		messages = append(messages, &jetapi.SystemMessage{Content: systemPrompt})
	}
	messages = append(messages, &jetapi.UserMessage{Content: jetapi.ContentFromText(prompt)})
	return messages
}

// chatReplyText flattens a chat reply to plain text. A reply without any
// text is malformed.
func chatReplyText(raw string) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", ErrMalformedResponse
	}
	text := plainText(raw)
	if text == "" {
		return "", ErrMalformedResponse
	}
	return text, nil
}

func normalizeOpenAIBaseURL(raw string) string {
	base := strings.TrimSpace(raw)
	if base == "" {
		return ""
	}
	parsed, err := neturl.Parse(base)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return strings.TrimRight(base, "/")
	}

	path := strings.TrimRight(parsed.Path, "/")
	if !strings.HasSuffix(path, "/v1") {
		path += "/v1"
	}
	parsed.Path = path
	return strings.TrimRight(parsed.String(), "/")
}
