package config

import "time"

const (
	// DefaultConfigPath is used when --config is not provided.
	DefaultConfigPath = "config.yml"

	defaultPort    = 5000
	defaultEnv     = "development"
	defaultLogDir  = "logs"
	defaultTimeout = 30 * time.Second
)

// Inference provider types accepted in `inference.provider`.
const (
	ProviderHuggingFace      = "huggingface"
	ProviderOpenAI           = "openai"
	ProviderAnthropic        = "anthropic"
	ProviderOpenAICompatible = "openai-compatible"
)

// Default model identifiers. They are not request-configurable.
const (
	DefaultSummaryModel = "Falconsai/text_summarization"
	DefaultTitleModel   = "facebook/bart-large-cnn"

	defaultOpenAIModel    = "gpt-4o-mini"
	defaultAnthropicModel = "claude-haiku-4-5-20251001"
)

const defaultHuggingFaceEndpoint = "https://router.huggingface.co/hf-inference"
