package config

import (
	"os"
	"path/filepath"
	"strings"
)

func normalizeOrigins(origins []string) []string {
	out := make([]string, 0, len(origins))
	for _, origin := range origins {
		trimmed := strings.TrimSpace(origin)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeEnv(env string) string {
	trimmed := strings.ToLower(strings.TrimSpace(env))
	if trimmed == "" {
		return defaultEnv
	}
	return trimmed
}

// normalizeProviderType folds spelling variants such as "HuggingFace",
// "hugging_face" or "OpenAI Compatible" into the canonical provider names.
func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "-")
	switch t {
	case "", "hf", "hf-inference", "hugging-face":
		return ProviderHuggingFace
	case "openaicompatible":
		return ProviderOpenAICompatible
	}
	return t
}

func isKnownProvider(t string) bool {
	switch t {
	case ProviderHuggingFace, ProviderOpenAI, ProviderAnthropic, ProviderOpenAICompatible:
		return true
	}
	return false
}

func normalizeInferenceConfig(cfg InferenceConfig) InferenceConfig {
	cfg.Provider = normalizeProviderType(cfg.Provider)
	cfg.APIKey = strings.TrimSpace(cfg.APIKey)
	cfg.Endpoint = strings.TrimRight(strings.TrimSpace(cfg.Endpoint), "/")
	cfg.SummaryModel = strings.TrimSpace(cfg.SummaryModel)
	cfg.TitleModel = strings.TrimSpace(cfg.TitleModel)

	if cfg.Endpoint == "" && cfg.Provider == ProviderHuggingFace {
		cfg.Endpoint = defaultHuggingFaceEndpoint
	}

	fallbackModel := func(hf string) string {
		switch cfg.Provider {
		case ProviderOpenAI, ProviderOpenAICompatible:
			return defaultOpenAIModel
		case ProviderAnthropic:
			return defaultAnthropicModel
		}
		return hf
	}
	if cfg.SummaryModel == "" {
		cfg.SummaryModel = fallbackModel(DefaultSummaryModel)
	}
	if cfg.TitleModel == "" {
		cfg.TitleModel = fallbackModel(DefaultTitleModel)
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = defaultTimeout
	}
	return cfg
}

// resolveRuntimePath resolves relative runtime directories against the
// directory holding the executable, falling back to the working directory.
func resolveRuntimePath(raw, fallback string) string {
	target := strings.TrimSpace(raw)
	if target == "" {
		target = fallback
	}
	if filepath.IsAbs(target) {
		return filepath.Clean(target)
	}

	base := "."
	if exe, err := os.Executable(); err == nil && strings.TrimSpace(exe) != "" {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		base = filepath.Dir(exe)
	} else if wd, err := os.Getwd(); err == nil {
		base = wd
	}
	return filepath.Clean(filepath.Join(base, target))
}
