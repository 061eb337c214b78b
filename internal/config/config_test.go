package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

var configEnvKeys = []string{
	"PORT", "APP_ENV", "ALLOWED_ORIGINS", "LOG_DIR", "HF_TOKEN",
	"INFERENCE_PROVIDER", "INFERENCE_API_KEY", "INFERENCE_ENDPOINT",
	"SUMMARY_MODEL", "TITLE_MODEL", "INFERENCE_TIMEOUT",
}

func clearConfigEnv(t *testing.T) {
	t.Helper()
	for _, key := range configEnvKeys {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoadDefaultsWithEnvCredential(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HF_TOKEN", "hf_test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != defaultPort {
		t.Fatalf("port = %d, want %d", cfg.Port, defaultPort)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected development env, got %q", cfg.Env)
	}
	inf := cfg.Inference
	if inf.Provider != ProviderHuggingFace {
		t.Fatalf("provider = %q", inf.Provider)
	}
	if inf.APIKey != "hf_test" {
		t.Fatalf("api key = %q", inf.APIKey)
	}
	if inf.Endpoint != defaultHuggingFaceEndpoint {
		t.Fatalf("endpoint = %q", inf.Endpoint)
	}
	if inf.SummaryModel != DefaultSummaryModel || inf.TitleModel != DefaultTitleModel {
		t.Fatalf("models = %q / %q", inf.SummaryModel, inf.TitleModel)
	}
	if inf.Timeout != defaultTimeout {
		t.Fatalf("timeout = %s", inf.Timeout)
	}
}

func TestLoadMissingCredential(t *testing.T) {
	clearConfigEnv(t)

	_, err := Load("")
	if !errors.Is(err, ErrMissingCredential) {
		t.Fatalf("expected ErrMissingCredential, got %v", err)
	}
}

func TestLoadYAMLAliases(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, `
port: 8081
app_env: Production
cors_allowed_origins: [" *.example.com ", ""]
inference:
  type: hugging_face
  token: hf_from_file
  base_url: https://hf.internal/
  summary_model: org/summary
  timeout_seconds: 5
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 8081 {
		t.Fatalf("port = %d", cfg.Port)
	}
	if cfg.IsDev() || cfg.Env != "production" {
		t.Fatalf("env = %q", cfg.Env)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*.example.com" {
		t.Fatalf("origins = %#v", cfg.AllowedOrigins)
	}
	inf := cfg.Inference
	if inf.Provider != ProviderHuggingFace || inf.APIKey != "hf_from_file" {
		t.Fatalf("inference = %+v", inf)
	}
	if inf.Endpoint != "https://hf.internal" {
		t.Fatalf("endpoint = %q", inf.Endpoint)
	}
	if inf.SummaryModel != "org/summary" || inf.TitleModel != DefaultTitleModel {
		t.Fatalf("models = %q / %q", inf.SummaryModel, inf.TitleModel)
	}
	if inf.Timeout != 5*time.Second {
		t.Fatalf("timeout = %s", inf.Timeout)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	path := writeConfig(t, `
port: 8081
inference:
  provider: huggingface
  api_key: from_file
  timeout: 10s
`)
	t.Setenv("PORT", "9090")
	t.Setenv("HF_TOKEN", "from_env")
	t.Setenv("INFERENCE_PROVIDER", "OpenAI")
	t.Setenv("INFERENCE_TIMEOUT", "2s")
	t.Setenv("ALLOWED_ORIGINS", "a.example.com,b.example.com")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("port = %d", cfg.Port)
	}
	inf := cfg.Inference
	if inf.APIKey != "from_env" || inf.Provider != ProviderOpenAI {
		t.Fatalf("inference = %+v", inf)
	}
	if inf.SummaryModel != defaultOpenAIModel || inf.TitleModel != defaultOpenAIModel {
		t.Fatalf("models = %q / %q", inf.SummaryModel, inf.TitleModel)
	}
	if inf.Endpoint != "" {
		t.Fatalf("openai endpoint should stay empty, got %q", inf.Endpoint)
	}
	if inf.Timeout != 2*time.Second {
		t.Fatalf("timeout = %s", inf.Timeout)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Fatalf("origins = %#v", cfg.AllowedOrigins)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	cases := map[string]string{
		"port":        "port: 70000\nhf_token: x\n",
		"provider":    "hf_token: x\ninference:\n  provider: cohere\n",
		"timeout":     "hf_token: x\ninference:\n  timeout: soon\n",
		"unknown key": "hf_token: x\nredis_url: redis://localhost\n",
		"compatible":  "hf_token: x\ninference:\n  provider: openai-compatible\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			clearConfigEnv(t)
			if _, err := Load(writeConfig(t, body)); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadTimeoutBounds(t *testing.T) {
	clearConfigEnv(t)
	_, err := Load(writeConfig(t, "hf_token: x\ninference:\n  timeout: -1s\n"))
	if err == nil || !strings.Contains(err.Error(), ">= 0") {
		t.Fatalf("expected negative timeout error, got %v", err)
	}

	cfg, err := Load(writeConfig(t, "hf_token: x\ninference:\n  timeout: 0s\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Inference.Timeout != defaultTimeout {
		t.Fatalf("timeout = %s, want default %s", cfg.Inference.Timeout, defaultTimeout)
	}
}

func TestLoadExplicitMissingFile(t *testing.T) {
	clearConfigEnv(t)
	t.Setenv("HF_TOKEN", "x")

	if _, err := Load(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for explicit missing config file")
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearConfigEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("HF_TOKEN=from_dotenv\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if err := LoadDotEnv(filepath.Join(dir, ".env.missing"), path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("HF_TOKEN"); got != "from_dotenv" {
		t.Fatalf("HF_TOKEN = %q", got)
	}
}

func TestNormalizeProviderType(t *testing.T) {
	cases := map[string]string{
		"":                  ProviderHuggingFace,
		"HF":                ProviderHuggingFace,
		"Hugging_Face":      ProviderHuggingFace,
		"OpenAI Compatible": ProviderOpenAICompatible,
		"openaicompatible":  ProviderOpenAICompatible,
		"Anthropic":         ProviderAnthropic,
	}
	for in, want := range cases {
		if got := normalizeProviderType(in); got != want {
			t.Errorf("normalizeProviderType(%q) = %q, want %q", in, got, want)
		}
	}
}
