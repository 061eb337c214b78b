package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// ErrMissingCredential is returned by Load when no inference API credential
// was configured. The server must not start without one.
var ErrMissingCredential = errors.New("inference api credential is not set (HF_TOKEN or inference.api_key)")

// AppConfig holds runtime startup configuration loaded from YAML and the
// environment.
type AppConfig struct {
	Port           int             `yaml:"port"`
	Env            string          `yaml:"env"` // "development" | "production"
	AllowedOrigins []string        `yaml:"allowed_origins"`
	LogDir         string          `yaml:"log_dir"`
	Inference      InferenceConfig `yaml:"inference"`
}

// InferenceConfig selects and authenticates the hosted inference provider.
type InferenceConfig struct {
	Provider     string        `yaml:"provider"`
	APIKey       string        `yaml:"api_key"`
	Endpoint     string        `yaml:"endpoint"`
	SummaryModel string        `yaml:"summary_model"`
	TitleModel   string        `yaml:"title_model"`
	Timeout      time.Duration `yaml:"timeout"`
}

type rawAppConfig struct {
	Port               int                `yaml:"port"`
	Env                string             `yaml:"env"`
	AppEnv             string             `yaml:"app_env"`
	AllowedOrigins     []string           `yaml:"allowed_origins"`
	CORSAllowedOrigins []string           `yaml:"cors_allowed_origins"`
	LogDir             string             `yaml:"log_dir"`
	LogsDir            string             `yaml:"logs_dir"`
	Inference          rawInferenceConfig `yaml:"inference"`
	HFToken            string             `yaml:"hf_token"`
}

type rawInferenceConfig struct {
	Provider       string `yaml:"provider"`
	Type           string `yaml:"type"`
	APIKey         string `yaml:"api_key"`
	Token          string `yaml:"token"`
	Endpoint       string `yaml:"endpoint"`
	BaseURL        string `yaml:"base_url"`
	SummaryModel   string `yaml:"summary_model"`
	TitleModel     string `yaml:"title_model"`
	Timeout        string `yaml:"timeout"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// envOverrides are applied after the YAML file; unset variables keep the
// file value.
type envOverrides struct {
	Port           int           `env:"PORT"`
	Env            string        `env:"APP_ENV"`
	AllowedOrigins []string      `env:"ALLOWED_ORIGINS" envSeparator:","`
	LogDir         string        `env:"LOG_DIR"`
	HFToken        string        `env:"HF_TOKEN"`
	Provider       string        `env:"INFERENCE_PROVIDER"`
	APIKey         string        `env:"INFERENCE_API_KEY"`
	Endpoint       string        `env:"INFERENCE_ENDPOINT"`
	SummaryModel   string        `env:"SUMMARY_MODEL"`
	TitleModel     string        `env:"TITLE_MODEL"`
	Timeout        time.Duration `env:"INFERENCE_TIMEOUT"`
}

// LoadDotEnv loads variables from the given dotenv files into the process
// environment. Missing files are skipped; variables that are already set
// are left untouched.
func LoadDotEnv(paths ...string) error {
	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("stat %q: %w", path, err)
		}
		if err := godotenv.Load(path); err != nil {
			return fmt.Errorf("load %q: %w", path, err)
		}
	}
	return nil
}

// Load reads the YAML config file, applies environment overrides and
// validates the result. A missing file is only an error when a non-default
// path was requested explicitly.
func Load(configPath string) (*AppConfig, error) {
	path := strings.TrimSpace(configPath)
	if path == "" {
		path = DefaultConfigPath
	}

	cfg := defaultAppConfig()

	content, err := os.ReadFile(path)
	switch {
	case err == nil:
		decoder := yaml.NewDecoder(bytes.NewReader(content))
		decoder.KnownFields(true)
		raw := rawAppConfig{}
		if err := decoder.Decode(&raw); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
		if err := applyRawAppConfig(&cfg, raw); err != nil {
			return nil, fmt.Errorf("parse config file %q: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist) && path == DefaultConfigPath:
	default:
		return nil, fmt.Errorf("read config file %q: %w", path, err)
	}

	var overrides envOverrides
	if err := env.Parse(&overrides); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}
	applyEnvOverrides(&cfg, overrides)

	cfg.Env = normalizeEnv(cfg.Env)
	cfg.AllowedOrigins = normalizeOrigins(cfg.AllowedOrigins)
	cfg.Inference = normalizeInferenceConfig(cfg.Inference)

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func defaultAppConfig() AppConfig {
	return AppConfig{
		Port: defaultPort,
		Env:  defaultEnv,
		Inference: InferenceConfig{
			Provider: ProviderHuggingFace,
			Timeout:  defaultTimeout,
		},
	}
}

func applyRawAppConfig(cfg *AppConfig, raw rawAppConfig) error {
	if raw.Port != 0 {
		cfg.Port = raw.Port
	}
	if v := strings.TrimSpace(raw.Env); v != "" {
		cfg.Env = v
	}
	if v := strings.TrimSpace(raw.AppEnv); v != "" {
		cfg.Env = v
	}

	switch {
	case raw.AllowedOrigins != nil:
		cfg.AllowedOrigins = raw.AllowedOrigins
	case raw.CORSAllowedOrigins != nil:
		cfg.AllowedOrigins = raw.CORSAllowedOrigins
	}

	if v := strings.TrimSpace(raw.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(raw.LogsDir); v != "" {
		cfg.LogDir = v
	}

	inf := cfg.Inference
	if v := strings.TrimSpace(raw.Inference.Provider); v != "" {
		inf.Provider = v
	}
	if v := strings.TrimSpace(raw.Inference.Type); v != "" {
		inf.Provider = v
	}
	if v := strings.TrimSpace(raw.HFToken); v != "" {
		inf.APIKey = v
	}
	if v := strings.TrimSpace(raw.Inference.Token); v != "" {
		inf.APIKey = v
	}
	if v := strings.TrimSpace(raw.Inference.APIKey); v != "" {
		inf.APIKey = v
	}
	if v := strings.TrimSpace(raw.Inference.Endpoint); v != "" {
		inf.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Inference.BaseURL); v != "" {
		inf.Endpoint = v
	}
	if v := strings.TrimSpace(raw.Inference.SummaryModel); v != "" {
		inf.SummaryModel = v
	}
	if v := strings.TrimSpace(raw.Inference.TitleModel); v != "" {
		inf.TitleModel = v
	}
	if raw.Inference.TimeoutSeconds != 0 {
		inf.Timeout = time.Duration(raw.Inference.TimeoutSeconds) * time.Second
	}
	if v := strings.TrimSpace(raw.Inference.Timeout); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid inference.timeout %q: %w", v, err)
		}
		inf.Timeout = d
	}
	cfg.Inference = inf
	return nil
}

func applyEnvOverrides(cfg *AppConfig, o envOverrides) {
	if o.Port != 0 {
		cfg.Port = o.Port
	}
	if v := strings.TrimSpace(o.Env); v != "" {
		cfg.Env = v
	}
	if o.AllowedOrigins != nil {
		cfg.AllowedOrigins = o.AllowedOrigins
	}
	if v := strings.TrimSpace(o.LogDir); v != "" {
		cfg.LogDir = v
	}
	if v := strings.TrimSpace(o.Provider); v != "" {
		cfg.Inference.Provider = v
	}
	if v := strings.TrimSpace(o.HFToken); v != "" {
		cfg.Inference.APIKey = v
	}
	if v := strings.TrimSpace(o.APIKey); v != "" {
		cfg.Inference.APIKey = v
	}
	if v := strings.TrimSpace(o.Endpoint); v != "" {
		cfg.Inference.Endpoint = v
	}
	if v := strings.TrimSpace(o.SummaryModel); v != "" {
		cfg.Inference.SummaryModel = v
	}
	if v := strings.TrimSpace(o.TitleModel); v != "" {
		cfg.Inference.TitleModel = v
	}
	if o.Timeout != 0 {
		cfg.Inference.Timeout = o.Timeout
	}
}

func (c *AppConfig) validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d, expected 1-65535", c.Port)
	}
	if !isKnownProvider(c.Inference.Provider) {
		return fmt.Errorf("unknown inference provider %q", c.Inference.Provider)
	}
	if c.Inference.Timeout < 0 {
		return fmt.Errorf("invalid inference timeout %s, expected >= 0 (0 means default)", c.Inference.Timeout)
	}
	if c.Inference.Provider == ProviderOpenAICompatible && c.Inference.Endpoint == "" {
		return errors.New("inference.endpoint is required for the openai-compatible provider")
	}
	if c.Inference.APIKey == "" {
		return ErrMissingCredential
	}
	return nil
}

// IsDev reports whether the service runs in development mode.
func (c *AppConfig) IsDev() bool {
	return strings.EqualFold(c.Env, defaultEnv)
}

// Addr returns the listen address.
func (c *AppConfig) Addr() string { return fmt.Sprintf(":%d", c.Port) }

// ResolvedLogDir returns the absolute directory for daily log files.
func (c *AppConfig) ResolvedLogDir() string {
	if c == nil {
		return resolveRuntimePath("", defaultLogDir)
	}
	return resolveRuntimePath(c.LogDir, defaultLogDir)
}
