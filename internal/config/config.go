package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

type Config struct {
	APIPort  string `yaml:"api_port"`
	LogLevel string `yaml:"log_level"`

	// KVMode selects the key-value backend: "nats" or "memory".
	KVMode  string `yaml:"kv_mode"`
	NATSURL string `yaml:"nats_url"`

	HuggingFaceURL   string `yaml:"huggingface_url"`
	HuggingFaceModel string `yaml:"huggingface_model"`
	HuggingFaceToken string `yaml:"huggingface_token"`

	JWTSecret string `yaml:"jwt_secret"`

	RateLimitPerHour  int `yaml:"rate_limit_per_hour"`
	CacheTTLSeconds   int `yaml:"cache_ttl_seconds"`
	RateTTLSeconds    int `yaml:"rate_ttl_seconds"`
	SummarizerRPM     int `yaml:"summarizer_rpm"`
	SummarizerTimeout int `yaml:"summarizer_timeout_seconds"`
}

func defaults() Config {
	return Config{
		APIPort:  "8080",
		LogLevel: "info",

		KVMode:  "nats",
		NATSURL: "nats://localhost:4222",

		HuggingFaceURL:   "https://api-inference.huggingface.co",
		HuggingFaceModel: "facebook/bart-large-cnn",
		HuggingFaceToken: "",

		JWTSecret: "",

		RateLimitPerHour:  10,
		CacheTTLSeconds:   86400,
		RateTTLSeconds:    3600,
		SummarizerRPM:     30,
		SummarizerTimeout: 30,
	}
}

// Load layers defaults, an optional YAML file named by RISKLENS_CONFIG,
// then environment variables. Environment wins.
func Load() (Config, error) {
	cfg := defaults()

	if path := os.Getenv("RISKLENS_CONFIG"); path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config file: %w", err)
		}
	}

	cfg.APIPort = mustEnv("API_PORT", cfg.APIPort)
	cfg.LogLevel = mustEnv("LOG_LEVEL", cfg.LogLevel)
	cfg.KVMode = mustEnv("KV_MODE", cfg.KVMode)
	cfg.NATSURL = mustEnv("NATS_URL", cfg.NATSURL)
	cfg.HuggingFaceURL = mustEnv("HUGGINGFACE_URL", cfg.HuggingFaceURL)
	cfg.HuggingFaceModel = mustEnv("HUGGINGFACE_MODEL", cfg.HuggingFaceModel)
	cfg.HuggingFaceToken = mustEnv("HUGGINGFACE_API_KEY", cfg.HuggingFaceToken)
	cfg.JWTSecret = mustEnv("JWT_SECRET", cfg.JWTSecret)
	cfg.RateLimitPerHour = mustEnvInt("RATE_LIMIT_PER_HOUR", cfg.RateLimitPerHour)
	cfg.CacheTTLSeconds = mustEnvInt("CACHE_TTL_SECONDS", cfg.CacheTTLSeconds)
	cfg.RateTTLSeconds = mustEnvInt("RATE_TTL_SECONDS", cfg.RateTTLSeconds)
	cfg.SummarizerRPM = mustEnvInt("SUMMARIZER_RPM", cfg.SummarizerRPM)
	cfg.SummarizerTimeout = mustEnvInt("SUMMARIZER_TIMEOUT_SECONDS", cfg.SummarizerTimeout)

	return cfg, nil
}

func mustEnv(key, fallback string) string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v
}

func mustEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
