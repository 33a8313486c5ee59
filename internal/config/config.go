package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DefaultGitHubUser   = "naserraoofi"
	DefaultGitHubAPIURL = "https://api.github.com"
)

type Config struct {
	GitHubUser   string
	GitHubToken  string
	GitHubAPIURL string

	SurrealURL  string
	SurrealNS   string
	SurrealDB   string
	SurrealUser string
	SurrealPass string

	LLMBaseURL string
	LLMAPIKey  string
	LLMModel   string

	LogLevel string
}

func Load() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		GitHubUser:   os.Getenv("GITHUB_USER"),
		GitHubToken:  os.Getenv("GITHUB_TOKEN"),
		GitHubAPIURL: os.Getenv("GITHUB_API_URL"),

		SurrealURL:  os.Getenv("SURREAL_URL"),
		SurrealNS:   os.Getenv("SURREAL_NS"),
		SurrealDB:   os.Getenv("SURREAL_DB"),
		SurrealUser: os.Getenv("SURREAL_USER"),
		SurrealPass: os.Getenv("SURREAL_PASS"),

		LLMBaseURL: os.Getenv("LLM_BASE_URL"),
		LLMAPIKey:  os.Getenv("LLM_API_KEY"),
		LLMModel:   os.Getenv("LLM_MODEL"),

		LogLevel: os.Getenv("LOG_LEVEL"),
	}

	if cfg.GitHubUser == "" {
		cfg.GitHubUser = DefaultGitHubUser
	}
	if cfg.GitHubAPIURL == "" {
		cfg.GitHubAPIURL = DefaultGitHubAPIURL
	}
	cfg.GitHubAPIURL = strings.TrimSuffix(cfg.GitHubAPIURL, "/")

	// The SDK appends /rpc automatically
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/rpc")
	cfg.SurrealURL = strings.TrimSuffix(cfg.SurrealURL, "/")

	if cfg.LLMBaseURL == "" {
		cfg.LLMBaseURL = "https://api.openai.com/v1"
	}
	if cfg.LLMModel == "" {
		cfg.LLMModel = "gpt-4o-mini"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "warn"
	}

	return cfg
}
