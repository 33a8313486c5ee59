package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())
	for _, k := range []string{"GITHUB_USER", "GITHUB_API_URL", "LLM_BASE_URL", "LLM_MODEL", "LOG_LEVEL", "SURREAL_URL"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, DefaultGitHubUser, cfg.GitHubUser)
	assert.Equal(t, DefaultGitHubAPIURL, cfg.GitHubAPIURL)
	assert.Equal(t, "https://api.openai.com/v1", cfg.LLMBaseURL)
	assert.Equal(t, "gpt-4o-mini", cfg.LLMModel)
	assert.Equal(t, "warn", cfg.LogLevel)
}

func TestLoadTrimsURLs(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("GITHUB_USER", "octocat")
	t.Setenv("GITHUB_API_URL", "http://localhost:9000/")
	t.Setenv("SURREAL_URL", "ws://localhost:8000/rpc")

	cfg := Load()
	assert.Equal(t, "octocat", cfg.GitHubUser)
	assert.Equal(t, "http://localhost:9000", cfg.GitHubAPIURL)
	assert.Equal(t, "ws://localhost:8000", cfg.SurrealURL)
}
