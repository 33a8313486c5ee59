package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/naserraoofi/portfolio/internal/models"
)

type Client struct {
	client *openai.Client
	model  string
}

func NewClient(baseURL, apiKey, model string) *Client {
	cfg := openai.DefaultConfig(apiKey)
	cfg.BaseURL = strings.TrimSuffix(baseURL, "/")
	return &Client{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

const systemPrompt = `You write short descriptions for project cards on a developer portfolio. Given a GitHub repository's name, primary language and topic tags, produce a JSON object with:

1. "summary": One sentence (at most 25 words) describing what the project most likely does. Do not invent features the name and topics do not suggest.

Return ONLY valid JSON. No markdown, no code fences.`

// Describe drafts a card description for a repo that has none.
func (c *Client) Describe(ctx context.Context, repo models.Repo) (*models.SummaryResult, error) {
	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userMessage(repo)},
		},
		// No ResponseFormat: not all models support json_object mode.
		Temperature: 0.3,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM call for %s: %w", repo.FullName, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("no choices returned for %s", repo.FullName)
	}

	return parseSummary(repo.FullName, resp.Choices[0].Message.Content)
}

func userMessage(repo models.Repo) string {
	parts := []string{fmt.Sprintf("Repository: %s", repo.FullName)}
	if repo.Language != nil {
		parts = append(parts, fmt.Sprintf("Language: %s", *repo.Language))
	}
	if len(repo.Topics) > 0 {
		parts = append(parts, fmt.Sprintf("Topics: %s", strings.Join(repo.Topics, ", ")))
	}
	return strings.Join(parts, "\n")
}

func parseSummary(fullName, content string) (*models.SummaryResult, error) {
	content = stripCodeFences(content)

	var result models.SummaryResult
	if err := json.Unmarshal([]byte(content), &result); err != nil {
		return nil, fmt.Errorf("parsing LLM response for %s: %w\nraw: %s", fullName, err, content)
	}
	result.Summary = strings.TrimSpace(result.Summary)
	if result.Summary == "" {
		return nil, fmt.Errorf("empty summary for %s", fullName)
	}
	return &result, nil
}

// stripCodeFences removes markdown code fences that some models wrap around JSON.
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		if i := strings.Index(s, "\n"); i != -1 {
			s = s[i+1:]
		}
		if i := strings.LastIndex(s, "```"); i != -1 {
			s = s[:i]
		}
		s = strings.TrimSpace(s)
	}
	return s
}
