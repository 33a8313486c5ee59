package surrealdb

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naserraoofi/portfolio/internal/config"
	"github.com/naserraoofi/portfolio/internal/models"
)

func TestRepoDataOmitsNilOptionals(t *testing.T) {
	at := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	data := repoData(models.Repo{ID: 7, Name: "r", FullName: "o/r", URL: "u", Stars: 3}, at)

	assert.Equal(t, int64(7), data["github_id"])
	assert.Equal(t, at, data["fetched_at"])
	assert.Equal(t, []string{}, data["topics"])
	assert.Equal(t, []string{}, data["categories"])
	for _, k := range []string{"description", "homepage_url", "language"} {
		assert.NotContains(t, data, k)
	}
}

func TestRepoDataDereferencesOptionals(t *testing.T) {
	desc, lang := "infra", "HCL"
	data := repoData(models.Repo{
		Description: &desc,
		Language:    &lang,
		Topics:      []string{"aws"},
		Categories:  []string{"AWS"},
	}, time.Now())

	assert.Equal(t, "infra", data["description"])
	assert.Equal(t, "HCL", data["language"])
	assert.Equal(t, []string{"aws"}, data["topics"])
	assert.Equal(t, []string{"AWS"}, data["categories"])
}

func TestCountCategories(t *testing.T) {
	got := countCategories([]models.Repo{
		{Categories: []string{"DevOps", "AI"}},
		{Categories: []string{"AI"}},
		{},
	})
	assert.Equal(t, []CategoryCount{{"DevOps", 1}, {"AI", 2}}, got)
	assert.Empty(t, countCategories(nil))
}

func TestToInt(t *testing.T) {
	assert.Equal(t, 3, toInt(float64(3)))
	assert.Equal(t, 4, toInt(int64(4)))
	assert.Equal(t, 5, toInt(uint64(5)))
	assert.Equal(t, 0, toInt("6"))
}

func TestNewClientRequiresURL(t *testing.T) {
	_, err := NewClient(context.Background(), &config.Config{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SURREAL_URL")
}
