package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naserraoofi/portfolio/internal/filter"
	"github.com/naserraoofi/portfolio/internal/taxonomy"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestParseState(t *testing.T) {
	st, err := parseState(" nlp ", []string{"aws", "AI"}, []string{"Docker", " "})
	require.NoError(t, err)
	assert.Equal(t, filter.State{
		Search:        "nlp",
		Categories:    []taxonomy.Category{taxonomy.AWS, taxonomy.AI},
		Subcategories: []string{"Docker"},
	}, st)

	st, err = parseState("", nil, nil)
	require.NoError(t, err)
	assert.False(t, st.Active())
}

func TestParseStateRejectsUnknownCategory(t *testing.T) {
	_, err := parseState("", []string{"Cloud"}, nil)
	assert.ErrorIs(t, err, taxonomy.ErrUnknownCategory)
}

func TestClassifyCommand(t *testing.T) {
	out, err := execute(t, "classify", "terraform-ai-ops", "golang")
	require.NoError(t, err)
	assert.Contains(t, out, "categories: DevOps, AI  style: devops")
	assert.Contains(t, out, "categories: -  style: default")
}

func TestClassifyRequiresTopic(t *testing.T) {
	_, err := execute(t, "classify")
	assert.Error(t, err)
}

func TestTaxonomyCommand(t *testing.T) {
	out, err := execute(t, "taxonomy")
	require.NoError(t, err)
	assert.Contains(t, out, "AWS\n")
	assert.Contains(t, out, "keywords:      devops, docker, kubernetes, jenkins, terraform, ansible, github-actions")
	assert.Contains(t, out, "subcategories: Image Processing, Computer Vision, Machine Learning, Deep Learning, NLP")
}

func TestSuggestCommandDefaults(t *testing.T) {
	out, err := execute(t, "suggest", "--limit", "3")
	require.NoError(t, err)
	assert.Equal(t, "Search by:\n  AWS\n  DevOps\n  AI\n", out)
}

func TestProjectsRejectsUnknownCategory(t *testing.T) {
	_, err := execute(t, "projects", "--category", "Cloud")
	assert.ErrorIs(t, err, taxonomy.ErrUnknownCategory)
}
