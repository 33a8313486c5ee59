package pipeline

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/naserraoofi/portfolio/internal/models"
)

type fakeFetcher struct {
	repos []models.Repo
	err   error
	user  string
}

func (f *fakeFetcher) ListUserRepos(_ context.Context, user string) ([]models.Repo, error) {
	f.user = user
	return f.repos, f.err
}

type fakeStore struct {
	mu        sync.Mutex
	upserted  []models.Repo
	summaries map[string]string
	schema    bool
}

func (s *fakeStore) InitSchema(context.Context) error {
	s.schema = true
	return nil
}

func (s *fakeStore) UpsertRepo(_ context.Context, r models.Repo) error {
	s.upserted = append(s.upserted, r)
	return nil
}

func (s *fakeStore) GetAllRepos(context.Context) ([]models.Repo, error) {
	return s.upserted, nil
}

func (s *fakeStore) GetUndescribedRepos(context.Context) ([]models.Repo, error) {
	var out []models.Repo
	for _, r := range s.upserted {
		if r.Description == nil {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeStore) UpdateSummary(_ context.Context, fullName, summary string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.summaries == nil {
		s.summaries = map[string]string{}
	}
	s.summaries[fullName] = summary
	return nil
}

type fakeDescriber struct {
	fail map[string]bool
}

func (d fakeDescriber) Describe(_ context.Context, r models.Repo) (*models.SummaryResult, error) {
	if d.fail[r.FullName] {
		return nil, errors.New("model unavailable")
	}
	return &models.SummaryResult{Summary: "about " + r.Name}, nil
}

func strPtr(s string) *string { return &s }

func testRepos() []models.Repo {
	return []models.Repo{
		{ID: 1, Name: "infra", FullName: "me/infra", Topics: []string{"docker", "aws"}},
		{ID: 2, Name: "nlp-lab", FullName: "me/nlp-lab", Topics: []string{"nlp"}, Description: strPtr("Text tools")},
		{ID: 3, Name: "dotfiles", FullName: "me/dotfiles"},
	}
}

func TestSyncClassifiesAndUpserts(t *testing.T) {
	store := &fakeStore{}
	fetcher := &fakeFetcher{repos: testRepos()}
	var out bytes.Buffer

	s := &Syncer{Fetcher: fetcher, Store: store, User: "me", Out: &out}
	require.NoError(t, s.Sync(context.Background(), Options{}))

	assert.True(t, store.schema)
	assert.Equal(t, "me", fetcher.user)
	require.Len(t, store.upserted, 3)
	assert.Equal(t, []string{"AWS", "DevOps"}, store.upserted[0].Categories)
	assert.Equal(t, []string{"AI"}, store.upserted[1].Categories)
	assert.Empty(t, store.upserted[2].Categories)
	assert.Contains(t, out.String(), "Upserted 3/3")
	assert.Nil(t, store.summaries)
}

func TestSyncEnrichesUndescribed(t *testing.T) {
	store := &fakeStore{}
	s := &Syncer{
		Fetcher:   &fakeFetcher{repos: testRepos()},
		Store:     store,
		Describer: fakeDescriber{},
		Out:       &bytes.Buffer{},
	}
	require.NoError(t, s.Sync(context.Background(), Options{Enrich: true}))

	assert.Equal(t, map[string]string{
		"me/infra":    "about infra",
		"me/dotfiles": "about dotfiles",
	}, store.summaries)
}

func TestSyncForceEnrichesAll(t *testing.T) {
	store := &fakeStore{}
	s := &Syncer{
		Fetcher:   &fakeFetcher{repos: testRepos()},
		Store:     store,
		Describer: fakeDescriber{},
		Out:       &bytes.Buffer{},
	}
	require.NoError(t, s.Sync(context.Background(), Options{Enrich: true, Force: true}))
	assert.Len(t, store.summaries, 3)
}

func TestSyncSkipsFailedDescriptions(t *testing.T) {
	store := &fakeStore{}
	var out bytes.Buffer
	s := &Syncer{
		Fetcher:   &fakeFetcher{repos: testRepos()},
		Store:     store,
		Describer: fakeDescriber{fail: map[string]bool{"me/infra": true}},
		Out:       &out,
	}
	require.NoError(t, s.Sync(context.Background(), Options{Enrich: true}))

	assert.Equal(t, map[string]string{"me/dotfiles": "about dotfiles"}, store.summaries)
	assert.Contains(t, out.String(), "Enrichment complete (1 repos)")
}

func TestSyncFetchError(t *testing.T) {
	store := &fakeStore{}
	s := &Syncer{
		Fetcher: &fakeFetcher{err: errors.New("boom")},
		Store:   store,
		Out:     &bytes.Buffer{},
	}
	err := s.Sync(context.Background(), Options{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fetching repos")
	assert.Empty(t, store.upserted)
}
