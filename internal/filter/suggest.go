package filter

import (
	"strings"

	"github.com/sahilm/fuzzy"
	"github.com/samber/lo"

	"github.com/naserraoofi/portfolio/internal/models"
)

// DefaultSuggestions is offered before anything has been typed.
var DefaultSuggestions = []string{"AWS", "DevOps", "AI", "Computer Vision", "Cloud"}

// Suggest ranks the distinct topics of repos against a partially typed search
// term. Suggestions only help the user pick a term; they never change what
// Visible returns for it. limit <= 0 means no limit.
func Suggest(repos []models.Repo, term string, limit int) []string {
	term = strings.TrimSpace(term)
	if term == "" {
		return clip(append([]string(nil), DefaultSuggestions...), limit)
	}

	topics := lo.Uniq(lo.FlatMap(repos, func(r models.Repo, _ int) []string { return r.Topics }))
	lowered := lo.Map(topics, func(t string, _ int) string { return strings.ToLower(t) })

	matches := fuzzy.Find(strings.ToLower(term), lowered)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, topics[m.Index])
	}
	return clip(out, limit)
}

func clip(s []string, limit int) []string {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
