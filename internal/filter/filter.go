// Package filter computes which repositories are shown for a given search
// and category selection. Everything here is a pure function of its inputs.
package filter

import (
	"slices"
	"strings"

	"github.com/samber/lo"

	"github.com/naserraoofi/portfolio/internal/models"
	"github.com/naserraoofi/portfolio/internal/taxonomy"
)

const (
	// FeaturedLimit caps the highlights list.
	FeaturedLimit = 3
	// FeaturedTopic marks a repo as featured regardless of stars.
	FeaturedTopic = "featured"
	// featuredMinStars is exclusive: a repo needs more stars than this.
	featuredMinStars = 5
)

// State is the current search box text plus sidebar selection. The zero
// value applies no filtering.
type State struct {
	Search        string
	Categories    []taxonomy.Category
	Subcategories []string
}

// Active reports whether any stage of Visible would narrow the list.
func (s State) Active() bool {
	return s.Search != "" || len(s.Categories) > 0 || len(s.Subcategories) > 0
}

// Visible returns the repos that pass every active stage, in input order.
//
// Stages are ANDed: search, then categories, then subcategories. Within a
// stage the selected values are ORed. A repo without topics fails every
// stage, so it only survives when nothing is active.
func Visible(repos []models.Repo, st State) []models.Repo {
	out := slices.Clone(repos)

	if st.Search != "" {
		term := strings.ToLower(st.Search)
		out = lo.Filter(out, func(r models.Repo, _ int) bool {
			return lo.SomeBy(r.Topics, func(t string) bool {
				return strings.Contains(strings.ToLower(t), term)
			})
		})
	}

	if len(st.Categories) > 0 {
		out = lo.Filter(out, func(r models.Repo, _ int) bool {
			return lo.SomeBy(st.Categories, func(c taxonomy.Category) bool {
				return taxonomy.MatchesCategory(c, r.Topics)
			})
		})
	}

	if len(st.Subcategories) > 0 {
		out = lo.Filter(out, func(r models.Repo, _ int) bool {
			return lo.SomeBy(st.Subcategories, func(label string) bool {
				return taxonomy.MatchesSubcategory(label, r.Topics)
			})
		})
	}

	return out
}

// Featured returns up to FeaturedLimit repos that carry the featured topic or
// have more than five stars, most starred first. Ties keep input order.
func Featured(repos []models.Repo) []models.Repo {
	out := lo.Filter(repos, func(r models.Repo, _ int) bool {
		return slices.Contains(r.Topics, FeaturedTopic) || r.Stars > featuredMinStars
	})
	slices.SortStableFunc(out, func(a, b models.Repo) int {
		return b.Stars - a.Stars
	})
	if len(out) > FeaturedLimit {
		out = out[:FeaturedLimit]
	}
	return out
}

type CategoryCount struct {
	Category taxonomy.Category
	Count    int
}

// Breakdown counts repos per category in taxonomy order. A repo in several
// categories is counted in each.
func Breakdown(repos []models.Repo) []CategoryCount {
	return lo.Map(taxonomy.Categories(), func(c taxonomy.Category, _ int) CategoryCount {
		return CategoryCount{
			Category: c,
			Count: lo.CountBy(repos, func(r models.Repo) bool {
				return taxonomy.MatchesCategory(c, r.Topics)
			}),
		}
	})
}
