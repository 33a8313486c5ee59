// Package taxonomy holds the fixed category tables used to classify
// repository topic tags.
//
// Every rule in this package reduces to one check: does a lowercased topic
// contain a lowercased needle as a substring. Filtering and tag styling both
// go through containsAny so the two can never disagree about what a topic is.
package taxonomy

import (
	"errors"
	"fmt"
	"strings"

	"github.com/samber/lo"
)

type Category string

const (
	AWS    Category = "AWS"
	DevOps Category = "DevOps"
	AI     Category = "AI"
)

var ErrUnknownCategory = errors.New("unknown category")

type entry struct {
	category      Category
	keywords      []string
	subcategories []string
	style         StyleToken
}

// table is ordered: it is the first-match-wins order used by TagStyle and the
// display order everywhere else.
//
// The "ai" keyword also matches words like "maintenance" or "domain". That is
// long-standing behaviour and kept as is.
var table = []entry{
	{
		category:      AWS,
		keywords:      []string{"aws", "ec2", "s3", "lambda", "cloudformation", "rds", "dynamodb"},
		subcategories: []string{"EC2", "S3", "Lambda", "CloudFormation", "RDS", "DynamoDB"},
		style:         StyleAWS,
	},
	{
		category:      DevOps,
		keywords:      []string{"devops", "docker", "kubernetes", "jenkins", "terraform", "ansible", "github-actions"},
		subcategories: []string{"Docker", "Kubernetes", "Jenkins", "Terraform", "Ansible", "GitHub Actions"},
		style:         StyleDevOps,
	},
	{
		category:      AI,
		keywords:      []string{"ai", "machine-learning", "deep-learning", "computer-vision", "image-processing", "nlp"},
		subcategories: []string{"Image Processing", "Computer Vision", "Machine Learning", "Deep Learning", "NLP"},
		style:         StyleAI,
	},
}

// Categories returns every category in display order.
func Categories() []Category {
	return lo.Map(table, func(e entry, _ int) Category { return e.category })
}

// Keywords returns the lowercase match keywords of c, or nil for an unknown
// category.
func Keywords(c Category) []string {
	e, ok := lookup(c)
	if !ok {
		return nil
	}
	return append([]string(nil), e.keywords...)
}

// Subcategories returns the subcategory labels nested under c.
func Subcategories(c Category) []string {
	e, ok := lookup(c)
	if !ok {
		return nil
	}
	return append([]string(nil), e.subcategories...)
}

// SubcategoryOf returns the category a subcategory label belongs to. The
// label comparison ignores case.
func SubcategoryOf(label string) (Category, bool) {
	for _, e := range table {
		for _, s := range e.subcategories {
			if strings.EqualFold(s, label) {
				return e.category, true
			}
		}
	}
	return "", false
}

// ParseCategory resolves a user-supplied category name, ignoring case.
func ParseCategory(s string) (Category, error) {
	for _, e := range table {
		if strings.EqualFold(string(e.category), strings.TrimSpace(s)) {
			return e.category, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}

// CategoriesOf returns every category whose keyword set matches topic.
// Categories are not mutually exclusive.
func CategoriesOf(topic string) []Category {
	t := strings.ToLower(topic)
	var out []Category
	for _, e := range table {
		if containsAny(t, e.keywords) {
			out = append(out, e.category)
		}
	}
	return out
}

// CategoriesOfRepo returns, in display order, every category at least one of
// topics falls into.
func CategoriesOfRepo(topics []string) []Category {
	return lo.Filter(Categories(), func(c Category, _ int) bool {
		return MatchesCategory(c, topics)
	})
}

// MatchesCategory reports whether any topic falls into c.
func MatchesCategory(c Category, topics []string) bool {
	e, ok := lookup(c)
	if !ok {
		return false
	}
	return lo.SomeBy(topics, func(t string) bool {
		return containsAny(strings.ToLower(t), e.keywords)
	})
}

// MatchesSubcategory reports whether any topic contains the lowercased label.
// "GitHub Actions" lowercases to "github actions" and so does not match the
// topic "github-actions".
func MatchesSubcategory(label string, topics []string) bool {
	needle := strings.ToLower(label)
	return lo.SomeBy(topics, func(t string) bool {
		return strings.Contains(strings.ToLower(t), needle)
	})
}

func lookup(c Category) (entry, bool) {
	return lo.Find(table, func(e entry) bool { return e.category == c })
}

// containsAny expects s to be lowercased already.
func containsAny(s string, needles []string) bool {
	for _, n := range needles {
		if strings.Contains(s, n) {
			return true
		}
	}
	return false
}
