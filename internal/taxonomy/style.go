package taxonomy

import "strings"

// StyleToken names the colour scheme a topic chip is drawn with.
type StyleToken string

const (
	StyleAWS     StyleToken = "aws"
	StyleDevOps  StyleToken = "devops"
	StyleAI      StyleToken = "ai"
	StyleDefault StyleToken = "default"
)

// TagStyle picks a single style for topic. The first matching category in
// table order wins, so "aws-docker" is styled as AWS. This is deliberately a
// different rule from CategoriesOf, which returns every match.
func TagStyle(topic string) StyleToken {
	t := strings.ToLower(topic)
	for _, e := range table {
		if containsAny(t, e.keywords) {
			return e.style
		}
	}
	return StyleDefault
}
