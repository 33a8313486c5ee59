package models

// Repo is one public repository as returned by the GitHub REST API. It is
// never mutated after the fetch that produced it.
type Repo struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	FullName    string   `json:"full_name"`
	Description *string  `json:"description"`
	URL         string   `json:"url"`
	HomepageURL *string  `json:"homepage_url"`
	Stars       int      `json:"stars"`
	Forks       int      `json:"forks"`
	Language    *string  `json:"language"`
	Topics      []string `json:"topics"`
	AISummary   *string  `json:"ai_summary"`
	Categories  []string `json:"categories"`
}

// DisplayDescription returns the description shown on a project card.
func (r Repo) DisplayDescription() string {
	if r.Description != nil && *r.Description != "" {
		return *r.Description
	}
	if r.AISummary != nil && *r.AISummary != "" {
		return *r.AISummary
	}
	return "No description available"
}

type SummaryResult struct {
	Summary string `json:"summary"`
}
