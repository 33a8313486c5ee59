// Package render draws project cards and topic chips for the terminal.
package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/naserraoofi/portfolio/internal/models"
	"github.com/naserraoofi/portfolio/internal/taxonomy"
)

// Orange for AWS, blue for DevOps, purple for AI, grey otherwise.
var chipStyles = map[taxonomy.StyleToken]lipgloss.Style{
	taxonomy.StyleAWS:     chip("#9A3412", "#FFEDD5"),
	taxonomy.StyleDevOps:  chip("#1E40AF", "#DBEAFE"),
	taxonomy.StyleAI:      chip("#6B21A8", "#F3E8FF"),
	taxonomy.StyleDefault: chip("#1F2937", "#F3F4F6"),
}

func chip(fg, bg string) lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(fg)).
		Background(lipgloss.Color(bg)).
		Padding(0, 1)
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true)
	mutedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6B7280"))
	cardStyle     = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	featuredStyle = cardStyle.BorderForeground(lipgloss.Color("#3B82F6"))
)

// Tag renders one topic chip coloured by its taxonomy style.
func Tag(topic string) string {
	return chipStyles[taxonomy.TagStyle(topic)].Render(topic)
}

// Card renders a single project.
func Card(r models.Repo, featured bool) string {
	var b strings.Builder

	header := titleStyle.Render(r.Name)
	if r.Language != nil && *r.Language != "" {
		header += "  " + mutedStyle.Render(*r.Language)
	}
	b.WriteString(header + "\n")
	b.WriteString(r.DisplayDescription() + "\n")

	if len(r.Topics) > 0 {
		tags := make([]string, len(r.Topics))
		for i, t := range r.Topics {
			tags[i] = Tag(t)
		}
		b.WriteString(strings.Join(tags, " ") + "\n")
	}

	b.WriteString(mutedStyle.Render(fmt.Sprintf("★ %s  ⑂ %s  %s",
		humanize.Comma(int64(r.Stars)), humanize.Comma(int64(r.Forks)), r.URL)))

	if featured {
		return featuredStyle.Render(b.String())
	}
	return cardStyle.Render(b.String())
}

// Cards writes every repo as a card under a heading. An empty list prints a
// short notice instead.
func Cards(w io.Writer, heading string, repos []models.Repo, featured bool) error {
	if _, err := fmt.Fprintf(w, "%s (%d)\n", titleStyle.Render(heading), len(repos)); err != nil {
		return err
	}
	if len(repos) == 0 {
		_, err := fmt.Fprintln(w, mutedStyle.Render("No projects match."))
		return err
	}
	for _, r := range repos {
		if _, err := fmt.Fprintln(w, Card(r, featured)); err != nil {
			return err
		}
	}
	return nil
}
