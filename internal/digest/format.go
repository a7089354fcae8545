// Package digest posts a periodic project progress summary to Slack.
package digest

import (
	"fmt"
	"sort"
	"strings"

	"github.com/sitewatch/sitewatch/internal/progress"
)

// laggingLimit caps the apartments listed as furthest behind.
const laggingLimit = 5

const (
	colorOK      = "#36a64f"
	colorWarning = "#daa038"
	colorEmpty   = "#888888"
)

// Digest is a formatted progress summary ready to post.
type Digest struct {
	Title  string
	Body   string
	Color  string
	Fields []Field

	OverallProgress int
}

// Field is a key-value pair displayed in the digest attachment.
type Field struct {
	Name  string
	Value string
	Short bool
}

// Build formats the project report and apartment summaries as a digest.
func Build(project string, rep progress.ScopeReport, apts []progress.ApartmentSummary) Digest {
	name := project
	if name == "" {
		name = "Project"
	}
	d := Digest{
		Title:           fmt.Sprintf("%s: %d%% complete", name, rep.OverallProgress),
		OverallProgress: rep.OverallProgress,
	}
	if rep.ReportCount == 0 {
		d.Title = name + ": no inspection reports yet"
		d.Color = colorEmpty
		return d
	}

	d.Color = colorOK
	if rep.TotalIssues > 0 {
		d.Color = colorWarning
	}

	var b strings.Builder
	for _, c := range rep.Categories {
		line := fmt.Sprintf("%s %d%%", c.Category, c.Progress)
		switch {
		case c.Graduated:
			line += " (no open items)"
		case c.ActiveIssues > 0:
			line += fmt.Sprintf(" (%d open defects)", c.ActiveIssues)
		}
		b.WriteString(line + "\n")
	}
	if lagging := laggingApartments(apts); len(lagging) > 0 {
		b.WriteString("\nFurthest behind:\n")
		for _, a := range lagging {
			fmt.Fprintf(&b, "apartment %s %d%%, %d issues\n", a.Number, a.OverallProgress, a.TotalIssues)
		}
	}
	d.Body = strings.TrimRight(b.String(), "\n")

	latest := "-"
	if rep.LatestReportDate != nil {
		latest = rep.LatestReportDate.Format("2006-01-02")
	}
	d.Fields = []Field{
		{Name: "Reports", Value: fmt.Sprintf("%d", rep.ReportCount), Short: true},
		{Name: "Latest report", Value: latest, Short: true},
		{Name: "Open defects", Value: fmt.Sprintf("%d", rep.TotalIssues), Short: true},
		{Name: "Apartments", Value: fmt.Sprintf("%d", len(apts)), Short: true},
	}
	return d
}

// Text renders the digest as plain text for fallbacks and the CLI.
func (d Digest) Text() string {
	var b strings.Builder
	b.WriteString(d.Title)
	for _, f := range d.Fields {
		fmt.Fprintf(&b, "\n%s: %s", f.Name, f.Value)
	}
	if d.Body != "" {
		b.WriteString("\n\n" + d.Body)
	}
	return b.String()
}

func laggingApartments(apts []progress.ApartmentSummary) []progress.ApartmentSummary {
	sorted := make([]progress.ApartmentSummary, len(apts))
	copy(sorted, apts)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].OverallProgress < sorted[j].OverallProgress
	})
	if len(sorted) > laggingLimit {
		sorted = sorted[:laggingLimit]
	}
	return sorted
}
