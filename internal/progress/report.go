package progress

import (
	"time"

	"github.com/sitewatch/sitewatch/internal/settings"
)

// ScopeReport is everything the dashboard shows for one scope.
type ScopeReport struct {
	Scope            string             `json:"scope"`
	OverallProgress  int                `json:"overallProgress"`
	ReportCount      int                `json:"reportCount"`
	LatestReportID   string             `json:"latestReportId,omitempty"`
	LatestReportDate *time.Time         `json:"latestReportDate,omitempty"`
	ItemCount        int                `json:"itemCount"`
	TotalIssues      int                `json:"totalIssues"`
	Categories       []CategoryProgress `json:"categories"`
	Completed        []ItemProgress     `json:"completed"`
	Defects          []ItemProgress     `json:"defects"`
	InProgress       []ItemProgress     `json:"inProgress"`
}

// Compute evaluates h as of its latest folded snapshot.
func Compute(h *History, cfg settings.Config) ScopeReport {
	rep := ScopeReport{
		Scope:       h.Scope.String(),
		ReportCount: h.Reports(),
		Categories:  []CategoryProgress{},
		Completed:   []ItemProgress{},
		Defects:     []ItemProgress{},
		InProgress:  []ItemProgress{},
	}
	if h.Reports() == 0 {
		return rep
	}
	d := h.LatestDate
	rep.LatestReportID = h.LatestReportID
	rep.LatestReportDate = &d

	items := EvaluateItems(h, cfg)
	for _, it := range items {
		if it.Present {
			rep.ItemCount++
			if it.Effective.IsNegative() {
				rep.TotalIssues++
			}
		}
		switch it.Bucket {
		case BucketCompleted:
			rep.Completed = append(rep.Completed, it)
		case BucketDefect:
			rep.Defects = append(rep.Defects, it)
		default:
			rep.InProgress = append(rep.InProgress, it)
		}
	}
	cats, overall := Categories(items, h.CategoriesSeen, cfg)
	if cats != nil {
		rep.Categories = cats
	}
	rep.OverallProgress = overall
	return rep
}
