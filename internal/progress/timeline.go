package progress

import (
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/settings"
)

// TimelinePoint is the scope's progress as it would have been reported
// right after one report was ingested. CumulativeCompleted is the running
// count, per category, of records reported COMPLETED or COMPLETED_OK up to
// and including this report.
type TimelinePoint struct {
	Index               int                     `json:"index"`
	ReportID            string                  `json:"reportId"`
	Date                time.Time               `json:"date"`
	OverallProgress     int                     `json:"overallProgress"`
	TotalIssues         int                     `json:"totalIssues"`
	ItemCount           int                     `json:"itemCount"`
	PerCategory         map[models.Category]int `json:"perCategoryProgress"`
	CumulativeCompleted map[models.Category]int `json:"cumulativeCompleted"`
}

// DefectPoint counts the records of one report whose effective status is
// negative. Counts are per report, not cumulative.
type DefectPoint struct {
	Index       int                     `json:"index"`
	ReportID    string                  `json:"reportId"`
	Date        time.Time               `json:"date"`
	Total       int                     `json:"total"`
	PerCategory map[models.Category]int `json:"perCategoryDefects"`
}

// TimelineResult holds the parallel progress and defect series.
type TimelineResult struct {
	Scope    string          `json:"scope"`
	Progress []TimelinePoint `json:"progress"`
	Defects  []DefectPoint   `json:"defects"`
}

// Timeline replays the history of scope one report at a time, treating
// each report as the latest when aggregating. Reports without records in
// scope produce no point.
func Timeline(snaps []Snapshot, scope Scope, cfg settings.Config) TimelineResult {
	res := TimelineResult{
		Scope:    scope.String(),
		Progress: []TimelinePoint{},
		Defects:  []DefectPoint{},
	}
	h := NewHistory(scope)
	completed := make(map[models.Category]int)
	for _, s := range SortSnapshots(snaps) {
		if !h.Fold(s) {
			continue
		}
		rep := Compute(h, cfg)
		for _, r := range h.LatestRecords {
			if r.Status == models.StatusCompleted || r.Status == models.StatusCompletedOK {
				completed[r.Category]++
			}
		}

		point := TimelinePoint{
			Index:               h.LatestIndex,
			ReportID:            s.ReportID,
			Date:                s.Date,
			OverallProgress:     rep.OverallProgress,
			TotalIssues:         rep.TotalIssues,
			ItemCount:           rep.ItemCount,
			PerCategory:         make(map[models.Category]int, len(rep.Categories)),
			CumulativeCompleted: make(map[models.Category]int, len(completed)),
		}
		for _, c := range rep.Categories {
			point.PerCategory[c.Category] = c.Progress
		}
		for cat, n := range completed {
			point.CumulativeCompleted[cat] = n
		}
		res.Progress = append(res.Progress, point)

		defects := DefectPoint{
			Index:       h.LatestIndex,
			ReportID:    s.ReportID,
			Date:        s.Date,
			PerCategory: make(map[models.Category]int),
		}
		for _, r := range h.LatestRecords {
			if EffectiveStatus(r.Status, r.Notes).IsNegative() {
				defects.PerCategory[r.Category]++
				defects.Total++
			}
		}
		res.Defects = append(res.Defects, defects)
	}
	return res
}
