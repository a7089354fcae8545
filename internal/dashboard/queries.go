package dashboard

import (
	"fmt"

	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/progress"
	"github.com/sitewatch/sitewatch/internal/report"
	"gorm.io/gorm"
)

// ProjectOverview is the payload of GET /api/project.
type ProjectOverview struct {
	Project     string                      `json:"project"`
	Address     string                      `json:"address,omitempty"`
	Report      progress.ScopeReport        `json:"report"`
	Development progress.ScopeReport        `json:"development"`
	Apartments  []progress.ApartmentSummary `json:"apartments"`
}

// scopeReport loads the snapshots of scope and evaluates them.
func scopeReport(db *gorm.DB, engine *progress.Engine, scope progress.Scope) (progress.ScopeReport, error) {
	snaps, err := report.LoadSnapshots(db, scope)
	if err != nil {
		return progress.ScopeReport{}, err
	}
	return engine.Scope(snaps, scope), nil
}

// projectOverview assembles the whole-project view from one snapshot load.
func projectOverview(db *gorm.DB, engine *progress.Engine, name string) (ProjectOverview, error) {
	snaps, err := report.LoadSnapshots(db, progress.Project())
	if err != nil {
		return ProjectOverview{}, err
	}
	out := ProjectOverview{
		Project:     name,
		Report:      engine.Scope(snaps, progress.Project()),
		Development: engine.Scope(snaps, progress.Development()),
		Apartments:  engine.Apartments(snaps),
	}

	var p models.Project
	if name != "" {
		err := db.Where("name = ?", name).Limit(1).Find(&p).Error
		if err != nil {
			return ProjectOverview{}, fmt.Errorf("dashboard: load project %q: %w", name, err)
		}
		out.Address = p.Address
	}
	return out, nil
}

// latestReportSeq returns the highest ingestion sequence, or 0 when empty.
func latestReportSeq(db *gorm.DB) (uint, error) {
	var seq int64
	if err := db.Model(&models.Report{}).Select("COALESCE(MAX(seq), 0)").Row().Scan(&seq); err != nil {
		return 0, fmt.Errorf("dashboard: latest report: %w", err)
	}
	return uint(seq), nil
}
