package progress

import "github.com/sitewatch/sitewatch/internal/settings"

// ConfigSource supplies the current progress configuration.
type ConfigSource interface {
	Load() settings.Config
}

// Engine binds the computations to a configuration source. The config is
// read once per call so a single result never mixes two configurations.
type Engine struct {
	Settings ConfigSource
}

// NewEngine returns an Engine reading configuration from src.
func NewEngine(src ConfigSource) *Engine {
	return &Engine{Settings: src}
}

// ApartmentSummary is one row of the apartment overview.
type ApartmentSummary struct {
	Number          string `json:"number"`
	OverallProgress int    `json:"overallProgress"`
	ItemCount       int    `json:"itemCount"`
	TotalIssues     int    `json:"totalIssues"`
	ReportCount     int    `json:"reportCount"`
}

func (e *Engine) config() settings.Config {
	if e == nil || e.Settings == nil {
		return settings.Defaults()
	}
	return e.Settings.Load()
}

// Scope computes the current report for scope from the full snapshot set.
func (e *Engine) Scope(snaps []Snapshot, scope Scope) ScopeReport {
	return Compute(BuildHistory(snaps, scope), e.config())
}

// Timeline replays scope across every snapshot.
func (e *Engine) Timeline(snaps []Snapshot, scope Scope) TimelineResult {
	return Timeline(snaps, scope, e.config())
}

// Apartments summarizes every apartment present in snaps.
func (e *Engine) Apartments(snaps []Snapshot) []ApartmentSummary {
	cfg := e.config()
	sorted := SortSnapshots(snaps)
	out := []ApartmentSummary{}
	for _, number := range ApartmentNumbers(sorted) {
		rep := Compute(BuildHistory(sorted, Apartment(number)), cfg)
		out = append(out, ApartmentSummary{
			Number:          number,
			OverallProgress: rep.OverallProgress,
			ItemCount:       rep.ItemCount,
			TotalIssues:     rep.TotalIssues,
			ReportCount:     rep.ReportCount,
		})
	}
	return out
}
