package progress

import (
	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/normalize"
	"github.com/sitewatch/sitewatch/internal/settings"
)

// ScoreContext carries the history facts the scorer needs.
type ScoreContext struct {
	FirstTimeSeen bool
}

// ItemScore is a 0–100 completion value and the threshold that produced it.
type ItemScore struct {
	Value     float64       `json:"value"`
	Label     string        `json:"label"`
	Effective models.Status `json:"effectiveStatus"`
}

// EffectiveStatus promotes a positive status to DEFECT when the notes
// describe a defect. Negative and neutral statuses pass through.
func EffectiveStatus(status models.Status, notes string) models.Status {
	if status.IsNegative() {
		return status
	}
	if status.IsPositive() && normalize.HasDefectKeyword(notes) {
		return models.StatusDefect
	}
	return status
}

// Score maps one item's status to a completion value. The caller applies
// the presence override for items missing from the latest report.
func Score(status models.Status, notes string, ctx ScoreContext, cfg settings.Config) ItemScore {
	eff := EffectiveStatus(status, notes)
	label := settings.Unknown

	switch eff {
	case models.StatusCompletedOK:
		label = settings.VerifiedNoDefects
	case models.StatusCompleted:
		switch {
		case normalize.HasVerificationKeyword(notes):
			label = settings.VerifiedNoDefects
		case ctx.FirstTimeSeen:
			label = settings.CompletedOKFirst
		default:
			label = settings.CompletedOKLater
		}
	case models.StatusHandled:
		label = settings.Handled
	case models.StatusDefect, models.StatusNotOK:
		label = settings.DefectWorkDone
	case models.StatusInProgress:
		label = settings.InProgress
	case models.StatusPending:
		label = settings.Pending
	case models.StatusNotStarted:
		label = settings.NotStarted
	}

	return ItemScore{Value: cfg.Threshold(label), Label: label, Effective: eff}
}
