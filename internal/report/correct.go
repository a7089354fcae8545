package report

import (
	"fmt"
	"log"

	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/normalize"
	"gorm.io/gorm"
)

// Correction describes one work item demoted by a data-correction pass.
type Correction struct {
	ItemID      string        `json:"itemId"`
	ReportID    string        `json:"reportId"`
	Apartment   string        `json:"apartment,omitempty"`
	Description string        `json:"description"`
	Notes       string        `json:"notes,omitempty"`
	From        models.Status `json:"from"`
	To          models.Status `json:"to"`
}

// CorrectPartialCompletions demotes COMPLETED and COMPLETED_OK items whose
// description or notes mention partial work to IN_PROGRESS. With dryRun the
// affected items are returned without being changed.
func CorrectPartialCompletions(gormDB *gorm.DB, dryRun bool) ([]Correction, error) {
	var out []Correction
	err := gormDB.Transaction(func(tx *gorm.DB) error {
		var items []models.WorkItem
		err := tx.Preload("Apartment").
			Where("status IN ?", []models.Status{models.StatusCompleted, models.StatusCompletedOK}).
			Order("report_id, position").
			Find(&items).Error
		if err != nil {
			return fmt.Errorf("report: load completed items: %w", err)
		}

		var ids []string
		for _, it := range items {
			if !normalize.HasPartialKeyword(it.Description) && !normalize.HasPartialKeyword(it.Notes) {
				continue
			}
			c := Correction{
				ItemID:      it.ID,
				ReportID:    it.ReportID,
				Description: it.Description,
				Notes:       it.Notes,
				From:        it.Status,
				To:          models.StatusInProgress,
			}
			if it.Apartment != nil {
				c.Apartment = it.Apartment.Number
			}
			out = append(out, c)
			ids = append(ids, it.ID)
		}
		if dryRun || len(ids) == 0 {
			return nil
		}

		err = tx.Model(&models.WorkItem{}).
			Where("id IN ?", ids).
			Update("status", models.StatusInProgress).Error
		if err != nil {
			return fmt.Errorf("report: demote partial completions: %w", err)
		}
		log.Printf("report: demoted %d partially completed items to %s", len(ids), models.StatusInProgress)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
