package report

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/google/uuid"
	"github.com/sitewatch/sitewatch/internal/db"
	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/normalize"
	"gorm.io/gorm"
)

// ErrDuplicate is returned when a report file has already been ingested.
var ErrDuplicate = errors.New("report: already ingested")

// IngestStats summarizes one ingestion.
type IngestStats struct {
	Items          int
	Apartments     int
	Development    int
	Defects        int
	StatusMisses   int
	CategoryMisses int
}

// Ingest stores ex as the next report. Apartments are created on first
// sight; every row is normalized and misses are logged, never rejected.
func Ingest(gormDB *gorm.DB, ex *Extraction) (*models.Report, IngestStats, error) {
	var stats IngestStats
	date, err := ex.Date()
	if err != nil {
		return nil, stats, err
	}

	rep := &models.Report{
		ID:         uuid.New().String(),
		ReportDate: date,
		FileName:   strings.TrimSpace(ex.FileName),
		Inspector:  strings.TrimSpace(ex.Inspector),
	}

	err = gormDB.Transaction(func(tx *gorm.DB) error {
		if rep.FileName != "" {
			var existing int64
			if err := tx.Model(&models.Report{}).Where("file_name = ?", rep.FileName).Count(&existing).Error; err != nil {
				return fmt.Errorf("report: check duplicate %s: %w", rep.FileName, err)
			}
			if existing > 0 {
				return fmt.Errorf("%w: %s", ErrDuplicate, rep.FileName)
			}
		}

		seq, err := nextSeq(tx)
		if err != nil {
			return err
		}
		rep.Seq = seq
		if err := tx.Create(rep).Error; err != nil {
			return fmt.Errorf("report: create report: %w", err)
		}

		var items []models.WorkItem
		for _, apt := range ex.Apartments {
			a, err := db.UpsertApartment(tx, strings.TrimSpace(apt.Number))
			if err != nil {
				return err
			}
			stats.Apartments++
			for _, raw := range apt.Items {
				items = append(items, buildItem(rep, &a.ID, a.Number, len(items), raw, &stats))
			}
		}
		for _, raw := range ex.Development {
			items = append(items, buildItem(rep, nil, "", len(items), raw, &stats))
			stats.Development++
		}
		if len(items) == 0 {
			return nil
		}
		if err := tx.CreateInBatches(items, 200).Error; err != nil {
			return fmt.Errorf("report: create work items: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, IngestStats{}, err
	}
	return rep, stats, nil
}

func nextSeq(tx *gorm.DB) (uint, error) {
	var maxSeq int64
	if err := tx.Model(&models.Report{}).Select("COALESCE(MAX(seq), 0)").Row().Scan(&maxSeq); err != nil {
		return 0, fmt.Errorf("report: next sequence: %w", err)
	}
	return uint(maxSeq) + 1, nil
}

func buildItem(rep *models.Report, aptID *uint, aptNumber string, pos int, raw ExtractedWorkItem, stats *IngestStats) models.WorkItem {
	status, okStatus := normalize.Status(raw.Status, raw.Notes)
	category, okCategory := normalize.Category(raw.Category, raw.Description)
	where := aptNumber
	if where == "" {
		where = "development"
	}
	if !okStatus {
		stats.StatusMisses++
		log.Printf("ingest: %s: unknown status %q for %q, using %s", where, raw.Status, raw.Description, status)
	}
	if !okCategory {
		stats.CategoryMisses++
		log.Printf("ingest: %s: unknown category %q for %q, using %s", where, raw.Category, raw.Description, category)
	}
	if status.IsNegative() {
		stats.Defects++
	}
	stats.Items++

	return models.WorkItem{
		ID:                uuid.New().String(),
		ReportID:          rep.ID,
		ApartmentID:       aptID,
		Position:          pos,
		Category:          category,
		RawCategory:       raw.Category,
		Location:          strings.TrimSpace(raw.Location),
		Description:       strings.TrimSpace(raw.Description),
		Status:            status,
		RawStatus:         raw.Status,
		Notes:             strings.TrimSpace(raw.Notes),
		HasPhoto:          raw.HasPhoto,
		NormalizationMiss: !okStatus || !okCategory,
	}
}
