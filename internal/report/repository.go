package report

import (
	"errors"
	"fmt"
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/progress"
	"gorm.io/gorm"
)

// ErrApartmentNotFound is returned by GetApartment for an unknown number.
var ErrApartmentNotFound = errors.New("report: apartment not found")

// Summary is one row of the report list.
type Summary struct {
	ID         string    `json:"id"`
	Seq        uint      `json:"seq"`
	ReportDate time.Time `json:"reportDate"`
	FileName   string    `json:"fileName"`
	Inspector  string    `json:"inspector"`
	ItemCount  int       `json:"itemCount"`
	Misses     int       `json:"normalizationMisses"`
}

type itemRow struct {
	ReportID        string
	ApartmentNumber *string
	Category        models.Category
	Location        string
	Description     string
	Status          models.Status
	Notes           string
	HasPhoto        bool
}

// LoadSnapshots returns every report in chronological order with the work
// items that fall in scope. Reports without matching items are kept as
// empty snapshots so indexes stay aligned across scopes.
func LoadSnapshots(gormDB *gorm.DB, scope progress.Scope) ([]progress.Snapshot, error) {
	var reports []models.Report
	if err := gormDB.Order("report_date ASC, seq ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("report: list reports: %w", err)
	}
	if len(reports) == 0 {
		return []progress.Snapshot{}, nil
	}

	q := gormDB.Model(&models.WorkItem{}).
		Select("work_items.report_id, apartments.number AS apartment_number, work_items.category, " +
			"work_items.location, work_items.description, work_items.status, work_items.notes, work_items.has_photo").
		Joins("LEFT JOIN apartments ON apartments.id = work_items.apartment_id")
	switch scope.Kind {
	case progress.ScopeApartment:
		q = q.Where("apartments.number = ?", scope.Apartment)
	case progress.ScopeDevelopment:
		q = q.Where("work_items.apartment_id IS NULL")
	}
	var rows []itemRow
	if err := q.Order("work_items.report_id, work_items.position").Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("report: load work items for %s: %w", scope, err)
	}

	byReport := make(map[string][]progress.Record, len(reports))
	for _, r := range rows {
		rec := progress.Record{
			Category:    r.Category,
			Location:    r.Location,
			Description: r.Description,
			Status:      r.Status,
			Notes:       r.Notes,
			HasPhoto:    r.HasPhoto,
		}
		if r.ApartmentNumber != nil {
			rec.Apartment = *r.ApartmentNumber
		}
		byReport[r.ReportID] = append(byReport[r.ReportID], rec)
	}

	snaps := make([]progress.Snapshot, 0, len(reports))
	for _, rep := range reports {
		snaps = append(snaps, progress.Snapshot{
			ReportID: rep.ID,
			Date:     rep.ReportDate,
			Seq:      rep.Seq,
			Records:  byReport[rep.ID],
		})
	}
	return snaps, nil
}

// ListApartments returns all apartments in numeric order.
func ListApartments(gormDB *gorm.DB) ([]models.Apartment, error) {
	var apts []models.Apartment
	if err := gormDB.Find(&apts).Error; err != nil {
		return nil, fmt.Errorf("report: list apartments: %w", err)
	}
	numbers := make([]string, len(apts))
	byNumber := make(map[string]models.Apartment, len(apts))
	for i, a := range apts {
		numbers[i] = a.Number
		byNumber[a.Number] = a
	}
	progress.SortApartmentNumbers(numbers)
	for i, n := range numbers {
		apts[i] = byNumber[n]
	}
	return apts, nil
}

// GetApartment returns the apartment with number.
func GetApartment(gormDB *gorm.DB, number string) (*models.Apartment, error) {
	var apt models.Apartment
	if err := gormDB.Where("number = ?", number).First(&apt).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrApartmentNotFound, number)
		}
		return nil, fmt.Errorf("report: get apartment %s: %w", number, err)
	}
	return &apt, nil
}

// ListReports returns every report in chronological order with item counts.
func ListReports(gormDB *gorm.DB) ([]Summary, error) {
	var reports []models.Report
	if err := gormDB.Order("report_date ASC, seq ASC").Find(&reports).Error; err != nil {
		return nil, fmt.Errorf("report: list reports: %w", err)
	}

	type countRow struct {
		ReportID string
		Items    int
		Misses   int
	}
	var counts []countRow
	err := gormDB.Model(&models.WorkItem{}).
		Select("report_id, COUNT(*) AS items, SUM(CASE WHEN normalization_miss THEN 1 ELSE 0 END) AS misses").
		Group("report_id").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("report: count work items: %w", err)
	}
	byReport := make(map[string]countRow, len(counts))
	for _, c := range counts {
		byReport[c.ReportID] = c
	}

	out := make([]Summary, 0, len(reports))
	for _, r := range reports {
		c := byReport[r.ID]
		out = append(out, Summary{
			ID:         r.ID,
			Seq:        r.Seq,
			ReportDate: r.ReportDate,
			FileName:   r.FileName,
			Inspector:  r.Inspector,
			ItemCount:  c.Items,
			Misses:     c.Misses,
		})
	}
	return out, nil
}
