package progress

import (
	"math"

	"github.com/sitewatch/sitewatch/internal/models"
)

// ReadinessState is the coarse handover state of one item.
type ReadinessState string

const (
	ReadinessOK      ReadinessState = "OK"
	ReadinessDefect  ReadinessState = "DEFECT"
	ReadinessPending ReadinessState = "PENDING"
)

// readinessStates maps stored status codes to readiness states. Codes not
// listed (HANDLED, NOT_STARTED, unknown) are informational and not counted.
var readinessStates = map[models.Status]ReadinessState{
	models.StatusCompleted:   ReadinessOK,
	models.StatusCompletedOK: ReadinessOK,
	models.StatusDefect:      ReadinessDefect,
	models.StatusNotOK:       ReadinessDefect,
	models.StatusInProgress:  ReadinessPending,
	models.StatusPending:     ReadinessPending,
}

// ReadinessStateOf returns the readiness state of a status code, and false
// for codes readiness ignores.
func ReadinessStateOf(s models.Status) (ReadinessState, bool) {
	st, ok := readinessStates[s]
	return st, ok
}

// ReadinessRow summarizes one apartment's items by state.
type ReadinessRow struct {
	Apartment   string  `json:"apartment"`
	OK          int     `json:"ok"`
	Defect      int     `json:"defect"`
	Pending     int     `json:"pending"`
	Total       int     `json:"total"`
	HealthScore float64 `json:"healthScore"`
}

// Readiness counts each apartment's logical items by the state of their
// last reported status, whether or not the item appears in the apartment's
// latest report. HealthScore is the OK share in percent, one decimal.
func Readiness(snaps []Snapshot) []ReadinessRow {
	sorted := SortSnapshots(snaps)
	var rows []ReadinessRow
	for _, number := range ApartmentNumbers(sorted) {
		h := NewHistory(Apartment(number))
		for _, s := range sorted {
			h.Fold(s)
		}
		row := ReadinessRow{Apartment: number}
		for _, key := range h.Order {
			state, ok := ReadinessStateOf(h.Items[key].Status)
			if !ok {
				continue
			}
			switch state {
			case ReadinessOK:
				row.OK++
			case ReadinessDefect:
				row.Defect++
			default:
				row.Pending++
			}
		}
		row.Total = row.OK + row.Defect + row.Pending
		if row.Total > 0 {
			row.HealthScore = math.Round(float64(row.OK)/float64(row.Total)*1000) / 10
		}
		rows = append(rows, row)
	}
	return rows
}
