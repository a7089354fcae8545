package progress

import (
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
)

// LogicalItem is the derived history of one ItemKey.
type LogicalItem struct {
	Key           ItemKey
	Location      string
	Status        models.Status
	Notes         string
	HasPhoto      bool
	FirstSeen     int
	LastSeen      int
	FirstSeenDate time.Time
	LastSeenDate  time.Time
	Appearances   int

	// HadDefectEver is sticky: once set it is never cleared.
	HadDefectEver   bool
	DefectFirstSeen time.Time
}

// History is the per-item timeline of one scope, built by folding
// snapshots in chronological order. Report indexes count only snapshots
// that contain at least one record in scope.
//
// Presence is judged per partition (one apartment, or the development
// bucket): an item is present when it appears in the latest snapshot that
// mentions its partition. A project-scope report that skips an apartment
// therefore says nothing about that apartment's items.
type History struct {
	Scope          Scope
	Items          map[ItemKey]*LogicalItem
	Order          []ItemKey // first-appearance order
	CategoriesSeen map[models.Category]bool

	// Latest describes the most recent folded snapshot.
	LatestIndex    int
	LatestReportID string
	LatestDate     time.Time
	Latest         map[ItemKey]bool
	LatestRecords  []Record

	// partitionLatest maps an apartment number ("" for development) to the
	// index of the latest snapshot with records in it.
	partitionLatest map[string]int
}

// NewHistory returns an empty history for scope.
func NewHistory(scope Scope) *History {
	return &History{
		Scope:          scope,
		Items:          make(map[ItemKey]*LogicalItem),
		CategoriesSeen: make(map[models.Category]bool),
		LatestIndex:    -1,
		Latest:         make(map[ItemKey]bool),

		partitionLatest: make(map[string]int),
	}
}

// BuildHistory folds snaps, sorted chronologically, into a new history.
func BuildHistory(snaps []Snapshot, scope Scope) *History {
	h := NewHistory(scope)
	for _, s := range SortSnapshots(snaps) {
		h.Fold(s)
	}
	return h
}

// Reports returns the number of snapshots folded so far.
func (h *History) Reports() int { return h.LatestIndex + 1 }

// Fold applies one snapshot. It returns false, leaving the history
// untouched, when the snapshot has no records in scope.
func (h *History) Fold(s Snapshot) bool {
	var records []Record
	for _, r := range s.Records {
		if h.Scope.Includes(r) {
			records = append(records, r)
		}
	}
	if len(records) == 0 {
		return false
	}

	h.LatestIndex++
	idx := h.LatestIndex
	h.LatestReportID = s.ReportID
	h.LatestDate = s.Date
	h.Latest = make(map[ItemKey]bool, len(records))
	h.LatestRecords = records

	for _, r := range records {
		key := KeyOf(r)
		item, ok := h.Items[key]
		if !ok {
			item = &LogicalItem{
				Key:           key,
				FirstSeen:     idx,
				FirstSeenDate: s.Date,
				LastSeen:      -1,
			}
			h.Items[key] = item
			h.Order = append(h.Order, key)
		}
		if item.LastSeen != idx {
			item.Appearances++
		}
		item.LastSeen = idx
		item.LastSeenDate = s.Date
		item.Status = r.Status
		item.Notes = r.Notes
		item.Location = r.Location
		item.HasPhoto = r.HasPhoto

		if !item.HadDefectEver && EffectiveStatus(r.Status, r.Notes).IsNegative() {
			item.HadDefectEver = true
			item.DefectFirstSeen = s.Date
		}

		h.Latest[key] = true
		h.CategoriesSeen[r.Category] = true
		h.partitionLatest[key.Apartment] = idx
	}
	return true
}

// PartitionLatest returns the index of the latest snapshot mentioning the
// apartment (or development, for ""), and false when none did.
func (h *History) PartitionLatest(apartment string) (int, bool) {
	idx, ok := h.partitionLatest[apartment]
	return idx, ok
}

// Present reports whether key appears in the latest snapshot that mentions
// its partition.
func (h *History) Present(key ItemKey) bool {
	item, ok := h.Items[key]
	if !ok {
		return false
	}
	idx, ok := h.partitionLatest[key.Apartment]
	return ok && item.LastSeen == idx
}

// FirstTimeSeen reports whether item first appeared in the latest snapshot
// that mentions its partition.
func (h *History) FirstTimeSeen(item *LogicalItem) bool {
	idx, ok := h.partitionLatest[item.Key.Apartment]
	return ok && item.FirstSeen == idx
}
