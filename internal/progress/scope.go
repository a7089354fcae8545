// Package progress turns a chronological sequence of inspection-report
// snapshots into per-item, per-category and per-scope completion
// percentages, and replays that computation over time.
//
// All computation is re-derived from the full report set on every call;
// nothing is cached between calls.
package progress

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
)

// ScopeKind selects the granularity of an aggregation.
type ScopeKind int

const (
	ScopeProject ScopeKind = iota
	ScopeApartment
	ScopeDevelopment
)

// Scope is an apartment, the site development bucket, or the whole project.
type Scope struct {
	Kind      ScopeKind
	Apartment string
}

// Project returns the whole-project scope.
func Project() Scope { return Scope{Kind: ScopeProject} }

// Development returns the site development scope (records without an apartment).
func Development() Scope { return Scope{Kind: ScopeDevelopment} }

// Apartment returns the scope of a single apartment.
func Apartment(number string) Scope { return Scope{Kind: ScopeApartment, Apartment: number} }

// ParseScope builds a Scope from its query-string form.
func ParseScope(kind, apartment string) (Scope, error) {
	switch strings.ToLower(kind) {
	case "", "project":
		return Project(), nil
	case "development":
		return Development(), nil
	case "apartment":
		if apartment == "" {
			return Scope{}, fmt.Errorf("progress: apartment scope requires an apartment number")
		}
		return Apartment(apartment), nil
	default:
		return Scope{}, fmt.Errorf("progress: unknown scope %q", kind)
	}
}

// Includes reports whether r belongs to the scope.
func (s Scope) Includes(r Record) bool {
	switch s.Kind {
	case ScopeApartment:
		return r.Apartment == s.Apartment
	case ScopeDevelopment:
		return r.Apartment == ""
	default:
		return true
	}
}

func (s Scope) String() string {
	switch s.Kind {
	case ScopeApartment:
		return "apartment " + s.Apartment
	case ScopeDevelopment:
		return "development"
	default:
		return "project"
	}
}

// Record is one work-item row of a report. An empty Apartment places the
// record in the development bucket.
type Record struct {
	Apartment   string
	Category    models.Category
	Location    string
	Description string
	Status      models.Status
	Notes       string
	HasPhoto    bool
}

// Snapshot is one report with its records.
type Snapshot struct {
	ReportID string
	Date     time.Time
	Seq      uint // ingestion order, breaks ties between same-date reports
	Records  []Record
}

// ItemKey identifies a logical item across reports.
type ItemKey struct {
	Apartment   string
	Category    models.Category
	Description string
}

// KeyOf returns the identity key of r. Surrounding whitespace in the
// description is ignored; any other wording change forks the item.
func KeyOf(r Record) ItemKey {
	return ItemKey{
		Apartment:   r.Apartment,
		Category:    r.Category,
		Description: strings.TrimSpace(r.Description),
	}
}

// SortSnapshots returns a copy of snaps ordered by report date, then by
// ingestion sequence.
func SortSnapshots(snaps []Snapshot) []Snapshot {
	out := make([]Snapshot, len(snaps))
	copy(out, snaps)
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].Date.Equal(out[j].Date) {
			return out[i].Date.Before(out[j].Date)
		}
		return out[i].Seq < out[j].Seq
	})
	return out
}

// ApartmentNumbers returns the distinct apartment numbers found in snaps,
// numeric ones first in numeric order.
func ApartmentNumbers(snaps []Snapshot) []string {
	seen := make(map[string]bool)
	var out []string
	for _, s := range snaps {
		for _, r := range s.Records {
			if r.Apartment != "" && !seen[r.Apartment] {
				seen[r.Apartment] = true
				out = append(out, r.Apartment)
			}
		}
	}
	SortApartmentNumbers(out)
	return out
}

// SortApartmentNumbers orders numbers numerically where possible.
func SortApartmentNumbers(numbers []string) {
	sort.SliceStable(numbers, func(i, j int) bool {
		a, errA := strconv.Atoi(numbers[i])
		b, errB := strconv.Atoi(numbers[j])
		switch {
		case errA == nil && errB == nil:
			return a < b
		case errA == nil:
			return true
		case errB == nil:
			return false
		default:
			return numbers[i] < numbers[j]
		}
	})
}
