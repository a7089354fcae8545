package progress

import (
	"testing"
	"time"

	"github.com/sitewatch/sitewatch/internal/models"
	"github.com/sitewatch/sitewatch/internal/settings"
)

func day(month time.Month, d int) time.Time {
	return time.Date(2025, month, d, 0, 0, 0, 0, time.UTC)
}

func rec(apt string, cat models.Category, desc string, status models.Status, notes string) Record {
	return Record{Apartment: apt, Category: cat, Description: desc, Status: status, Notes: notes}
}

func snap(id string, date time.Time, seq uint, records ...Record) Snapshot {
	return Snapshot{ReportID: id, Date: date, Seq: seq, Records: records}
}

// findItem returns the evaluated item with the given description.
func findItem(t *testing.T, items []ItemProgress, desc string) ItemProgress {
	t.Helper()
	for _, it := range items {
		if it.Description == desc {
			return it
		}
	}
	t.Fatalf("item %q not found", desc)
	return ItemProgress{}
}

// staticConfig is a ConfigSource returning a fixed config.
type staticConfig settings.Config

func (s staticConfig) Load() settings.Config { return settings.Config(s).Clone() }
