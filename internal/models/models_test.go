package models

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

// gormTag extracts the gorm tag from a struct field.
func gormTag(t *testing.T, typ reflect.Type, fieldName string) string {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	return f.Tag.Get("gorm")
}

// assertGormTag checks that a struct field's gorm tag contains the expected value.
func assertGormTag(t *testing.T, typ reflect.Type, fieldName, expected string) {
	t.Helper()
	tag := gormTag(t, typ, fieldName)
	if !strings.Contains(tag, expected) {
		t.Errorf("%s.%s gorm tag = %q, want to contain %q", typ.Name(), fieldName, tag, expected)
	}
}

// assertFieldType checks that a struct field has the expected Go type.
func assertFieldType(t *testing.T, typ reflect.Type, fieldName, expectedType string) {
	t.Helper()
	f, ok := typ.FieldByName(fieldName)
	if !ok {
		t.Fatalf("%s.%s: field not found", typ.Name(), fieldName)
	}
	got := f.Type.String()
	if got != expectedType {
		t.Errorf("%s.%s type = %q, want %q", typ.Name(), fieldName, got, expectedType)
	}
}

func TestApartment_Fields(t *testing.T) {
	typ := reflect.TypeOf(Apartment{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "Number", "uniqueIndex")
	assertGormTag(t, typ, "Number", "not null")
	assertGormTag(t, typ, "Number", "size:16")
	assertFieldType(t, typ, "Floor", "*int")
}

func TestProject_Fields(t *testing.T) {
	typ := reflect.TypeOf(Project{})

	assertGormTag(t, typ, "Name", "uniqueIndex")
	assertGormTag(t, typ, "Address", "type:text")
}

func TestReport_Fields(t *testing.T) {
	typ := reflect.TypeOf(Report{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ID", "size:36")
	assertGormTag(t, typ, "Seq", "uniqueIndex")
	assertGormTag(t, typ, "ReportDate", "index")
	assertFieldType(t, typ, "ReportDate", "time.Time")
	assertGormTag(t, typ, "Items", "foreignKey:ReportID")
	assertFieldType(t, typ, "Items", "[]models.WorkItem")
}

func TestWorkItem_Fields(t *testing.T) {
	typ := reflect.TypeOf(WorkItem{})

	assertGormTag(t, typ, "ID", "primaryKey")
	assertGormTag(t, typ, "ReportID", "index")
	assertGormTag(t, typ, "ReportID", "not null")
	assertFieldType(t, typ, "ApartmentID", "*uint")
	assertGormTag(t, typ, "Category", "index")
	assertFieldType(t, typ, "Category", "models.Category")
	assertGormTag(t, typ, "Description", "type:text")
	assertGormTag(t, typ, "Description", "not null")
	assertGormTag(t, typ, "Status", "index")
	assertFieldType(t, typ, "Status", "models.Status")
	assertGormTag(t, typ, "Notes", "type:text")
	assertGormTag(t, typ, "HasPhoto", "default:false")
	assertGormTag(t, typ, "Apartment", "foreignKey:ApartmentID")
}

func TestDigestRun_Fields(t *testing.T) {
	typ := reflect.TypeOf(DigestRun{})

	assertGormTag(t, typ, "ID", "autoIncrement")
	assertGormTag(t, typ, "Channel", "index")
	assertGormTag(t, typ, "Error", "type:text")
}

func TestWorkItem_Instantiation(t *testing.T) {
	now := time.Now()
	aptID := uint(7)
	w := WorkItem{
		ID:          "a1b2",
		ReportID:    "r1",
		ApartmentID: &aptID,
		Category:    CategoryPlumbing,
		Description: "ברז מטבח",
		Status:      StatusDefect,
		Notes:       "נזילה",
		HasPhoto:    true,
		CreatedAt:   now,
	}
	if w.Category != "PLUMBING" || w.Status != "DEFECT" {
		t.Errorf("codes = %s/%s", w.Category, w.Status)
	}
	if *w.ApartmentID != 7 {
		t.Errorf("ApartmentID = %d, want 7", *w.ApartmentID)
	}
	if !w.HasPhoto {
		t.Error("HasPhoto = false")
	}
}

func TestStatus_Classes(t *testing.T) {
	tests := []struct {
		status   Status
		positive bool
		negative bool
	}{
		{StatusCompletedOK, true, false},
		{StatusCompleted, true, false},
		{StatusHandled, true, false},
		{StatusDefect, false, true},
		{StatusNotOK, false, true},
		{StatusInProgress, false, false},
		{StatusPending, false, false},
		{StatusNotStarted, false, false},
	}
	for _, tt := range tests {
		if got := tt.status.IsPositive(); got != tt.positive {
			t.Errorf("%s.IsPositive() = %v, want %v", tt.status, got, tt.positive)
		}
		if got := tt.status.IsNegative(); got != tt.negative {
			t.Errorf("%s.IsNegative() = %v, want %v", tt.status, got, tt.negative)
		}
		if !tt.status.Valid() {
			t.Errorf("%s.Valid() = false", tt.status)
		}
	}
	if Status("DONE").Valid() {
		t.Error(`Status("DONE").Valid() = true`)
	}
}

func TestCategory_Valid(t *testing.T) {
	if len(AllCategories) != 10 {
		t.Errorf("len(AllCategories) = %d, want 10", len(AllCategories))
	}
	for _, c := range AllCategories {
		if !c.Valid() {
			t.Errorf("%s.Valid() = false", c)
		}
	}
	if Category("ROOFING").Valid() {
		t.Error(`Category("ROOFING").Valid() = true`)
	}
}
