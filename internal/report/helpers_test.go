package report

import (
	"testing"

	"github.com/sitewatch/sitewatch/internal/db"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	gormDB, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(gormDB); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return gormDB
}

func mustIngest(t *testing.T, gormDB *gorm.DB, ex *Extraction) string {
	t.Helper()
	rep, _, err := Ingest(gormDB, ex)
	if err != nil {
		t.Fatalf("Ingest(%s): %v", ex.FileName, err)
	}
	return rep.ID
}

func item(category, description, status, notes string) ExtractedWorkItem {
	return ExtractedWorkItem{Category: category, Description: description, Status: status, Notes: notes}
}
