package models

import "time"

// Report is one ingested inspection report.
type Report struct {
	ID         string    `gorm:"primaryKey;size:36"`
	Seq        uint      `gorm:"uniqueIndex;not null"`
	ReportDate time.Time `gorm:"index;not null"`
	FileName   string    `gorm:"size:256"`
	Inspector  string    `gorm:"size:128"`
	CreatedAt  time.Time

	Items []WorkItem `gorm:"foreignKey:ReportID"`
}

// WorkItem is one extracted task row. ApartmentID is nil for the site
// development bucket.
type WorkItem struct {
	ID                string   `gorm:"primaryKey;size:36"`
	ReportID          string   `gorm:"size:36;not null;index"`
	ApartmentID       *uint    `gorm:"index"`
	Position          int      `gorm:"not null;default:0"`
	Category          Category `gorm:"size:32;not null;index"`
	RawCategory       string   `gorm:"size:128"`
	Location          string   `gorm:"size:256"`
	Description       string   `gorm:"type:text;not null"`
	Status            Status   `gorm:"size:32;not null;index"`
	RawStatus         string   `gorm:"size:256"`
	Notes             string   `gorm:"type:text"`
	HasPhoto          bool     `gorm:"default:false"`
	NormalizationMiss bool     `gorm:"default:false"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Report    Report     `gorm:"foreignKey:ReportID"`
	Apartment *Apartment `gorm:"foreignKey:ApartmentID"`
}
