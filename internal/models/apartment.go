package models

// Apartment is a unit within the project, keyed by its display number.
type Apartment struct {
	ID     uint   `gorm:"primaryKey;autoIncrement"`
	Number string `gorm:"size:16;uniqueIndex;not null"`
	Floor  *int
	Owner  string `gorm:"size:128"`
}

// Project stores instance-level settings seeded from the YAML config.
type Project struct {
	ID      uint   `gorm:"primaryKey;autoIncrement"`
	Name    string `gorm:"size:128;uniqueIndex"`
	Address string `gorm:"type:text"`
}
