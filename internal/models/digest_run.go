package models

import "time"

// DigestRun records one attempt to post the progress digest.
type DigestRun struct {
	ID              uint   `gorm:"primaryKey;autoIncrement"`
	Channel         string `gorm:"size:64;index"`
	MessageTS       string `gorm:"size:32"`
	OverallProgress int
	Error           string `gorm:"type:text"`
	CreatedAt       time.Time
}
