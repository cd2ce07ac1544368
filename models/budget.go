package models

import "time"

// Budget is a per-category spending limit belonging to a user. Category
// is free text and deliberately not unique per user; duplicate rows are
// reported independently by the status computation.
type Budget struct {
	ID          uint `gorm:"primaryKey"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
	UserID      uint   `gorm:"index;not null"`
	Category    string `gorm:"size:50"`
	LimitAmount float64
}
