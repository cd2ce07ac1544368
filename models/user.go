package models

import (
	"time"
)

// User is an account owning transactions and budgets.
type User struct {
	ID             uint `gorm:"primaryKey"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Username       string `gorm:"size:150;not null;unique"`
	HashedPassword []byte `gorm:"not null"`
	Transactions   []Transaction
	Budgets        []Budget
}
