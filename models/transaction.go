package models

import "time"

// Known transaction types. Type is stored as plain text; the append
// handler constrains new rows to these two values.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Transaction is a dated money movement belonging to a user. Rows are
// append-only: no update or delete path exists.
type Transaction struct {
	ID        uint `gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	UserID    uint   `gorm:"index;not null"`
	Type      string `gorm:"size:10"`
	Amount    float64
	Category  string    `gorm:"size:50"`
	Date      time.Time `gorm:"not null"`
}
