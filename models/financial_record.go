package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	RecordExpense = "expense"
	RecordIncome  = "income"
)

// FinancialRecord is a per-event income or expense line item.
// Registration-fee income is computed on the fly from the event's entry
// fee and its registrations; it is never materialized as a record.
type FinancialRecord struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	EventID     uint           `json:"event_id" gorm:"not null;index"`
	Kind        string         `json:"kind" gorm:"not null"` // expense, income
	Amount      float64        `json:"amount" gorm:"not null"`
	Category    string         `json:"category"`
	Description string         `json:"description"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
