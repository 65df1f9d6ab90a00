package models

import (
	"time"

	"gorm.io/gorm"
)

// Grouping is the pairing for one starting hole on one event day: an
// ordered 4-slot cart assignment. A nil slot is unfilled.
type Grouping struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	EventID   uint           `json:"event_id" gorm:"not null;uniqueIndex:idx_event_day_hole"`
	Day       int            `json:"day" gorm:"not null;uniqueIndex:idx_event_day_hole"`
	Hole      int            `json:"hole" gorm:"not null;uniqueIndex:idx_event_day_hole"` // 1..18
	Slot1     *uint          `json:"slot1"`
	Slot2     *uint          `json:"slot2"`
	Slot3     *uint          `json:"slot3"`
	Slot4     *uint          `json:"slot4"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

// Slots returns the ordered member references, nil for empty seats.
func (g *Grouping) Slots() [4]*uint {
	return [4]*uint{g.Slot1, g.Slot2, g.Slot3, g.Slot4}
}
