package models

import (
	"time"

	"gorm.io/gorm"
)

// Score is one member's card for one event day: 18 hole strokes and the
// derived total. Unique on (event, member, day); submissions are upserts,
// so re-submitting overwrites and never duplicates.
type Score struct {
	ID        uint           `json:"id" gorm:"primaryKey"`
	EventID   uint           `json:"event_id" gorm:"not null;uniqueIndex:idx_event_member_day"`
	MemberID  uint           `json:"member_id" gorm:"not null;uniqueIndex:idx_event_member_day"`
	Day       int            `json:"day" gorm:"not null;uniqueIndex:idx_event_member_day"` // 1..3
	Holes     IntList        `json:"holes" gorm:"type:jsonb"`
	Total     int            `json:"total" gorm:"not null;default:0"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Member Member `json:"member,omitempty"`
}
