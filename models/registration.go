package models

import (
	"time"

	"gorm.io/gorm"
)

// Registration links a member to an event. One row per (event, member).
// AdjustedHandicap holds the raw admin input; it is parsed leniently at
// resolve time and a non-numeric value simply falls through to the next
// handicap source. FlightOverride pins a player to a flight (e.g. "L")
// regardless of the cutoff classification.
type Registration struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	EventID          uint           `json:"event_id" gorm:"not null;uniqueIndex:idx_event_member"`
	MemberID         uint           `json:"member_id" gorm:"not null;uniqueIndex:idx_event_member"`
	AdjustedHandicap string         `json:"adjusted_handicap"`
	FlightOverride   string         `json:"flight_override"`
	GuestCount       int            `json:"guest_count" gorm:"not null;default:0"`
	GuestNames       StringList     `json:"guest_names" gorm:"type:jsonb"`
	Sponsor          bool           `json:"sponsor" gorm:"not null;default:false"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Member Member `json:"member,omitempty"`
}
