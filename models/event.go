package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	EventUpcoming = "upcoming"
	EventActive   = "active"
	EventLocked   = "locked"
	EventComplete = "complete"
)

const (
	StartTeeTime = "tee_time"
	StartShotgun = "shotgun"
)

// Event is a club tournament of one to three days. Flight cutoffs are
// nullable: a nil cutoff means no ceiling for that flight.
type Event struct {
	ID                uint           `json:"id" gorm:"primaryKey"`
	Name              string         `json:"name" gorm:"not null"`
	Status            string         `json:"status" gorm:"not null;default:'upcoming'"` // upcoming, active, locked, complete
	FlightACutoff     *float64       `json:"flight_a_cutoff"`
	FlightBCutoff     *float64       `json:"flight_b_cutoff"`
	UseCourseHandicap bool           `json:"use_course_handicap" gorm:"not null;default:false"`
	EntryFee          float64        `json:"entry_fee" gorm:"not null;default:0"`
	Prizes            PrizeConfig    `json:"prizes" gorm:"type:jsonb"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Days          []EventDay     `json:"days,omitempty" gorm:"foreignKey:EventID"`
	Registrations []Registration `json:"registrations,omitempty" gorm:"foreignKey:EventID"`
}

// EventDay is one playing day. The legacy flat day1*/day2*/day3* shape
// is projected from these rows at the storage boundary only.
type EventDay struct {
	ID          uint           `json:"id" gorm:"primaryKey"`
	EventID     uint           `json:"event_id" gorm:"not null;uniqueIndex:idx_event_day"`
	DayNumber   int            `json:"day_number" gorm:"not null;uniqueIndex:idx_event_day"` // 1..3
	Date        *time.Time     `json:"date"`
	StartType   string         `json:"start_type" gorm:"not null;default:'tee_time'"` // tee_time, shotgun
	LeadingHole int            `json:"leading_hole" gorm:"not null;default:1"`
	Pars        IntList        `json:"pars" gorm:"type:jsonb"`
	StrokeIndex IntList        `json:"stroke_index" gorm:"type:jsonb"`
	CourseSlope *float64       `json:"course_slope"`
	CourseRate  *float64       `json:"course_rating"`
	CoursePar   *int           `json:"course_par"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}
