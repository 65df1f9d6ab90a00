package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	MembershipActive   = "active"
	MembershipInactive = "inactive"
	MembershipGuest    = "guest"
)

// Member is a club player. Flight is always derived from handicap at
// read time and never stored. Members are soft-deleted only, so
// historical scores and registrations keep a valid reference.
type Member struct {
	ID             uint           `json:"id" gorm:"primaryKey"`
	Name           string         `json:"name" gorm:"not null"`
	Email          string         `json:"email"`
	Phone          string         `json:"phone"`
	BaseHandicap   float64        `json:"base_handicap" gorm:"not null;default:0"`
	MembershipType string         `json:"membership_type" gorm:"not null;default:'active'"` // active, inactive, guest
	CreatedAt      time.Time      `json:"created_at"`
	UpdatedAt      time.Time      `json:"updated_at"`
	DeletedAt      gorm.DeletedAt `json:"-" gorm:"index"`
}
