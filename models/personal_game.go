package models

import (
	"time"

	"gorm.io/gorm"
)

const (
	GameWolf          = "wolf"
	GameNiners        = "niners"
	GameIndividualNet = "individual_net"
)

// PersonalGame is an informal out-of-tournament game. The game type tag
// selects which settlement algorithm applies when the game is settled.
// Wolf/niners per-hole allocation happens on the course; the players'
// running point totals are what the settlement consumes.
type PersonalGame struct {
	ID               uint           `json:"id" gorm:"primaryKey"`
	Name             string         `json:"name" gorm:"not null"`
	Code             string         `json:"code" gorm:"uniqueIndex;not null"`
	GameType         string         `json:"game_type" gorm:"not null"` // wolf, niners, individual_net
	DollarPerPoint   float64        `json:"dollar_per_point" gorm:"not null;default:0"`
	Front9Bet        float64        `json:"front9_bet" gorm:"not null;default:0"`
	Back9Bet         float64        `json:"back9_bet" gorm:"not null;default:0"`
	OverallBet       float64        `json:"overall_bet" gorm:"not null;default:0"`
	PotBet           float64        `json:"pot_bet" gorm:"not null;default:0"`
	Pars             IntList        `json:"pars" gorm:"type:jsonb"`
	StrokeIndex      IntList        `json:"stroke_index" gorm:"type:jsonb"`
	StrokesOnPar3s   bool           `json:"strokes_on_par3s" gorm:"not null;default:true"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `json:"-" gorm:"index"`

	// Relationships
	Players []PersonalGamePlayer `json:"players,omitempty" gorm:"foreignKey:GameID"`
}

// PersonalGamePlayer is one participant. MemberID is optional; casual
// games often include non-members identified by name only.
type PersonalGamePlayer struct {
	ID              uint           `json:"id" gorm:"primaryKey"`
	GameID          uint           `json:"game_id" gorm:"not null;uniqueIndex:idx_game_player"`
	Name            string         `json:"name" gorm:"not null;uniqueIndex:idx_game_player"`
	MemberID        *uint          `json:"member_id"`
	StrokesReceived int            `json:"strokes_received" gorm:"not null;default:0"`
	Points          float64        `json:"points" gorm:"not null;default:0"`
	Holes           IntList        `json:"holes" gorm:"type:jsonb"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `json:"-" gorm:"index"`
}
