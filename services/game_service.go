package services

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"strings"

	"clubhouse/models"
	"clubhouse/scoring"

	"gorm.io/gorm"
)

type GameService struct {
	db *gorm.DB
}

func NewGameService(db *gorm.DB) *GameService {
	return &GameService{db: db}
}

type GamePlayerRequest struct {
	Name            string `json:"name" binding:"required"`
	MemberID        *uint  `json:"member_id"`
	StrokesReceived int    `json:"strokes_received"`
}

type CreateGameRequest struct {
	Name           string              `json:"name" binding:"required"`
	GameType       string              `json:"game_type" binding:"required"`
	DollarPerPoint float64             `json:"dollar_per_point"`
	Front9Bet      float64             `json:"front9_bet"`
	Back9Bet       float64             `json:"back9_bet"`
	OverallBet     float64             `json:"overall_bet"`
	PotBet         float64             `json:"pot_bet"`
	Pars           []int               `json:"pars"`
	StrokeIndex    []int               `json:"stroke_index"`
	StrokesOnPar3s *bool               `json:"strokes_on_par3s"`
	Players        []GamePlayerRequest `json:"players"`
}

type UpdateGamePlayerRequest struct {
	Name            string   `json:"name" binding:"required"`
	MemberID        *uint    `json:"member_id"`
	StrokesReceived *int     `json:"strokes_received"`
	Points          *float64 `json:"points"`
	Holes           []int    `json:"holes"`
}

// SettlementView is the settlement response for any game type. Wolf and
// niners produce a transaction list; individual-net produces segment
// results.
type SettlementView struct {
	GameType     string                `json:"game_type"`
	Transactions []scoring.Transaction `json:"transactions,omitempty"`
	Match        *scoring.MatchResult  `json:"match,omitempty"`
}

func validGameType(t string) bool {
	switch t {
	case models.GameWolf, models.GameNiners, models.GameIndividualNet:
		return true
	}
	return false
}

func (s *GameService) CreateGame(req *CreateGameRequest) (*models.PersonalGame, error) {
	if !validGameType(req.GameType) {
		return nil, errors.New("invalid game type")
	}
	if req.Pars != nil && len(req.Pars) != 18 {
		return nil, errors.New("pars must list all 18 holes")
	}

	strokesOnPar3s := true
	if req.StrokesOnPar3s != nil {
		strokesOnPar3s = *req.StrokesOnPar3s
	}

	code, err := s.uniqueCode()
	if err != nil {
		return nil, err
	}

	game := models.PersonalGame{
		Name:           req.Name,
		Code:           code,
		GameType:       req.GameType,
		DollarPerPoint: req.DollarPerPoint,
		Front9Bet:      req.Front9Bet,
		Back9Bet:       req.Back9Bet,
		OverallBet:     req.OverallBet,
		PotBet:         req.PotBet,
		Pars:           req.Pars,
		StrokeIndex:    req.StrokeIndex,
		StrokesOnPar3s: strokesOnPar3s,
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&game).Error; err != nil {
			return err
		}
		for _, pReq := range req.Players {
			player := models.PersonalGamePlayer{
				GameID:          game.ID,
				Name:            pReq.Name,
				MemberID:        pReq.MemberID,
				StrokesReceived: pReq.StrokesReceived,
			}
			if err := tx.Create(&player).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetGame(game.ID)
}

func (s *GameService) GetGame(gameID uint) (*models.PersonalGame, error) {
	var game models.PersonalGame
	err := s.db.Preload("Players", func(db *gorm.DB) *gorm.DB {
		return db.Order("personal_game_players.id")
	}).First(&game, gameID).Error
	return &game, err
}

func (s *GameService) GetGameByCode(code string) (*models.PersonalGame, error) {
	var game models.PersonalGame
	err := s.db.Where("LOWER(code) = ?", strings.ToLower(code)).
		Preload("Players", func(db *gorm.DB) *gorm.DB {
			return db.Order("personal_game_players.id")
		}).First(&game).Error
	return &game, err
}

// UpsertPlayer adds a player to the game or updates their running
// points, strokes and hole scores. Players are unique by name within a
// game.
func (s *GameService) UpsertPlayer(gameID uint, req *UpdateGamePlayerRequest) (*models.PersonalGamePlayer, error) {
	if _, err := s.GetGame(gameID); err != nil {
		return nil, errors.New("game not found")
	}
	if req.Holes != nil && len(req.Holes) != 18 {
		return nil, errors.New("holes must list all 18 strokes")
	}

	var player models.PersonalGamePlayer
	err := s.db.Where("game_id = ? AND name = ?", gameID, req.Name).First(&player).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		player = models.PersonalGamePlayer{GameID: gameID, Name: req.Name}
	} else if err != nil {
		return nil, err
	}

	if req.MemberID != nil {
		player.MemberID = req.MemberID
	}
	if req.StrokesReceived != nil {
		player.StrokesReceived = *req.StrokesReceived
	}
	if req.Points != nil {
		player.Points = *req.Points
	}
	if req.Holes != nil {
		player.Holes = req.Holes
	}

	if err := s.db.Save(&player).Error; err != nil {
		return nil, err
	}
	return &player, nil
}

// Settle runs the settlement algorithm the game's type selects.
func (s *GameService) Settle(gameID uint) (*SettlementView, error) {
	game, err := s.GetGame(gameID)
	if err != nil {
		return nil, errors.New("game not found")
	}
	if len(game.Players) == 0 {
		return nil, errors.New("game has no players")
	}

	view := &SettlementView{GameType: game.GameType}
	switch game.GameType {
	case models.GameWolf, models.GameNiners:
		points := make([]scoring.PlayerPoints, len(game.Players))
		for i, p := range game.Players {
			points[i] = scoring.PlayerPoints{
				PlayerID: p.ID,
				Name:     p.Name,
				Points:   p.Points,
			}
		}
		txns, err := scoring.SettlePoints(points, game.DollarPerPoint)
		if err != nil {
			return nil, err
		}
		view.Transactions = txns

	case models.GameIndividualNet:
		players := make([]scoring.MatchPlayer, len(game.Players))
		for i, p := range game.Players {
			players[i] = scoring.MatchPlayer{
				PlayerID:        p.ID,
				Name:            p.Name,
				Holes:           p.Holes,
				StrokesReceived: p.StrokesReceived,
			}
		}
		result := scoring.SettleMatch(players, scoring.MatchConfig{
			Pars:           game.Pars,
			StrokeIndex:    game.StrokeIndex,
			StrokesOnPar3s: game.StrokesOnPar3s,
			Front9Bet:      game.Front9Bet,
			Back9Bet:       game.Back9Bet,
			OverallBet:     game.OverallBet,
			PotBet:         game.PotBet,
		})
		view.Match = &result

	default:
		return nil, errors.New("invalid game type")
	}
	return view, nil
}

// uniqueCode draws join codes until one is unused. The unique index on
// code backstops the narrow window between the check and the insert.
func (s *GameService) uniqueCode() (string, error) {
	for attempt := 0; attempt < 5; attempt++ {
		code, err := generateCode()
		if err != nil {
			return "", err
		}
		var count int64
		if err := s.db.Model(&models.PersonalGame{}).
			Where("code = ?", code).Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return code, nil
		}
	}
	return "", errors.New("could not allocate a unique join code")
}

func generateCode() (string, error) {
	bytes := make([]byte, 3)
	if _, err := rand.Read(bytes); err != nil {
		return "", err
	}
	return hex.EncodeToString(bytes), nil
}
