package services

import (
	"encoding/hex"
	"strings"
	"testing"

	"clubhouse/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flatCourse() ([]int, []int) {
	pars := make([]int, 18)
	idx := make([]int, 18)
	for i := range pars {
		pars[i] = 4
		idx[i] = i + 1
	}
	return pars, idx
}

func TestCreateGameGeneratesJoinCode(t *testing.T) {
	db := testDB(t)
	svc := NewGameService(db)

	game, err := svc.CreateGame(&CreateGameRequest{
		Name:     "Saturday Wolf",
		GameType: models.GameWolf,
		Players: []GamePlayerRequest{
			{Name: "Ann"}, {Name: "Ben"},
		},
	})

	require.NoError(t, err)
	assert.Len(t, game.Code, 6)
	require.Len(t, game.Players, 2)

	// Code lookup is case-insensitive.
	found, err := svc.GetGameByCode(strings.ToUpper(game.Code))
	require.NoError(t, err)
	assert.Equal(t, game.ID, found.ID)
}

func TestGenerateCodeIsSixHexChars(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 64; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		assert.Len(t, code, 6)
		_, err = hex.DecodeString(code)
		assert.NoError(t, err)
		seen[code] = true
	}
	assert.Greater(t, len(seen), 1, "codes are drawn randomly")
}

func TestCreateGameRejectsBadType(t *testing.T) {
	db := testDB(t)
	svc := NewGameService(db)

	_, err := svc.CreateGame(&CreateGameRequest{Name: "Skins", GameType: "skins"})
	assert.Error(t, err)
}

func TestUpsertPlayerUniqueByName(t *testing.T) {
	db := testDB(t)
	svc := NewGameService(db)

	game, err := svc.CreateGame(&CreateGameRequest{
		Name:     "Niners",
		GameType: models.GameNiners,
	})
	require.NoError(t, err)

	points := 4.0
	_, err = svc.UpsertPlayer(game.ID, &UpdateGamePlayerRequest{Name: "Ann", Points: &points})
	require.NoError(t, err)

	points = 9.0
	player, err := svc.UpsertPlayer(game.ID, &UpdateGamePlayerRequest{Name: "Ann", Points: &points})
	require.NoError(t, err)
	assert.Equal(t, 9.0, player.Points)

	refreshed, err := svc.GetGame(game.ID)
	require.NoError(t, err)
	assert.Len(t, refreshed.Players, 1, "same name updates in place")
}

func TestSettleWolfGame(t *testing.T) {
	db := testDB(t)
	svc := NewGameService(db)

	game, err := svc.CreateGame(&CreateGameRequest{
		Name:           "Wolf",
		GameType:       models.GameWolf,
		DollarPerPoint: 0.50,
	})
	require.NoError(t, err)

	for name, pts := range map[string]float64{"Ann": 6, "Ben": -2, "Cal": -4} {
		p := pts
		_, err := svc.UpsertPlayer(game.ID, &UpdateGamePlayerRequest{Name: name, Points: &p})
		require.NoError(t, err)
	}

	view, err := svc.Settle(game.ID)
	require.NoError(t, err)
	assert.Equal(t, models.GameWolf, view.GameType)
	assert.Nil(t, view.Match)

	total := 0.0
	for _, tx := range view.Transactions {
		assert.Equal(t, "Ann", tx.To)
		total += tx.Amount
	}
	assert.Equal(t, 3.0, total)
}

func TestSettleIndividualNetGame(t *testing.T) {
	db := testDB(t)
	svc := NewGameService(db)
	pars, idx := flatCourse()

	game, err := svc.CreateGame(&CreateGameRequest{
		Name:        "Net Match",
		GameType:    models.GameIndividualNet,
		OverallBet:  10,
		Pars:        pars,
		StrokeIndex: idx,
	})
	require.NoError(t, err)

	strokes := 9
	_, err = svc.UpsertPlayer(game.ID, &UpdateGamePlayerRequest{Name: "Ann", Holes: holesOf(5)})
	require.NoError(t, err)
	_, err = svc.UpsertPlayer(game.ID, &UpdateGamePlayerRequest{
		Name: "Ben", Holes: holesOf(5), StrokesReceived: &strokes,
	})
	require.NoError(t, err)

	view, err := svc.Settle(game.ID)
	require.NoError(t, err)
	require.NotNil(t, view.Match)
	assert.Empty(t, view.Transactions)

	require.Len(t, view.Match.Segments, 1)
	require.Len(t, view.Match.Segments[0].Winners, 1)
	assert.Equal(t, "Ben", view.Match.Segments[0].Winners[0].Name)
	assert.Equal(t, 10.0, view.Match.Segments[0].Winners[0].Share)
}

func TestSettleRejectsEmptyGame(t *testing.T) {
	db := testDB(t)
	svc := NewGameService(db)

	game, err := svc.CreateGame(&CreateGameRequest{Name: "Wolf", GameType: models.GameWolf})
	require.NoError(t, err)

	_, err = svc.Settle(game.ID)
	assert.Error(t, err)
}
