package services

import (
	"testing"

	"clubhouse/models"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// testDB opens an in-memory sqlite database with the full schema. The
// pool is pinned to one connection so every query sees the same
// in-memory file.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Member{},
		&models.Event{},
		&models.EventDay{},
		&models.Registration{},
		&models.Score{},
		&models.Grouping{},
		&models.PersonalGame{},
		&models.PersonalGamePlayer{},
		&models.FinancialRecord{},
	))
	return db
}

func createTestMember(t *testing.T, db *gorm.DB, name string, handicap float64) *models.Member {
	t.Helper()
	member := &models.Member{
		Name:           name,
		BaseHandicap:   handicap,
		MembershipType: models.MembershipActive,
	}
	require.NoError(t, db.Create(member).Error)
	return member
}

func createTestEvent(t *testing.T, db *gorm.DB, days int) *models.Event {
	t.Helper()
	svc := NewEventService(db, nil)

	req := &CreateEventRequest{Name: "Club Championship"}
	for d := 1; d <= days; d++ {
		req.Days = append(req.Days, EventDayRequest{DayNumber: d})
	}
	event, err := svc.CreateEvent(req)
	require.NoError(t, err)
	return event
}

func holesOf(strokes int) []int {
	holes := make([]int, 18)
	for i := range holes {
		holes[i] = strokes
	}
	return holes
}
