package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"clubhouse/logger"
	"clubhouse/models"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ScoreService struct {
	db     *gorm.DB
	redis  *redis.Client
	events *EventService
}

func NewScoreService(db *gorm.DB, redis *redis.Client, events *EventService) *ScoreService {
	return &ScoreService{db: db, redis: redis, events: events}
}

type SubmitScoreRequest struct {
	MemberID uint  `json:"member_id" binding:"required"`
	Day      int   `json:"day" binding:"required,min=1,max=3"`
	Holes    []int `json:"holes" binding:"required"`
}

// SubmitScore upserts a card on its (event, member, day) key: a
// re-submission overwrites the previous card and never duplicates it.
// The total is recomputed server-side. Connected clients get a
// notify-and-refetch ping.
func (s *ScoreService) SubmitScore(eventID uint, req *SubmitScoreRequest, hub *Hub) (*models.Score, error) {
	if len(req.Holes) != 18 {
		return nil, errors.New("holes must list all 18 strokes")
	}
	for _, strokes := range req.Holes {
		if strokes < 0 {
			return nil, errors.New("hole strokes cannot be negative")
		}
	}

	var event models.Event
	if err := s.db.First(&event, eventID).Error; err != nil {
		return nil, errors.New("event not found")
	}
	if event.Status == models.EventLocked || event.Status == models.EventComplete {
		return nil, fmt.Errorf("event is %s - scoring closed", event.Status)
	}

	var member models.Member
	if err := s.db.First(&member, req.MemberID).Error; err != nil {
		return nil, errors.New("member not found")
	}

	total := 0
	for _, strokes := range req.Holes {
		total += strokes
	}

	score := models.Score{
		EventID:  eventID,
		MemberID: req.MemberID,
		Day:      req.Day,
		Holes:    req.Holes,
		Total:    total,
	}

	err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "event_id"}, {Name: "member_id"}, {Name: "day"}},
		DoUpdates: clause.AssignmentColumns([]string{"holes", "total", "updated_at"}),
	}).Create(&score).Error
	if err != nil {
		return nil, err
	}

	if s.events != nil {
		s.events.invalidateLeaderboard(eventID)
	}
	if hub != nil {
		hub.BroadcastToEvent(fmt.Sprint(eventID), "score_update", map[string]interface{}{
			"event_id":  eventID,
			"member_id": req.MemberID,
			"day":       req.Day,
		})
	}

	logger.WithEvent(eventID).WithField("member_id", req.MemberID).
		WithField("day", req.Day).Info("score submitted")
	return &score, nil
}

func (s *ScoreService) GetScores(eventID uint, day int) ([]models.Score, error) {
	var scores []models.Score
	query := s.db.Where("event_id = ?", eventID).Preload("Member")
	if day > 0 {
		query = query.Where("day = ?", day)
	}
	err := query.Order("member_id").Find(&scores).Error
	return scores, err
}

func (s *ScoreService) GetScore(eventID, memberID uint, day int) (*models.Score, error) {
	var score models.Score
	err := s.db.Where("event_id = ? AND member_id = ? AND day = ?", eventID, memberID, day).
		First(&score).Error
	return &score, err
}

type pendingScore struct {
	MemberID uint  `json:"member_id"`
	Day      int   `json:"day"`
	Holes    []int `json:"holes"`
}

func pendingKey(eventID uint, day int, memberID uint) string {
	return fmt.Sprintf("pending:%d:%d:%d", eventID, day, memberID)
}

// QueueOffline stores a score submission in Redis for a later replay,
// keyed by (event, day, member). A re-queue for the same key overwrites
// the earlier card, matching the upsert it will eventually become.
func (s *ScoreService) QueueOffline(eventID uint, req *SubmitScoreRequest) error {
	if len(req.Holes) != 18 {
		return errors.New("holes must list all 18 strokes")
	}
	data, err := json.Marshal(pendingScore{
		MemberID: req.MemberID,
		Day:      req.Day,
		Holes:    req.Holes,
	})
	if err != nil {
		return err
	}
	return s.redis.Set(context.Background(), pendingKey(eventID, req.Day, req.MemberID), data, 0).Err()
}

// SyncResult reports one offline replay pass.
type SyncResult struct {
	Synced int `json:"synced"`
	Failed int `json:"failed"`
}

// SyncPending replays every queued score for the event day as an
// independent upsert. Synced keys are deleted; failed keys are retained
// for a future retry, so delivery is at-least-once. Replaying the same
// card twice is harmless because the upsert key is (event, member, day).
func (s *ScoreService) SyncPending(eventID uint, day int, hub *Hub) (*SyncResult, error) {
	ctx := context.Background()
	keys, err := s.redis.Keys(ctx, fmt.Sprintf("pending:%d:%d:*", eventID, day)).Result()
	if err != nil {
		return nil, err
	}

	result := &SyncResult{}
	for _, key := range keys {
		data, err := s.redis.Get(ctx, key).Result()
		if err != nil {
			result.Failed++
			continue
		}

		var pending pendingScore
		if err := json.Unmarshal([]byte(data), &pending); err != nil {
			logger.WithEvent(eventID).WithError(err).
				WithField("key", key).Warn("dropping unreadable pending score")
			s.redis.Del(ctx, key)
			continue
		}

		_, err = s.SubmitScore(eventID, &SubmitScoreRequest{
			MemberID: pending.MemberID,
			Day:      pending.Day,
			Holes:    pending.Holes,
		}, hub)
		if err != nil {
			logger.WithEvent(eventID).WithError(err).
				WithField("key", key).Warn("pending score replay failed, retained")
			result.Failed++
			continue
		}

		s.redis.Del(ctx, key)
		result.Synced++
	}
	return result, nil
}
