package services

import (
	"context"
	"testing"

	"clubhouse/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	return redis.NewClient(&redis.Options{Addr: mr.Addr()})
}

func TestSubmitScoreComputesTotal(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db, "Ann", 10)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, nil, nil)

	score, err := svc.SubmitScore(event.ID, &SubmitScoreRequest{
		MemberID: member.ID,
		Day:      1,
		Holes:    holesOf(4),
	}, nil)

	require.NoError(t, err)
	assert.Equal(t, 72, score.Total)
}

func TestSubmitScoreUpsertIsIdempotent(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db, "Ann", 10)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, nil, nil)

	req := &SubmitScoreRequest{MemberID: member.ID, Day: 1, Holes: holesOf(5)}
	_, err := svc.SubmitScore(event.ID, req, nil)
	require.NoError(t, err)

	// The corrected card replaces the first one.
	req.Holes = holesOf(4)
	_, err = svc.SubmitScore(event.ID, req, nil)
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Score{}).
		Where("event_id = ? AND member_id = ? AND day = ?", event.ID, member.ID, 1).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "resubmission must not duplicate the card")

	stored, err := svc.GetScore(event.ID, member.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 72, stored.Total)
}

func TestSubmitScoreSeparateDaysAreSeparateCards(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db, "Ann", 10)
	event := createTestEvent(t, db, 2)
	svc := NewScoreService(db, nil, nil)

	_, err := svc.SubmitScore(event.ID, &SubmitScoreRequest{MemberID: member.ID, Day: 1, Holes: holesOf(4)}, nil)
	require.NoError(t, err)
	_, err = svc.SubmitScore(event.ID, &SubmitScoreRequest{MemberID: member.ID, Day: 2, Holes: holesOf(5)}, nil)
	require.NoError(t, err)

	scores, err := svc.GetScores(event.ID, 0)
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestSubmitScoreRejectsShortCard(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db, "Ann", 10)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, nil, nil)

	_, err := svc.SubmitScore(event.ID, &SubmitScoreRequest{
		MemberID: member.ID,
		Day:      1,
		Holes:    []int{4, 4, 4},
	}, nil)
	assert.Error(t, err)
}

func TestSubmitScoreRejectsLockedEvent(t *testing.T) {
	db := testDB(t)
	member := createTestMember(t, db, "Ann", 10)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, nil, nil)

	_, err := NewEventService(db, nil).UpdateStatus(event.ID, models.EventLocked)
	require.NoError(t, err)

	_, err = svc.SubmitScore(event.ID, &SubmitScoreRequest{
		MemberID: member.ID,
		Day:      1,
		Holes:    holesOf(4),
	}, nil)
	assert.Error(t, err)
}

func TestSubmitScoreRejectsUnknownMember(t *testing.T) {
	db := testDB(t)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, nil, nil)

	_, err := svc.SubmitScore(event.ID, &SubmitScoreRequest{
		MemberID: 999,
		Day:      1,
		Holes:    holesOf(4),
	}, nil)
	assert.Error(t, err)
}

func TestSyncPendingDeletesSyncedAndRetainsFailed(t *testing.T) {
	db := testDB(t)
	rdb := testRedis(t)
	member := createTestMember(t, db, "Ann", 10)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, rdb, nil)

	require.NoError(t, svc.QueueOffline(event.ID, &SubmitScoreRequest{
		MemberID: member.ID, Day: 1, Holes: holesOf(4),
	}))
	// A card for a member that does not exist cannot replay.
	require.NoError(t, svc.QueueOffline(event.ID, &SubmitScoreRequest{
		MemberID: 999, Day: 1, Holes: holesOf(5),
	}))

	result, err := svc.SyncPending(event.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Equal(t, 1, result.Failed)

	ctx := context.Background()
	exists, err := rdb.Exists(ctx, pendingKey(event.ID, 1, member.ID)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "the synced key is deleted")

	exists, err = rdb.Exists(ctx, pendingKey(event.ID, 1, 999)).Result()
	require.NoError(t, err)
	assert.Equal(t, int64(1), exists, "the failed key is retained for the next pass")

	stored, err := svc.GetScore(event.ID, member.ID, 1)
	require.NoError(t, err)
	assert.Equal(t, 72, stored.Total)
}

func TestSyncPendingRetryAfterFailure(t *testing.T) {
	db := testDB(t)
	rdb := testRedis(t)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, rdb, nil)

	require.NoError(t, svc.QueueOffline(event.ID, &SubmitScoreRequest{
		MemberID: 42, Day: 1, Holes: holesOf(4),
	}))

	result, err := svc.SyncPending(event.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Failed)

	// The member shows up late; the retained key now replays cleanly.
	member := &models.Member{Name: "Late Ann", MembershipType: models.MembershipActive}
	member.ID = 42
	require.NoError(t, db.Create(member).Error)

	result, err = svc.SyncPending(event.ID, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, 1, result.Synced)
	assert.Zero(t, result.Failed)

	exists, err := rdb.Exists(context.Background(), pendingKey(event.ID, 1, 42)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists)
}

func TestSyncPendingDropsUnreadableKeys(t *testing.T) {
	db := testDB(t)
	rdb := testRedis(t)
	event := createTestEvent(t, db, 1)
	svc := NewScoreService(db, rdb, nil)

	ctx := context.Background()
	require.NoError(t, rdb.Set(ctx, pendingKey(event.ID, 1, 7), "{not json", 0).Err())

	result, err := svc.SyncPending(event.ID, 1, nil)
	require.NoError(t, err)
	assert.Zero(t, result.Synced)
	assert.Zero(t, result.Failed)

	exists, err := rdb.Exists(ctx, pendingKey(event.ID, 1, 7)).Result()
	require.NoError(t, err)
	assert.Zero(t, exists, "garbage keys are dropped, not retried forever")
}
