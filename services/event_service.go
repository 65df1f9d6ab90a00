package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"clubhouse/logger"
	"clubhouse/models"
	"clubhouse/scoring"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const leaderboardTTL = 5 * time.Minute

type EventService struct {
	db    *gorm.DB
	redis *redis.Client
}

func NewEventService(db *gorm.DB, redis *redis.Client) *EventService {
	return &EventService{db: db, redis: redis}
}

type EventDayRequest struct {
	DayNumber   int        `json:"day_number" binding:"required,min=1,max=3"`
	Date        *time.Time `json:"date"`
	StartType   string     `json:"start_type"`
	LeadingHole int        `json:"leading_hole"`
	Pars        []int      `json:"pars"`
	StrokeIndex []int      `json:"stroke_index"`
	CourseSlope *float64   `json:"course_slope"`
	CourseRate  *float64   `json:"course_rating"`
	CoursePar   *int       `json:"course_par"`
}

type CreateEventRequest struct {
	Name              string             `json:"name" binding:"required"`
	FlightACutoff     *float64           `json:"flight_a_cutoff"`
	FlightBCutoff     *float64           `json:"flight_b_cutoff"`
	UseCourseHandicap bool               `json:"use_course_handicap"`
	EntryFee          float64            `json:"entry_fee"`
	Prizes            models.PrizeConfig `json:"prizes"`
	Days              []EventDayRequest  `json:"days" binding:"required,min=1,max=3"`
}

type UpdateEventRequest struct {
	Name              string             `json:"name"`
	FlightACutoff     *float64           `json:"flight_a_cutoff"`
	FlightBCutoff     *float64           `json:"flight_b_cutoff"`
	UseCourseHandicap *bool              `json:"use_course_handicap"`
	EntryFee          *float64           `json:"entry_fee"`
	Prizes            models.PrizeConfig `json:"prizes"`
	Days              []EventDayRequest  `json:"days"`
}

type RegisterMemberRequest struct {
	MemberID         uint     `json:"member_id" binding:"required"`
	AdjustedHandicap string   `json:"adjusted_handicap"`
	FlightOverride   string   `json:"flight_override"`
	GuestCount       int      `json:"guest_count"`
	GuestNames       []string `json:"guest_names"`
	Sponsor          bool     `json:"sponsor"`
}

type GroupingRequest struct {
	Slots [4]*uint `json:"slots"`
}

// FlightAssignment is one row of the flight sheet.
type FlightAssignment struct {
	MemberID uint    `json:"member_id"`
	Name     string  `json:"name"`
	Handicap float64 `json:"handicap"`
	Label    string  `json:"label"`
	Flight   string  `json:"flight"`
}

// LeaderboardView is the ranked standings for an event: independently
// ranked flight partitions plus a cross-flight ranking of the whole
// field.
type LeaderboardView struct {
	EventID uint                             `json:"event_id"`
	Day     int                              `json:"day"` // 0 = all days aggregated
	Flights map[string][]scoring.RankedEntry `json:"flights"`
	Overall []scoring.RankedEntry            `json:"overall"`
}

func dayFromRequest(eventID uint, req EventDayRequest) (models.EventDay, error) {
	startType := req.StartType
	if startType == "" {
		startType = models.StartTeeTime
	}
	if startType != models.StartTeeTime && startType != models.StartShotgun {
		return models.EventDay{}, errors.New("invalid start type")
	}
	if req.Pars != nil && len(req.Pars) != 18 {
		return models.EventDay{}, errors.New("pars must list all 18 holes")
	}
	leadingHole := req.LeadingHole
	if leadingHole == 0 {
		leadingHole = 1
	}
	return models.EventDay{
		EventID:     eventID,
		DayNumber:   req.DayNumber,
		Date:        req.Date,
		StartType:   startType,
		LeadingHole: leadingHole,
		Pars:        req.Pars,
		StrokeIndex: req.StrokeIndex,
		CourseSlope: req.CourseSlope,
		CourseRate:  req.CourseRate,
		CoursePar:   req.CoursePar,
	}, nil
}

func (s *EventService) CreateEvent(req *CreateEventRequest) (*models.Event, error) {
	event := models.Event{
		Name:              req.Name,
		Status:            models.EventUpcoming,
		FlightACutoff:     req.FlightACutoff,
		FlightBCutoff:     req.FlightBCutoff,
		UseCourseHandicap: req.UseCourseHandicap,
		EntryFee:          req.EntryFee,
		Prizes:            req.Prizes,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&event).Error; err != nil {
			return err
		}
		for _, dayReq := range req.Days {
			day, err := dayFromRequest(event.ID, dayReq)
			if err != nil {
				return err
			}
			if err := tx.Create(&day).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return s.GetEvent(event.ID)
}

func (s *EventService) GetEvent(eventID uint) (*models.Event, error) {
	var event models.Event
	err := s.db.
		Preload("Days", func(db *gorm.DB) *gorm.DB {
			return db.Order("event_days.day_number")
		}).
		Preload("Registrations.Member").
		First(&event, eventID).Error
	return &event, err
}

func (s *EventService) ListEvents(status string) ([]models.Event, error) {
	var events []models.Event
	query := s.db.Preload("Days", func(db *gorm.DB) *gorm.DB {
		return db.Order("event_days.day_number")
	}).Order("created_at DESC")
	if status != "" {
		query = query.Where("status = ?", status)
	}
	err := query.Find(&events).Error
	return events, err
}

func (s *EventService) UpdateEvent(eventID uint, req *UpdateEventRequest) (*models.Event, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		event.Name = req.Name
	}
	if req.FlightACutoff != nil {
		event.FlightACutoff = req.FlightACutoff
	}
	if req.FlightBCutoff != nil {
		event.FlightBCutoff = req.FlightBCutoff
	}
	if req.UseCourseHandicap != nil {
		event.UseCourseHandicap = *req.UseCourseHandicap
	}
	if req.EntryFee != nil {
		event.EntryFee = *req.EntryFee
	}
	if req.Prizes != nil {
		event.Prizes = req.Prizes
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(event).Error; err != nil {
			return err
		}
		// Days are replaced wholesale when provided.
		if req.Days != nil {
			if err := tx.Where("event_id = ?", eventID).Delete(&models.EventDay{}).Error; err != nil {
				return err
			}
			for _, dayReq := range req.Days {
				day, err := dayFromRequest(eventID, dayReq)
				if err != nil {
					return err
				}
				if err := tx.Create(&day).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.invalidateLeaderboard(eventID)
	return s.GetEvent(eventID)
}

func (s *EventService) UpdateStatus(eventID uint, status string) (*models.Event, error) {
	switch status {
	case models.EventUpcoming, models.EventActive, models.EventLocked, models.EventComplete:
	default:
		return nil, errors.New("invalid event status")
	}

	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, err
	}
	if err := s.db.Model(event).Update("status", status).Error; err != nil {
		return nil, err
	}
	event.Status = status
	return event, nil
}

// Register upserts the (event, member) registration: registering twice
// updates the existing row instead of duplicating it.
func (s *EventService) Register(eventID uint, req *RegisterMemberRequest) (*models.Registration, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}
	if event.Status == models.EventLocked || event.Status == models.EventComplete {
		return nil, fmt.Errorf("event is %s - registration closed", event.Status)
	}

	switch req.FlightOverride {
	case "", scoring.FlightA, scoring.FlightB, scoring.FlightC, scoring.FlightL:
	default:
		return nil, errors.New("invalid flight override")
	}

	var member models.Member
	if err := s.db.First(&member, req.MemberID).Error; err != nil {
		return nil, errors.New("member not found")
	}

	var reg models.Registration
	err = s.db.Where("event_id = ? AND member_id = ?", eventID, req.MemberID).First(&reg).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		reg = models.Registration{EventID: eventID, MemberID: req.MemberID}
	} else if err != nil {
		return nil, err
	}

	reg.AdjustedHandicap = req.AdjustedHandicap
	reg.FlightOverride = req.FlightOverride
	reg.GuestCount = req.GuestCount
	reg.GuestNames = req.GuestNames
	reg.Sponsor = req.Sponsor

	if err := s.db.Save(&reg).Error; err != nil {
		return nil, err
	}
	reg.Member = member
	return &reg, nil
}

func (s *EventService) Unregister(eventID, memberID uint) error {
	result := s.db.Where("event_id = ? AND member_id = ?", eventID, memberID).
		Delete(&models.Registration{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("registration not found")
	}
	return nil
}

// FlightSheet resolves handicap and flight for every registered player
// on the given day. Guests have no resolvable handicap and are left off
// the sheet.
func (s *EventService) FlightSheet(eventID uint, day int) ([]FlightAssignment, error) {
	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	eventDay := findDay(event, day)
	sheet := make([]FlightAssignment, 0, len(event.Registrations))
	for _, reg := range event.Registrations {
		if reg.Member.MembershipType == models.MembershipGuest {
			continue
		}
		in := handicapInput(event, eventDay, reg)
		effective := scoring.EffectiveHandicap(in)

		flight := reg.FlightOverride
		if flight == "" {
			flight = scoring.ClassifyFlight(effective, event.FlightACutoff, event.FlightBCutoff)
		}

		sheet = append(sheet, FlightAssignment{
			MemberID: reg.MemberID,
			Name:     reg.Member.Name,
			Handicap: effective,
			Label:    scoring.HandicapLabel(in),
			Flight:   flight,
		})
	}
	return sheet, nil
}

// Leaderboard ranks the field. day > 0 selects a single day; day 0
// aggregates every submitted day, scaling the handicap by the number of
// scored days. Results are cached in Redis as a JSON snapshot.
func (s *EventService) Leaderboard(eventID uint, day int) (*LeaderboardView, error) {
	if cached := s.cachedLeaderboard(eventID, day); cached != nil {
		return cached, nil
	}

	event, err := s.GetEvent(eventID)
	if err != nil {
		return nil, errors.New("event not found")
	}

	var scores []models.Score
	query := s.db.Where("event_id = ?", eventID)
	if day > 0 {
		query = query.Where("day = ?", day)
	}
	if err := query.Find(&scores).Error; err != nil {
		return nil, err
	}

	gross := make(map[uint]int)
	daysScored := make(map[uint]int)
	for _, sc := range scores {
		if sc.Total == 0 {
			continue
		}
		gross[sc.MemberID] += sc.Total
		daysScored[sc.MemberID]++
	}

	// The handicap day: the selected day, or the first day for
	// multi-day aggregates.
	eventDay := findDay(event, day)

	entries := make([]scoring.Entry, 0, len(event.Registrations))
	for _, reg := range event.Registrations {
		in := handicapInput(event, eventDay, reg)
		effective := scoring.EffectiveHandicap(in)

		flight := reg.FlightOverride
		if flight == "" {
			flight = scoring.ClassifyFlight(effective, event.FlightACutoff, event.FlightBCutoff)
		}

		entries = append(entries, scoring.Entry{
			MemberID:       reg.MemberID,
			Name:           reg.Member.Name,
			Flight:         flight,
			Gross:          gross[reg.MemberID],
			DaysScored:     daysScored[reg.MemberID],
			PerDayHandicap: effective,
		})
	}

	view := &LeaderboardView{
		EventID: eventID,
		Day:     day,
		Flights: scoring.RankByFlight(entries),
		Overall: scoring.Rank(entries),
	}
	s.storeLeaderboard(eventID, day, view)
	return view, nil
}

func (s *EventService) GetGroupings(eventID uint, day int) ([]models.Grouping, error) {
	var groupings []models.Grouping
	err := s.db.Where("event_id = ? AND day = ?", eventID, day).
		Order("hole").Find(&groupings).Error
	return groupings, err
}

// PutGrouping upserts the 4-slot pairing for one starting hole.
func (s *EventService) PutGrouping(eventID uint, day, hole int, req *GroupingRequest) (*models.Grouping, error) {
	if day < 1 || day > 3 {
		return nil, errors.New("day must be between 1 and 3")
	}
	if hole < 1 || hole > 18 {
		return nil, errors.New("hole must be between 1 and 18")
	}

	// A member starts on one hole per day, once.
	seen := make(map[uint]bool)
	for _, slot := range req.Slots {
		if slot == nil {
			continue
		}
		if seen[*slot] {
			return nil, errors.New("member listed twice in grouping")
		}
		seen[*slot] = true
	}
	var others []models.Grouping
	if err := s.db.Where("event_id = ? AND day = ? AND hole <> ?", eventID, day, hole).
		Find(&others).Error; err != nil {
		return nil, err
	}
	for _, g := range others {
		for _, slot := range g.Slots() {
			if slot != nil && seen[*slot] {
				return nil, fmt.Errorf("member %d is already grouped on hole %d", *slot, g.Hole)
			}
		}
	}

	var grouping models.Grouping
	err := s.db.Where("event_id = ? AND day = ? AND hole = ?", eventID, day, hole).
		First(&grouping).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		grouping = models.Grouping{EventID: eventID, Day: day, Hole: hole}
	} else if err != nil {
		return nil, err
	}

	grouping.Slot1 = req.Slots[0]
	grouping.Slot2 = req.Slots[1]
	grouping.Slot3 = req.Slots[2]
	grouping.Slot4 = req.Slots[3]

	if err := s.db.Save(&grouping).Error; err != nil {
		return nil, err
	}
	return &grouping, nil
}

// findDay returns the requested day, or the first day when day <= 0,
// or nil if the event has no day records.
func findDay(event *models.Event, day int) *models.EventDay {
	if len(event.Days) == 0 {
		return nil
	}
	if day <= 0 {
		return &event.Days[0]
	}
	for i := range event.Days {
		if event.Days[i].DayNumber == day {
			return &event.Days[i]
		}
	}
	return nil
}

func handicapInput(event *models.Event, day *models.EventDay, reg models.Registration) scoring.HandicapInput {
	in := scoring.HandicapInput{
		Base:      reg.Member.BaseHandicap,
		Adjusted:  reg.AdjustedHandicap,
		UseCourse: event.UseCourseHandicap,
	}
	if day != nil {
		in.Course = scoring.CourseInfo{
			Slope:  day.CourseSlope,
			Rating: day.CourseRate,
			Par:    day.CoursePar,
		}
	}
	return in
}

func leaderboardKey(eventID uint, day int) string {
	return fmt.Sprintf("leaderboard:%d:%d", eventID, day)
}

func (s *EventService) cachedLeaderboard(eventID uint, day int) *LeaderboardView {
	if s.redis == nil {
		return nil
	}
	data, err := s.redis.Get(context.Background(), leaderboardKey(eventID, day)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			logger.WithEvent(eventID).WithError(err).Warn("leaderboard cache read failed")
		}
		return nil
	}
	var view LeaderboardView
	if err := json.Unmarshal([]byte(data), &view); err != nil {
		return nil
	}
	return &view
}

func (s *EventService) storeLeaderboard(eventID uint, day int, view *LeaderboardView) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(view)
	if err != nil {
		return
	}
	if err := s.redis.Set(context.Background(), leaderboardKey(eventID, day), data, leaderboardTTL).Err(); err != nil {
		logger.WithEvent(eventID).WithError(err).Warn("leaderboard cache write failed")
	}
}

// invalidateLeaderboard drops every cached view of the event (per-day
// and aggregate).
func (s *EventService) invalidateLeaderboard(eventID uint) {
	if s.redis == nil {
		return
	}
	ctx := context.Background()
	keys, err := s.redis.Keys(ctx, fmt.Sprintf("leaderboard:%d:*", eventID)).Result()
	if err != nil || len(keys) == 0 {
		return
	}
	s.redis.Del(ctx, keys...)
}
