package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompetitionRanking(t *testing.T) {
	entries := []Entry{
		{MemberID: 1, Name: "Ann", Gross: 70, DaysScored: 1},
		{MemberID: 2, Name: "Ben", Gross: 70, DaysScored: 1},
		{MemberID: 3, Name: "Cal", Gross: 72, DaysScored: 1},
	}

	ranked := Rank(entries)

	assert.Len(t, ranked, 3)
	assert.Equal(t, []int{1, 1, 3}, []int{ranked[0].Rank, ranked[1].Rank, ranked[2].Rank},
		"ties share the lower ordinal and the next distinct score skips")
}

func TestRankExcludesUnscored(t *testing.T) {
	entries := []Entry{
		{MemberID: 1, Gross: 80, DaysScored: 1},
		{MemberID: 2, Gross: 0}, // no score yet
	}

	ranked := Rank(entries)

	assert.Len(t, ranked, 1)
	assert.Equal(t, uint(1), ranked[0].MemberID)
}

func TestMultiDayHandicapScaling(t *testing.T) {
	e := Entry{Gross: 150, DaysScored: 2, PerDayHandicap: 5}
	assert.Equal(t, 140.0, e.Net(), "handicap applies once per scored day")
}

func TestRankSortsByNetNotGross(t *testing.T) {
	entries := []Entry{
		{MemberID: 1, Gross: 90, DaysScored: 1, PerDayHandicap: 20}, // net 70
		{MemberID: 2, Gross: 75, DaysScored: 1, PerDayHandicap: 2},  // net 73
	}

	ranked := Rank(entries)

	assert.Equal(t, uint(1), ranked[0].MemberID)
	assert.Equal(t, 70.0, ranked[0].Net)
	assert.Equal(t, 1, ranked[0].Rank)
	assert.Equal(t, 2, ranked[1].Rank)
}

func TestRankByFlightIsIndependent(t *testing.T) {
	entries := []Entry{
		{MemberID: 1, Flight: "A", Gross: 72, DaysScored: 1},
		{MemberID: 2, Flight: "A", Gross: 75, DaysScored: 1},
		{MemberID: 3, Flight: "B", Gross: 90, DaysScored: 1},
		{MemberID: 4, Flight: "B", Gross: 85, DaysScored: 1},
	}

	flights := RankByFlight(entries)

	assert.Len(t, flights, 2)
	assert.Equal(t, 1, flights["A"][0].Rank)
	assert.Equal(t, uint(1), flights["A"][0].MemberID)
	assert.Equal(t, 1, flights["B"][0].Rank, "each flight ranks from 1")
	assert.Equal(t, uint(4), flights["B"][0].MemberID)

	// The cross-flight view ranks the whole field in one pass.
	overall := Rank(entries)
	assert.Equal(t, []uint{1, 2, 4, 3},
		[]uint{overall[0].MemberID, overall[1].MemberID, overall[2].MemberID, overall[3].MemberID})
}
