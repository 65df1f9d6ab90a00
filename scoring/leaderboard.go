package scoring

import "sort"

// Entry is one player's input to the ranker. Gross is the sum of the
// submitted day totals; DaysScored is how many days that sum covers, so
// the per-day handicap scales correctly on multi-day aggregates.
type Entry struct {
	MemberID       uint
	Name           string
	Flight         string
	Gross          int
	DaysScored     int
	PerDayHandicap float64
}

// Net is gross minus the handicap applied once per scored day.
func (e Entry) Net() float64 {
	return float64(e.Gross) - float64(e.DaysScored)*e.PerDayHandicap
}

// RankedEntry is an Entry with its computed net and competition rank.
type RankedEntry struct {
	Entry
	Net  float64 `json:"net"`
	Rank int     `json:"rank"`
}

// Rank sorts entries ascending by net score and assigns competition
// ranking: tied entries share the lower ordinal and the next distinct
// score resumes at its list position, the standard 1,2,2,4 pattern.
// Entries with a zero gross total have no score yet and are excluded.
// Ties are never broken further.
func Rank(entries []Entry) []RankedEntry {
	ranked := make([]RankedEntry, 0, len(entries))
	for _, e := range entries {
		if e.Gross == 0 {
			continue
		}
		ranked = append(ranked, RankedEntry{Entry: e, Net: e.Net()})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Net < ranked[j].Net
	})

	for i := range ranked {
		if i > 0 && ranked[i].Net == ranked[i-1].Net {
			ranked[i].Rank = ranked[i-1].Rank
		} else {
			ranked[i].Rank = i + 1
		}
	}
	return ranked
}

// RankByFlight partitions entries by flight and ranks each partition
// independently. The cross-flight view is a separate Rank call over the
// whole field.
func RankByFlight(entries []Entry) map[string][]RankedEntry {
	byFlight := make(map[string][]Entry)
	for _, e := range entries {
		byFlight[e.Flight] = append(byFlight[e.Flight], e)
	}

	out := make(map[string][]RankedEntry, len(byFlight))
	for flight, group := range byFlight {
		out[flight] = Rank(group)
	}
	return out
}
