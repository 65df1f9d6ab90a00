package scoring

import "sort"

// Match settlement for the individual-net game: front nine, back nine
// and overall net wagering with split-pot tie handling.

// MatchPlayer is one participant's card and strokes received.
type MatchPlayer struct {
	PlayerID        uint
	Name            string
	Holes           []int // 18 gross hole strokes
	StrokesReceived int
}

// MatchConfig describes the course and the wagered segments. A zero bet
// disables its segment.
type MatchConfig struct {
	Pars            []int // 18 hole pars
	StrokeIndex     []int // 18 stroke indexes, 1 = hardest
	StrokesOnPar3s  bool  // when false, par-3 holes never receive strokes
	Front9Bet       float64
	Back9Bet        float64
	OverallBet      float64
	PotBet          float64
}

// PlayerNets is a player's computed net score per segment.
type PlayerNets struct {
	PlayerID uint   `json:"player_id"`
	Name     string `json:"name"`
	Front    int    `json:"front"`
	Back     int    `json:"back"`
	Overall  int    `json:"overall"`
}

// MatchWinner is one (possibly shared) segment winner and their share.
type MatchWinner struct {
	PlayerID uint    `json:"player_id"`
	Name     string  `json:"name"`
	Share    float64 `json:"share"`
}

// SegmentResult is the outcome of one wagered segment. Push means every
// player tied at the low score: tracked, nothing paid out.
type SegmentResult struct {
	Segment string        `json:"segment"` // front9, back9, overall, pot
	Bet     float64       `json:"bet"`
	Push    bool          `json:"push"`
	Winners []MatchWinner `json:"winners,omitempty"`
}

// MatchResult is the full individual-net settlement.
type MatchResult struct {
	Nets     []PlayerNets    `json:"nets"`
	Segments []SegmentResult `json:"segments"`
}

// SettleMatch computes per-nine and overall nets for every player and
// resolves each wagered segment. Lowest net wins a segment; ties split
// the bet evenly in cents, with any remainder cent going to the first
// tied winner in input order.
func SettleMatch(players []MatchPlayer, cfg MatchConfig) MatchResult {
	nets := make([]PlayerNets, len(players))
	for i, p := range players {
		strokes := allocateStrokes(p.StrokesReceived, cfg.Pars, cfg.StrokeIndex, cfg.StrokesOnPar3s)
		front, back := 0, 0
		for h := 0; h < 18 && h < len(p.Holes); h++ {
			net := p.Holes[h] - strokes[h]
			if h < 9 {
				front += net
			} else {
				back += net
			}
		}
		nets[i] = PlayerNets{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Front:    front,
			Back:     back,
			Overall:  front + back,
		}
	}

	result := MatchResult{Nets: nets}
	segments := []struct {
		name string
		bet  float64
		net  func(PlayerNets) int
	}{
		{"front9", cfg.Front9Bet, func(n PlayerNets) int { return n.Front }},
		{"back9", cfg.Back9Bet, func(n PlayerNets) int { return n.Back }},
		{"overall", cfg.OverallBet, func(n PlayerNets) int { return n.Overall }},
		{"pot", cfg.PotBet, func(n PlayerNets) int { return n.Overall }},
	}
	for _, seg := range segments {
		if seg.bet <= 0 {
			continue
		}
		result.Segments = append(result.Segments, settleSegment(seg.name, seg.bet, nets, seg.net))
	}
	return result
}

// allocateStrokes distributes a player's strokes received across the
// hardest holes by stroke index, one per hole per pass, wrapping for
// counts above the number of eligible holes. Par-3s are skipped when the
// game disallows strokes on them.
func allocateStrokes(received int, pars, strokeIndex []int, par3sAllowed bool) [18]int {
	var strokes [18]int
	if received <= 0 {
		return strokes
	}

	eligible := make([]int, 0, 18)
	for h := 0; h < 18; h++ {
		if !par3sAllowed && h < len(pars) && pars[h] == 3 {
			continue
		}
		eligible = append(eligible, h)
	}
	if len(eligible) == 0 {
		return strokes
	}

	sort.SliceStable(eligible, func(i, j int) bool {
		return indexAt(strokeIndex, eligible[i]) < indexAt(strokeIndex, eligible[j])
	})

	for n := 0; n < received; n++ {
		strokes[eligible[n%len(eligible)]]++
	}
	return strokes
}

func indexAt(strokeIndex []int, hole int) int {
	if hole < len(strokeIndex) {
		return strokeIndex[hole]
	}
	return hole + 1 // no index data: fall back to hole order
}

func settleSegment(name string, bet float64, nets []PlayerNets, net func(PlayerNets) int) SegmentResult {
	result := SegmentResult{Segment: name, Bet: bet}
	if len(nets) == 0 {
		result.Push = true
		return result
	}

	low := net(nets[0])
	for _, n := range nets[1:] {
		if v := net(n); v < low {
			low = v
		}
	}

	var winners []PlayerNets
	for _, n := range nets {
		if net(n) == low {
			winners = append(winners, n)
		}
	}

	if len(winners) == len(nets) {
		result.Push = true
		return result
	}

	// Split in integer cents; the remainder cent goes to the first tied
	// winner in input order.
	betCents := toCents(bet)
	share := betCents / int64(len(winners))
	remainder := betCents % int64(len(winners))
	for i, w := range winners {
		payout := share
		if i == 0 {
			payout += remainder
		}
		result.Winners = append(result.Winners, MatchWinner{
			PlayerID: w.PlayerID,
			Name:     w.Name,
			Share:    fromCents(payout),
		})
	}
	return result
}
