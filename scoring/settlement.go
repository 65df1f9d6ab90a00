package scoring

import (
	"errors"
	"math"
	"sort"
)

// ErrUnbalanced is returned when the balances handed to Settle do not
// net to zero. Wolf and niners allocations are zero-sum by construction,
// so a non-zero total means the point tracking upstream is wrong and no
// settlement is attempted.
var ErrUnbalanced = errors.New("scoring: balances do not sum to zero")

// Balance is a player's signed dollar position: negative owes, positive
// is owed.
type Balance struct {
	PlayerID uint    `json:"player_id"`
	Name     string  `json:"name"`
	Amount   float64 `json:"amount"`
}

// Transaction is one payer-to-receiver transfer in a settlement.
type Transaction struct {
	FromID uint    `json:"from_id"`
	From   string  `json:"from"`
	ToID   uint    `json:"to_id"`
	To     string  `json:"to"`
	Amount float64 `json:"amount"`
}

// PlayerPoints is a player's accumulated wolf/niners point total.
type PlayerPoints struct {
	PlayerID uint    `json:"player_id"`
	Name     string  `json:"name"`
	Points   float64 `json:"points"`
}

// SettlePoints converts point totals to dollar balances and settles
// them. This is the wolf/niners path: the per-hole allocation rule lives
// with the game itself; only the resulting totals matter here.
func SettlePoints(points []PlayerPoints, dollarPerPoint float64) ([]Transaction, error) {
	balances := make([]Balance, len(points))
	for i, p := range points {
		balances[i] = Balance{
			PlayerID: p.PlayerID,
			Name:     p.Name,
			Amount:   p.Points * dollarPerPoint,
		}
	}
	return Settle(balances)
}

type centBalance struct {
	playerID uint
	name     string
	cents    int64
}

// Settle reduces a zero-sum set of balances to a minimal transaction
// list: repeatedly match the largest remaining payer against the largest
// remaining receiver, transfer min(|payer|, receiver), and drop zeroed
// parties. Emits at most N-1 transactions for N non-zero participants.
// Arithmetic is done in integer cents so every player lands on exactly
// zero.
func Settle(balances []Balance) ([]Transaction, error) {
	var payers, receivers []centBalance
	var total int64
	for _, b := range balances {
		cents := toCents(b.Amount)
		total += cents
		switch {
		case cents < 0:
			payers = append(payers, centBalance{b.PlayerID, b.Name, cents})
		case cents > 0:
			receivers = append(receivers, centBalance{b.PlayerID, b.Name, cents})
		}
	}
	if total != 0 {
		return nil, ErrUnbalanced
	}

	var txns []Transaction
	for len(payers) > 0 && len(receivers) > 0 {
		sort.SliceStable(payers, func(i, j int) bool {
			return payers[i].cents < payers[j].cents // most negative first
		})
		sort.SliceStable(receivers, func(i, j int) bool {
			return receivers[i].cents > receivers[j].cents
		})

		payer, receiver := &payers[0], &receivers[0]
		amount := min64(-payer.cents, receiver.cents)

		txns = append(txns, Transaction{
			FromID: payer.playerID,
			From:   payer.name,
			ToID:   receiver.playerID,
			To:     receiver.name,
			Amount: fromCents(amount),
		})

		payer.cents += amount
		receiver.cents -= amount
		if payer.cents == 0 {
			payers = payers[1:]
		}
		if receiver.cents == 0 {
			receivers = receivers[1:]
		}
	}
	return txns, nil
}

func toCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

func fromCents(cents int64) float64 {
	return float64(cents) / 100
}

func min64(a, b int64) int64 {
	if a < b {
		return a
	}
	return b
}
