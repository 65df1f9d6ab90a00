package scoring

// Flight buckets. "L" is never produced by the classifier; it is an
// explicit override applied by the caller before classification.
const (
	FlightA = "A"
	FlightB = "B"
	FlightC = "C"
	FlightL = "L"
)

// ClassifyFlight maps an effective handicap to a flight. A nil cutoff
// means no ceiling for that flight; with both cutoffs unset everyone is
// unflighted and lands in "A". Boundaries are inclusive: a handicap
// exactly at the A cutoff is flight A.
func ClassifyFlight(effective float64, aCutoff, bCutoff *float64) string {
	if aCutoff == nil && bCutoff == nil {
		return FlightA
	}
	if aCutoff != nil && effective <= *aCutoff {
		return FlightA
	}
	if bCutoff != nil && effective <= *bCutoff {
		return FlightB
	}
	return FlightC
}
