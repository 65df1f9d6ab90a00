// Package scoring holds the pure calculation engine: handicap
// resolution, flight classification, leaderboard ranking and money
// settlement. Nothing in this package touches the database or the
// network; callers fetch data and pass it in as explicit parameters.
package scoring

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// HandicapBranch identifies which source the resolver used.
type HandicapBranch string

const (
	BranchAdjusted HandicapBranch = "ADJH" // event override from the registration
	BranchCourse   HandicapBranch = "CRSE" // slope/rating-scaled course handicap
	BranchBase     HandicapBranch = "HDC"  // the member's base handicap
)

// CourseInfo is one day's course parameters. Any nil field disables the
// course-handicap computation for that day.
type CourseInfo struct {
	Slope  *float64
	Rating *float64
	Par    *int
}

// HandicapInput carries everything the resolver needs. Adjusted is the
// raw registration override string; a value that does not parse as a
// number is treated as absent.
type HandicapInput struct {
	Base      float64
	Adjusted  string
	UseCourse bool
	Course    CourseInfo
}

// EffectiveHandicap resolves the handicap actually applied to net
// scoring. Priority: adjusted override, then course handicap, then base.
func EffectiveHandicap(in HandicapInput) float64 {
	if adj, ok := parseAdjusted(in.Adjusted); ok {
		return adj
	}
	if ch, ok := courseHandicap(in.Base, in.Course); in.UseCourse && ok {
		return ch
	}
	return in.Base
}

// HandicapBranchUsed reports which branch EffectiveHandicap takes for
// the same input. The two must always agree.
func HandicapBranchUsed(in HandicapInput) HandicapBranch {
	if _, ok := parseAdjusted(in.Adjusted); ok {
		return BranchAdjusted
	}
	if _, ok := courseHandicap(in.Base, in.Course); in.UseCourse && ok {
		return BranchCourse
	}
	return BranchBase
}

// HandicapLabel renders the display label for a resolved handicap,
// e.g. "ADJH: 8.5".
func HandicapLabel(in HandicapInput) string {
	return fmt.Sprintf("%s: %s", HandicapBranchUsed(in), formatHandicap(EffectiveHandicap(in)))
}

func parseAdjusted(raw string) (float64, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, false
	}
	return v, true
}

// courseHandicap applies round(base * slope/113 + (rating - par)) to the
// nearest whole number. Missing course data disables the branch.
func courseHandicap(base float64, c CourseInfo) (float64, bool) {
	if c.Slope == nil || c.Rating == nil || c.Par == nil {
		return 0, false
	}
	raw := base*(*c.Slope)/113 + (*c.Rating - float64(*c.Par))
	return math.Round(raw), true
}

func formatHandicap(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
