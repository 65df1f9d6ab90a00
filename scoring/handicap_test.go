package scoring

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func f(v float64) *float64 { return &v }
func i(v int) *int         { return &v }

func TestAdjustedHandicapAlwaysWins(t *testing.T) {
	in := HandicapInput{
		Base:      10,
		Adjusted:  "8.5",
		UseCourse: true,
		Course:    CourseInfo{Slope: f(120), Rating: f(71.5), Par: i(72)},
	}

	assert.Equal(t, 8.5, EffectiveHandicap(in), "a valid adjusted handicap wins regardless of course mode")
	assert.Equal(t, BranchAdjusted, HandicapBranchUsed(in))

	in.UseCourse = false
	assert.Equal(t, 8.5, EffectiveHandicap(in))
}

func TestCourseHandicapFormula(t *testing.T) {
	in := HandicapInput{
		Base:      10,
		UseCourse: true,
		Course:    CourseInfo{Slope: f(120), Rating: f(71.5), Par: i(72)},
	}

	// round(10 * 120/113 + (71.5 - 72)) = round(10.12) = 10
	assert.Equal(t, 10.0, EffectiveHandicap(in))
	assert.Equal(t, BranchCourse, HandicapBranchUsed(in))
}

func TestCourseHandicapMissingDataFallsBack(t *testing.T) {
	in := HandicapInput{
		Base:      10,
		UseCourse: true,
		Course:    CourseInfo{Rating: f(71.5), Par: i(72)}, // no slope
	}

	assert.Equal(t, 10.0, EffectiveHandicap(in))
	assert.Equal(t, BranchBase, HandicapBranchUsed(in))
}

func TestInvalidAdjustedFallsThrough(t *testing.T) {
	in := HandicapInput{Base: 12, Adjusted: "n/a"}

	assert.Equal(t, 12.0, EffectiveHandicap(in))
	assert.Equal(t, BranchBase, HandicapBranchUsed(in))

	in.Adjusted = "  "
	assert.Equal(t, BranchBase, HandicapBranchUsed(in))
}

func TestBaseHandicapDefault(t *testing.T) {
	in := HandicapInput{Base: 14.2}

	assert.Equal(t, 14.2, EffectiveHandicap(in))
	assert.Equal(t, BranchBase, HandicapBranchUsed(in))
	assert.Equal(t, "HDC: 14.2", HandicapLabel(in))
}

// The label must always report the branch the resolver actually took.
func TestLabelMatchesBranch(t *testing.T) {
	inputs := []HandicapInput{
		{Base: 10, Adjusted: "7"},
		{Base: 10, Adjusted: "bogus", UseCourse: true, Course: CourseInfo{Slope: f(130), Rating: f(72.3), Par: i(71)}},
		{Base: 10, UseCourse: true, Course: CourseInfo{Slope: f(113), Rating: f(72.0), Par: i(72)}},
		{Base: 10, UseCourse: true},
		{Base: 10},
		{Base: 0, Adjusted: "0"},
	}

	for _, in := range inputs {
		label := HandicapLabel(in)
		branch := string(HandicapBranchUsed(in))
		assert.True(t, strings.HasPrefix(label, branch+": "),
			"label %q should report branch %q", label, branch)
	}
}
