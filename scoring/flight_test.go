package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlightBoundaryInclusive(t *testing.T) {
	a, b := f(10), f(20)

	assert.Equal(t, FlightA, ClassifyFlight(10.0, a, b), "exactly at the A cutoff is flight A")
	assert.Equal(t, FlightB, ClassifyFlight(10.1, a, b))
	assert.Equal(t, FlightB, ClassifyFlight(20.0, a, b))
	assert.Equal(t, FlightC, ClassifyFlight(20.1, a, b))
}

func TestFlightNoCutoffsDefaultsToA(t *testing.T) {
	assert.Equal(t, FlightA, ClassifyFlight(36.0, nil, nil))
}

func TestFlightPartialCutoffs(t *testing.T) {
	// Only a B ceiling: nobody qualifies for A by cutoff.
	assert.Equal(t, FlightB, ClassifyFlight(5.0, nil, f(20)))
	assert.Equal(t, FlightC, ClassifyFlight(25.0, nil, f(20)))

	// Only an A ceiling: everyone above it is C.
	assert.Equal(t, FlightA, ClassifyFlight(8.0, f(10), nil))
	assert.Equal(t, FlightC, ClassifyFlight(12.0, f(10), nil))
}
