package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundHalfUp(t *testing.T) {
	tests := []struct {
		in     float64
		places int32
		want   float64
	}{
		{2.345, 2, 2.35},
		{1.005, 2, 1.01},
		{0.05, 1, 0.1},
		{66.65, 1, 66.7},
		{-2.345, 2, -2.34},
		{-0.05, 1, 0},
		{12.3, 1, 12.3},
		{0, 2, 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Round(tt.in, tt.places), "Round(%v, %d)", tt.in, tt.places)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, 66.7, Percent(2, 3, 1))
	assert.Equal(t, 33.3, Percent(1, 3, 1))
	assert.Equal(t, 100.0, Percent(5, 5, 1))
	assert.Equal(t, 0.0, Percent(0, 0, 1))
}

func TestRoundNonFinite(t *testing.T) {
	assert.Zero(t, Round(math.NaN(), 2))
	assert.Zero(t, Round(math.Inf(1), 1))
	assert.Zero(t, Round(math.Inf(-1), 1))
}
