package helpers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloat64OrZero(t *testing.T) {
	assert.Equal(t, 0.0, Float64OrZero(nil))

	v := 73.5
	assert.Equal(t, 73.5, Float64OrZero(&v))

	nan := math.NaN()
	assert.Equal(t, 0.0, Float64OrZero(&nan))

	inf := math.Inf(1)
	assert.Equal(t, 0.0, Float64OrZero(&inf))
}

func TestClampPercent(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"in range", 42.5, 42.5},
		{"zero", 0, 0},
		{"hundred", 100, 100},
		{"over", 117.3, 100},
		{"negative", -5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClampPercent(tt.in))
		})
	}
}

func TestNonNegative(t *testing.T) {
	assert.Equal(t, 12.5, NonNegative(12.5))
	assert.Equal(t, 0.0, NonNegative(-3))
	assert.Equal(t, 0.0, NonNegative(math.NaN()))
}
