package money

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRound2(t *testing.T) {
	tests := []struct {
		name     string
		input    float64
		expected float64
	}{
		{"already exact", 240.00, 240.00},
		{"half cent rounds up", 1.005, 1.01},
		{"binary representation error", 0.1 + 0.2, 0.30},
		{"truncates below half cent", 10.004, 10.00},
		{"rounds above half cent", 10.006, 10.01},
		{"zero", 0, 0},
		{"large amount", 123456.789, 123456.79},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Round2(tt.input))
		})
	}
}

func TestEarnings(t *testing.T) {
	assert.Equal(t, 240.00, Earnings(12, 20))
	assert.Equal(t, 150.08, Earnings(8, 18.76))
	assert.Equal(t, 0.0, Earnings(0, 25))
}

// Step-rounded accumulation must differ from rounding a naive sum once the
// per-record sub-cent remainders add up: three records at 10.004 each round
// to 10.00, so the running total is 30.00 while the unrounded sum 30.012
// would round to 30.01.
func TestAddRound2_StepRoundingDiffersFromNaiveSum(t *testing.T) {
	rate := 10.004

	total := 0.0
	naive := 0.0
	for i := 0; i < 3; i++ {
		total = AddRound2(total, Earnings(1, rate))
		naive += 1 * rate
	}

	assert.Equal(t, 30.00, total)
	assert.Equal(t, 30.01, Round2(naive))
	assert.GreaterOrEqual(t, Round2(naive)-total, 0.01)
}

// Within one employee's accumulation, addition order must not change the
// final rounded total.
func TestAddRound2_OrderIndependent(t *testing.T) {
	earnings := []float64{
		Earnings(8, 20.33),
		Earnings(4.25, 18.76),
		Earnings(1, 10.004),
		Earnings(7.5, 22.10),
		Earnings(0.25, 95.99),
	}

	forward := 0.0
	for _, e := range earnings {
		forward = AddRound2(forward, e)
	}

	backward := 0.0
	for i := len(earnings) - 1; i >= 0; i-- {
		backward = AddRound2(backward, earnings[i])
	}

	assert.Equal(t, forward, backward)
}
