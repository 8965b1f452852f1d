package money

import "math"

// epsilon counters binary representation error before rounding to cents,
// so values like 1.005 round up instead of landing on 1.00499999999999989.
// The value matches IEEE-754 double machine epsilon (2^-52).
const epsilon = 2.220446049250313e-16

// Round2 rounds a monetary amount to two decimal places.
//
// Historical run totals were computed with exactly this formula, so any
// change to the epsilon nudge or the rounding mode would make recomputed
// totals drift from what was already paid out.
func Round2(x float64) float64 {
	return math.Round((x+epsilon)*100) / 100
}

// AddRound2 accumulates a rounded amount onto a rounded running total,
// re-rounding after the addition. Applying Round2 at every accumulation
// step keeps long sums of cent amounts from drifting.
func AddRound2(total, amount float64) float64 {
	return Round2(total + amount)
}

// Earnings computes pay for a worked quantity at a unit rate, rounded to
// cents.
func Earnings(quantity, rate float64) float64 {
	return Round2(quantity * rate)
}
