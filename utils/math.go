package utils

import "math"

// Round rounds a number to 2 decimal places for monetary calculations
func Round(num float64) float64 {
	return math.Round(num*MoneyPrecision) / MoneyPrecision
}

// RoundRate rounds a number to 4 decimal places for exchange rates
func RoundRate(num float64) float64 {
	return math.Round(num*RatePrecision) / RatePrecision
}

// Min returns the minimum of two float64 values
func Min(a, b float64) float64 {
	return math.Min(a, b)
}

// WithinEpsilon reports whether two monetary amounts are equal within
// the balance tolerance of one cent.
func WithinEpsilon(a, b float64) bool {
	return math.Abs(a-b) < BalanceEpsilon
}
