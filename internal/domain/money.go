package domain

import (
	"fmt"
	"math"
)

// Money amount in minor currency units (cents)
type Money int64

// Rate fraction in basis points: 1800 = 18%
type Rate int64

const basisPointsPerUnit = 10000

// MulRate multiplies by rate, rounding half away from zero to a minor unit
func (m Money) MulRate(r Rate) Money {
	product := int64(m) * int64(r)
	q := product / basisPointsPerUnit
	rem := product % basisPointsPerUnit
	if rem*2 >= basisPointsPerUnit {
		q++
	} else if rem*2 <= -basisPointsPerUnit {
		q--
	}
	return Money(q)
}

// Times multiplies by an integer quantity
func (m Money) Times(n int) Money {
	return m * Money(n)
}

// String formats as major units with two decimals, e.g. 1234 -> "12.34"
func (m Money) String() string {
	sign := ""
	v := int64(m)
	if v < 0 {
		sign = "-"
		v = -v
	}
	return fmt.Sprintf("%s%d.%02d", sign, v/100, v%100)
}

// RateFromPercent converts a percentage (18.5) to basis points (1850)
func RateFromPercent(percent float64) Rate {
	return Rate(math.Round(percent * 100))
}

// Percent returns the rate as a percentage
func (r Rate) Percent() float64 {
	return float64(r) / 100
}
