// Package core holds the donation record model and the rounding rules shared
// by every aggregate.
//
// Quantities are integers, so rounding is done in integer arithmetic to keep
// ties (x.5) exact.
package core

// Percent returns part/total*100 rounded half away from zero.
// A zero total yields 0.
//
// Examples:
//
//	Percent(515, 785) -> 66
//	Percent(1, 8)     -> 13 (12.5 rounds up)
//	Percent(-1, 8)    -> -13
func Percent(part, total int) int {
	return DivRound(part*100, total)
}

// DivRound divides n by d rounding half away from zero. A zero divisor
// yields 0.
func DivRound(n, d int) int {
	if d == 0 {
		return 0
	}
	q, r := n/d, n%d
	if r == 0 {
		return q
	}
	if 2*abs(r) >= abs(d) {
		if (n < 0) != (d < 0) {
			return q - 1
		}
		return q + 1
	}
	return q
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
