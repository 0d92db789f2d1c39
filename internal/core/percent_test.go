package core

import "testing"

func TestPercent(t *testing.T) {
	cases := []struct {
		part, total int
		out         int
	}{
		{515, 785, 66},
		{0, 0, 0},
		{10, 0, 0},
		{1, 8, 13},   // 12.5
		{3, 8, 38},   // 37.5
		{-1, 8, -13}, // -12.5
		{1, 3, 33},
		{2, 3, 67},
		{150, 150, 100},
		{-30, 100, -30},
		{45, 60, 75},
	}
	for _, tc := range cases {
		if got := Percent(tc.part, tc.total); got != tc.out {
			t.Fatalf("Percent(%d, %d) expected %d, got %d", tc.part, tc.total, tc.out, got)
		}
	}
}

func TestDivRound(t *testing.T) {
	cases := []struct {
		n, d, out int
	}{
		{105, 2, 53},
		{-105, 2, -53},
		{104, 3, 35},
		{7, 0, 0},
		{10, 5, 2},
		{5, -2, -3},
	}
	for _, tc := range cases {
		if got := DivRound(tc.n, tc.d); got != tc.out {
			t.Fatalf("DivRound(%d, %d) expected %d, got %d", tc.n, tc.d, tc.out, got)
		}
	}
}
