package rating

import (
	"math"
	"testing"
)

func TestExpectedScore(t *testing.T) {
	if e := ExpectedScore(1500, 1500); math.Abs(e-0.5) > 0.0001 {
		t.Fatalf("equal ratings: expected 0.5, got %.4f", e)
	}
	strong := ExpectedScore(1700, 1500)
	weak := ExpectedScore(1500, 1700)
	if strong <= 0.5 || weak >= 0.5 {
		t.Fatalf("expectation not monotonic: strong=%.3f weak=%.3f", strong, weak)
	}
	if math.Abs(strong+weak-1.0) > 0.0001 {
		t.Fatalf("expectations should sum to 1, got %.4f", strong+weak)
	}
}

func TestUpdate(t *testing.T) {
	tests := []struct {
		name               string
		home, away         int
		hg, ag             int
		wantHome, wantAway int
	}{
		{"even win", 1500, 1500, 2, 0, 1512, 1488},
		{"even loss", 1500, 1500, 0, 1, 1488, 1512},
		{"even draw", 1500, 1500, 1, 1, 1500, 1500},
		{"upset win", 1400, 1600, 1, 0, 1418, 1582},
		{"favorite win", 1600, 1400, 3, 1, 1606, 1394},
		{"favorite draw loses ground", 1600, 1400, 0, 0, 1594, 1406},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, a := Update(tt.home, tt.away, tt.hg, tt.ag)
			if h != tt.wantHome || a != tt.wantAway {
				t.Fatalf("Update(%d,%d,%d,%d) = %d,%d want %d,%d",
					tt.home, tt.away, tt.hg, tt.ag, h, a, tt.wantHome, tt.wantAway)
			}
			if (h - tt.home) != -(a - tt.away) {
				t.Fatalf("exchange not zero-sum: %+d vs %+d", h-tt.home, a-tt.away)
			}
		})
	}
}

func TestDivision(t *testing.T) {
	tests := []struct {
		elo  int
		want int
	}{
		{1700, 1}, {1650, 1}, {1649, 2}, {1400, 2}, {1399, 3}, {900, 3},
	}
	for _, tt := range tests {
		if got := Division(tt.elo); got != tt.want {
			t.Errorf("Division(%d) = %d, want %d", tt.elo, got, tt.want)
		}
	}
}
