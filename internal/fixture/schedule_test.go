package fixture

import "testing"

// ---------------------------------------------------------------------------
// 1. Double round-robin shape
// ---------------------------------------------------------------------------

func TestScheduleEvenLeague(t *testing.T) {
	clubs := []int64{1, 2, 3, 4, 5, 6}
	rounds := Schedule(clubs)

	if len(rounds) != 10 {
		t.Fatalf("6 clubs: got %d rounds, want 10", len(rounds))
	}

	meetings := make(map[[2]int64]int)
	appearances := make(map[int64]int)
	for r, fs := range rounds {
		if len(fs) != 3 {
			t.Fatalf("round %d: %d fixtures, want 3", r+1, len(fs))
		}
		inRound := make(map[int64]bool)
		for _, f := range fs {
			if f.Round != r+1 {
				t.Fatalf("fixture in round slice %d labelled round %d", r+1, f.Round)
			}
			if f.HomeID == f.AwayID {
				t.Fatalf("club %d scheduled against itself", f.HomeID)
			}
			if inRound[f.HomeID] || inRound[f.AwayID] {
				t.Fatalf("round %d: a club plays twice", r+1)
			}
			inRound[f.HomeID], inRound[f.AwayID] = true, true
			meetings[[2]int64{f.HomeID, f.AwayID}]++
			appearances[f.HomeID]++
			appearances[f.AwayID]++
		}
	}

	for _, a := range clubs {
		if appearances[a] != 10 {
			t.Fatalf("club %d plays %d matches, want 10", a, appearances[a])
		}
		for _, b := range clubs {
			if a == b {
				continue
			}
			if meetings[[2]int64{a, b}] != 1 {
				t.Fatalf("%d at home to %d happens %d times, want exactly once",
					a, b, meetings[[2]int64{a, b}])
			}
		}
	}
}

func TestScheduleOddLeagueByes(t *testing.T) {
	rounds := Schedule([]int64{1, 2, 3, 4, 5})
	if len(rounds) != 10 {
		t.Fatalf("5 clubs: got %d rounds, want 10", len(rounds))
	}
	total := 0
	for r, fs := range rounds {
		if len(fs) != 2 {
			t.Fatalf("round %d: %d fixtures, want 2 (one bye)", r+1, len(fs))
		}
		total += len(fs)
	}
	if total != 20 {
		t.Fatalf("total fixtures %d, want 20", total)
	}
}

func TestScheduleDeterministicPairings(t *testing.T) {
	a := Schedule([]int64{1, 2, 3, 4})
	b := Schedule([]int64{1, 2, 3, 4})
	for r := range a {
		for i := range a[r] {
			if a[r][i].HomeID != b[r][i].HomeID || a[r][i].AwayID != b[r][i].AwayID {
				t.Fatalf("round %d fixture %d: %+v vs %+v", r+1, i, a[r][i], b[r][i])
			}
		}
	}
}

func TestScheduleMirroredLegs(t *testing.T) {
	rounds := Schedule([]int64{1, 2, 3, 4})
	leg := len(rounds) / 2
	for r := 0; r < leg; r++ {
		first, second := rounds[r], rounds[leg+r]
		if len(first) != len(second) {
			t.Fatalf("legs differ in size at round %d", r+1)
		}
		for i := range first {
			if first[i].HomeID != second[i].AwayID || first[i].AwayID != second[i].HomeID {
				t.Fatalf("round %d fixture %d not mirrored: %+v vs %+v",
					r+1, i, first[i], second[i])
			}
		}
	}
}

func TestScheduleDegenerate(t *testing.T) {
	if rounds := Schedule(nil); rounds != nil {
		t.Fatalf("empty league scheduled %d rounds", len(rounds))
	}
	if rounds := Schedule([]int64{7}); rounds != nil {
		t.Fatalf("single club scheduled %d rounds", len(rounds))
	}
}
