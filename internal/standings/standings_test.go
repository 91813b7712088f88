package standings

import "testing"

func seeded(t *testing.T) *Table {
	t.Helper()
	tab := New()
	tab.AddClub(1, "Harbor")
	tab.AddClub(2, "Summit")
	tab.AddClub(3, "Riverside")
	return tab
}

func TestRecordAndOrder(t *testing.T) {
	tab := seeded(t)

	// Harbor beat Summit 2-1, drew Riverside 1-1; Summit beat Riverside 3-0.
	if err := tab.Record(1, 2, 2, 1); err != nil {
		t.Fatal(err)
	}
	if err := tab.Record(3, 1, 1, 1); err != nil {
		t.Fatal(err)
	}
	if err := tab.Record(2, 3, 3, 0); err != nil {
		t.Fatal(err)
	}

	rows := tab.Rows()
	if len(rows) != 3 {
		t.Fatalf("got %d rows", len(rows))
	}
	// Harbor 4pts, Summit 3pts (GD +2), Riverside 1pt.
	if rows[0].Name != "Harbor" || rows[0].Points != 4 {
		t.Fatalf("first row %+v", rows[0])
	}
	if rows[1].Name != "Summit" || rows[1].Points != 3 {
		t.Fatalf("second row %+v", rows[1])
	}
	if rows[2].Name != "Riverside" || rows[2].Points != 1 {
		t.Fatalf("third row %+v", rows[2])
	}

	harbor := rows[0]
	if harbor.Played != 2 || harbor.Wins != 1 || harbor.Draws != 1 || harbor.Losses != 0 {
		t.Fatalf("harbor record %+v", harbor)
	}
	if harbor.GoalsFor != 3 || harbor.GoalsAgainst != 2 || harbor.GoalDiff() != 1 {
		t.Fatalf("harbor goals %+v", harbor)
	}
	if harbor.Form != "WD" {
		t.Fatalf("harbor form %q", harbor.Form)
	}
}

func TestTiebreaks(t *testing.T) {
	tab := New()
	tab.AddClub(1, "Alba")
	tab.AddClub(2, "Borea")
	tab.AddClub(3, "Cinder")
	tab.AddClub(4, "Drift")

	// Alba and Borea both win once, Borea with the bigger margin.
	_ = tab.Record(1, 3, 1, 0)
	_ = tab.Record(2, 4, 3, 0)

	rows := tab.Rows()
	if rows[0].Name != "Borea" || rows[1].Name != "Alba" {
		t.Fatalf("goal difference tiebreak failed: %v then %v", rows[0].Name, rows[1].Name)
	}
	// Cinder and Drift are level on everything; name breaks the tie.
	if rows[2].Name != "Cinder" || rows[3].Name != "Drift" {
		t.Fatalf("name tiebreak failed: %v then %v", rows[2].Name, rows[3].Name)
	}
}

func TestRecordUnknownClub(t *testing.T) {
	tab := seeded(t)
	if err := tab.Record(1, 99, 1, 0); err == nil {
		t.Fatal("accepted a result for an unregistered club")
	}
}

func TestFormWindow(t *testing.T) {
	tab := seeded(t)
	results := [][2]int{{1, 0}, {0, 1}, {2, 2}, {3, 1}, {0, 0}, {1, 2}}
	for _, r := range results {
		_ = tab.Record(1, 2, r[0], r[1])
	}
	rows := tab.Rows()
	for _, row := range rows {
		if row.ClubID == 1 {
			// last five of W L D W D L, oldest dropped
			if row.Form != "LDWDL" {
				t.Fatalf("form %q, want LDWDL", row.Form)
			}
		}
	}
}
