package standings

import (
	"fmt"
	"sort"
)

const formLength = 5

// Row is one club's line in the league table.
type Row struct {
	ClubID int64  `json:"club_id"`
	Name   string `json:"name"`

	Played int `json:"played"`
	Wins   int `json:"wins"`
	Draws  int `json:"draws"`
	Losses int `json:"losses"`

	GoalsFor     int `json:"goals_for"`
	GoalsAgainst int `json:"goals_against"`
	Points       int `json:"points"`

	// Form is the last five results, oldest first: W, D or L.
	Form string `json:"form"`
}

func (r Row) GoalDiff() int { return r.GoalsFor - r.GoalsAgainst }

// Table accumulates results into a league standing. Not safe for concurrent
// use; the server builds one per request from stored results.
type Table struct {
	rows map[int64]*Row
}

func New() *Table {
	return &Table{rows: make(map[int64]*Row)}
}

// AddClub registers a club so it appears in the table even before its first
// result. Re-adding refreshes the display name.
func (t *Table) AddClub(id int64, name string) {
	if row, ok := t.rows[id]; ok {
		row.Name = name
		return
	}
	t.rows[id] = &Row{ClubID: id, Name: name}
}

// Record folds one final score into the table. Both clubs must have been
// registered first.
func (t *Table) Record(homeID, awayID int64, homeGoals, awayGoals int) error {
	home, ok := t.rows[homeID]
	if !ok {
		return fmt.Errorf("standings: unknown club %d", homeID)
	}
	away, ok := t.rows[awayID]
	if !ok {
		return fmt.Errorf("standings: unknown club %d", awayID)
	}

	home.Played++
	away.Played++
	home.GoalsFor += homeGoals
	home.GoalsAgainst += awayGoals
	away.GoalsFor += awayGoals
	away.GoalsAgainst += homeGoals

	switch {
	case homeGoals > awayGoals:
		home.Wins++
		home.Points += 3
		away.Losses++
		home.Form = pushForm(home.Form, 'W')
		away.Form = pushForm(away.Form, 'L')
	case awayGoals > homeGoals:
		away.Wins++
		away.Points += 3
		home.Losses++
		away.Form = pushForm(away.Form, 'W')
		home.Form = pushForm(home.Form, 'L')
	default:
		home.Draws++
		away.Draws++
		home.Points++
		away.Points++
		home.Form = pushForm(home.Form, 'D')
		away.Form = pushForm(away.Form, 'D')
	}
	return nil
}

// Rows returns the table in league order: points, then goal difference, then
// goals scored, then name as the final stable tiebreak.
func (t *Table) Rows() []Row {
	out := make([]Row, 0, len(t.rows))
	for _, r := range t.rows {
		out = append(out, *r)
	}
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GoalDiff() != b.GoalDiff() {
			return a.GoalDiff() > b.GoalDiff()
		}
		if a.GoalsFor != b.GoalsFor {
			return a.GoalsFor > b.GoalsFor
		}
		return a.Name < b.Name
	})
	return out
}

func pushForm(form string, result byte) string {
	form += string(result)
	if len(form) > formLength {
		form = form[len(form)-formLength:]
	}
	return form
}
