package sim

import (
	"github.com/ksolsim/football-simulator/internal/roster"
)

// PlayerStats is the frozen per-player line of a completed match.
type PlayerStats struct {
	PlayerID int64           `json:"player_id"`
	Name     string          `json:"name"`
	Side     Side            `json:"side"`
	Pos      roster.Position `json:"pos"`

	Goals          int `json:"goals"`
	ShotsOnTarget  int `json:"shots_on_target"`
	ShotsOffTarget int `json:"shots_off_target"`
	Fouls          int `json:"fouls"`
	Yellows        int `json:"yellows"`
	Reds           int `json:"reds"`
	Turnovers      int `json:"turnovers"`

	Injured bool    `json:"injured"`
	Minutes int     `json:"minutes"`
	Fitness float64 `json:"fitness"` // at the final whistle
}

// TeamStats is the frozen per-side line of a completed match.
type TeamStats struct {
	Name string `json:"name"`

	Goals          int `json:"goals"`
	ShotsOnTarget  int `json:"shots_on_target"`
	ShotsOffTarget int `json:"shots_off_target"`
	Fouls          int `json:"fouls"`
	Yellows        int `json:"yellows"`
	Reds           int `json:"reds"`
	Injuries       int `json:"injuries"`
	Turnovers      int `json:"turnovers"`

	PossessionMinutes int `json:"possession_minutes"`
	Substitutions     int `json:"substitutions"`
	OnPitchAtFullTime int `json:"on_pitch_at_full_time"`
}

// Result is the complete, immutable outcome of one simulated match. Every
// field is reproducible from the inputs alone: same rosters, config and
// seed yield a deeply equal Result.
type Result struct {
	HomeTeam string `json:"home_team"`
	AwayTeam string `json:"away_team"`

	Score     [2]int `json:"score"`
	AddedTime [2]int `json:"added_time"`
	Minutes   int    `json:"minutes"` // the full-time minute

	Events  []Event               `json:"events"`
	Teams   [2]TeamStats          `json:"teams"`
	Players map[int64]PlayerStats `json:"players"`
}

// Winner reports which side won; ok is false for a draw.
func (r Result) Winner() (side Side, ok bool) {
	switch {
	case r.Score[Home] > r.Score[Away]:
		return Home, true
	case r.Score[Away] > r.Score[Home]:
		return Away, true
	default:
		return Home, false
	}
}

func (m *Match) buildResult(fullEnd int) Result {
	r := Result{
		HomeTeam:  m.st.Teams[Home].Team.Name,
		AwayTeam:  m.st.Teams[Away].Team.Name,
		Score:     m.st.Score,
		AddedTime: m.st.AddedTime,
		Minutes:   fullEnd,
		Events:    m.log,
		Players:   make(map[int64]PlayerStats),
	}
	for _, side := range [2]Side{Home, Away} {
		ts := m.st.team(side)
		r.Teams[side] = teamLine(ts)
		for _, p := range ts.Players {
			r.Players[p.Player.ID] = playerLine(p, side)
		}
	}
	return r
}

func teamLine(ts *TeamState) TeamStats {
	return TeamStats{
		Name:              ts.Team.Name,
		Goals:             ts.goals,
		ShotsOnTarget:     ts.shotsOn,
		ShotsOffTarget:    ts.shotsOff,
		Fouls:             ts.fouls,
		Yellows:           ts.yellows,
		Reds:              ts.reds,
		Injuries:          ts.injuries,
		Turnovers:         ts.turnovers,
		PossessionMinutes: ts.possessionMinutes,
		Substitutions:     ts.SubsUsed,
		OnPitchAtFullTime: ts.OnPitchCount(),
	}
}

func playerLine(p *PlayerState, side Side) PlayerStats {
	reds := 0
	if p.SentOff {
		reds = 1
	}
	return PlayerStats{
		PlayerID:       p.Player.ID,
		Name:           p.Player.Name,
		Side:           side,
		Pos:            p.Player.Pos,
		Goals:          p.Goals,
		ShotsOnTarget:  p.ShotsOn,
		ShotsOffTarget: p.ShotsOff,
		Fouls:          p.Fouls,
		Yellows:        p.Yellows,
		Reds:           reds,
		Turnovers:      p.Turnovers,
		Injured:        p.Injured,
		Minutes:        p.Minutes,
		Fitness:        p.Fitness,
	}
}

// ReplayStats rebuilds a full Result from nothing but the rosters, the
// config and a completed event log, walking the clock minute by minute and
// folding each event into fresh state. For any log produced by Run, the
// replayed Result is deeply equal to the one the engine returned; the log
// really is the single source of truth.
func ReplayStats(home, away *roster.Team, cfg Config, events []Event) Result {
	teams := [2]*TeamState{newTeamState(home), newTeamState(away)}
	score := [2]int{}
	possession := Home

	halfEnd, fullEnd := 0, 0
	for _, e := range events {
		switch e.Kind {
		case EventHalfTime:
			halfEnd = e.Minute
		case EventFullTime:
			fullEnd = e.Minute
		}
	}

	i := 0
	for i < len(events) && events[i].Minute == 0 {
		i++ // kickoff: home side already holds possession
	}

	for minute := 1; minute <= fullEnd; minute++ {
		teams[possession].possessionMinutes++
		for _, ts := range teams {
			ts.decayMinute()
		}
		for ; i < len(events) && events[i].Minute == minute; i++ {
			replayEvent(teams, &score, &possession, events[i])
		}
	}

	r := Result{
		HomeTeam:  home.Name,
		AwayTeam:  away.Name,
		Score:     score,
		AddedTime: [2]int{halfEnd - cfg.RegulationMinutes/2, fullEnd - halfEnd - cfg.RegulationMinutes/2},
		Minutes:   fullEnd,
		Events:    events,
		Players:   make(map[int64]PlayerStats),
	}
	for _, side := range [2]Side{Home, Away} {
		r.Teams[side] = teamLine(teams[side])
		for _, p := range teams[side].Players {
			r.Players[p.Player.ID] = playerLine(p, side)
		}
	}
	return r
}

func replayEvent(teams [2]*TeamState, score *[2]int, possession *Side, e Event) {
	ts := teams[e.Side]
	switch e.Kind {
	case EventGoal:
		score[e.Side]++
		ts.goals++
		ts.find(e.PlayerID).Goals++
		*possession = e.Side.Other()

	case EventShotOnTarget:
		ts.shotsOn++
		ts.find(e.PlayerID).ShotsOn++
		*possession = e.Side.Other()

	case EventShotOffTarget:
		ts.shotsOff++
		ts.find(e.PlayerID).ShotsOff++
		*possession = e.Side.Other()

	case EventFoul:
		ts.fouls++
		ts.find(e.PlayerID).Fouls++

	case EventYellowCard:
		ts.fouls++
		ts.yellows++
		p := ts.find(e.PlayerID)
		p.Fouls++
		p.Yellows++

	case EventRedCard:
		ts.fouls++
		ts.reds++
		p := ts.find(e.PlayerID)
		p.Fouls++
		p.SentOff = true
		replayOff(p, e.Minute)

	case EventInjury:
		ts.injuries++
		p := ts.find(e.PlayerID)
		p.Injured = true
		replayOff(p, e.Minute)

	case EventTurnover:
		ts.turnovers++
		ts.find(e.PlayerID).Turnovers++
		*possession = e.Side

	case EventSubstitution:
		if out := ts.find(e.PlayerOut); out != nil {
			replayOff(out, e.Minute)
		}
		in := ts.find(e.PlayerIn)
		in.OnPitch = true
		in.EnteredAt = e.Minute
		ts.SubsUsed++

	case EventHalfTime:
		*possession = Away // away side kicks off the second half
	}
}

func replayOff(p *PlayerState, minute int) {
	if !p.OnPitch {
		return
	}
	p.OnPitch = false
	p.LeftAt = minute
}
