package sim

// EventKind identifies what happened in a match minute.
type EventKind string

const (
	EventKickoff       EventKind = "kickoff"
	EventGoal          EventKind = "goal"
	EventShotOnTarget  EventKind = "shot_on_target"
	EventShotOffTarget EventKind = "shot_off_target"
	EventFoul          EventKind = "foul"
	EventYellowCard    EventKind = "yellow_card"
	EventRedCard       EventKind = "red_card"
	EventInjury        EventKind = "injury"
	EventSubstitution  EventKind = "substitution"
	EventTurnover      EventKind = "turnover"
	EventHalfTime      EventKind = "half_time"
	EventFullTime      EventKind = "full_time"
)

// Event is one immutable entry in the match log. The log is append-only,
// ordered by minute then append order, and is the sole source of truth:
// final score and every statistic must be derivable by replaying it
// (see ReplayStats).
type Event struct {
	Minute int       `json:"minute"`
	Kind   EventKind `json:"kind"`
	Side   Side      `json:"side"`

	// PlayerID is the acting player: scorer, shooter, offender, injured or
	// ball winner. Zero for team-level events (kickoff, half/full time).
	PlayerID int64 `json:"player_id,omitempty"`

	// PlayerIn/PlayerOut are set only for substitution events.
	PlayerIn  int64 `json:"player_in,omitempty"`
	PlayerOut int64 `json:"player_out,omitempty"`
}
