package model

import "strings"

// SortOrder is the order grades must end up in.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// DefaultSortOrder matches the trainer's initial selection ("Highest to lowest").
const DefaultSortOrder = SortDescending

// ParseSortOrder accepts the canonical values, their short forms and the
// trainer labels ("Lowest to highest", "Highest to lowest"), case-insensitively.
func ParseSortOrder(raw string) (SortOrder, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "ascending", "asc", "lowest to highest":
		return SortAscending, true
	case "descending", "desc", "highest to lowest":
		return SortDescending, true
	}
	return "", false
}

// Label returns the human-readable name shown in the trainer.
func (o SortOrder) Label() string {
	if o == SortAscending {
		return "Lowest to highest"
	}
	return "Highest to lowest"
}

// Decision is the user's choice for the pair under comparison.
type Decision string

const (
	DecisionSwap     Decision = "swap"
	DecisionDontSwap Decision = "dont_swap"
)

// Swaps reports whether the decision exchanges the pair. Anything other
// than DecisionSwap leaves the pair in place.
func (d Decision) Swaps() bool { return d == DecisionSwap }

// Phase is the coarse lifecycle position of a simulation.
type Phase string

const (
	PhaseNotStarted Phase = "not_started"
	PhaseInProgress Phase = "in_progress"
	PhaseFinished   Phase = "finished"
)

// SimulationState is the full record threaded through every engine call.
// A nil Roster means no simulation has been started.
type SimulationState struct {
	Roster           Roster    `json:"roster"`
	PassIndex        int       `json:"pass_index"`
	PositionIndex    int       `json:"position_index"`
	SwapCount        int       `json:"swap_count"`
	Finished         bool      `json:"finished"`
	SortOrder        SortOrder `json:"sort_order"`
	CorrectDecisions int       `json:"correct_decisions"`
	TotalDecisions   int       `json:"total_decisions"`
}

// Active reports whether a roster exists.
func (s SimulationState) Active() bool { return s.Roster != nil }

// Phase derives the lifecycle phase from the roster and finished flag.
func (s SimulationState) Phase() Phase {
	switch {
	case !s.Active():
		return PhaseNotStarted
	case s.Finished:
		return PhaseFinished
	default:
		return PhaseInProgress
	}
}

// Clone returns a copy that shares no memory with s.
func (s SimulationState) Clone() SimulationState {
	out := s
	out.Roster = s.Roster.Clone()
	return out
}

// Comparison describes the adjacent pair currently awaiting a decision.
type Comparison struct {
	Pass         int     `json:"pass"`
	Position     int     `json:"position"`
	Left         Student `json:"left"`
	Right        Student `json:"right"`
	RuleSaysSwap bool    `json:"rule_says_swap"`
}

// View holds the display strings an engine call produces. Comparison is nil
// whenever ComparisonText is empty.
type View struct {
	RosterText     string      `json:"roster_text"`
	ComparisonText string      `json:"comparison_text"`
	StatusText     string      `json:"status_text"`
	Comparison     *Comparison `json:"comparison,omitempty"`
}
