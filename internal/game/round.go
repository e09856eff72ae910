package game

import "github.com/peterkuimelis/roulette/internal/mortality"

// Outcome is the category of a resolved round reported to presentation.
type Outcome int

const (
	OutcomeSurvived Outcome = iota
	OutcomeJam
	OutcomeDud
	OutcomeRevived
	OutcomeDead
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSurvived:
		return "survived"
	case OutcomeJam:
		return "jam"
	case OutcomeDud:
		return "dud"
	case OutcomeRevived:
		return "dead-revived"
	case OutcomeDead:
		return "dead-terminal"
	default:
		return "unknown"
	}
}

// Alive reports whether the game may continue after this outcome.
func (o Outcome) Alive() bool {
	return o != OutcomeDead
}

// RoundState is a node of the per-round state machine.
type RoundState int

const (
	StateSpinning RoundState = iota
	StateSurvived
	StateDead
	StateDeadRevived
	StateTerminalDead
)

func (s RoundState) String() string {
	switch s {
	case StateSpinning:
		return "Spinning"
	case StateSurvived:
		return "Resolved-Survived"
	case StateDead:
		return "Resolved-Dead"
	case StateDeadRevived:
		return "Resolved-Dead-Revived"
	case StateTerminalDead:
		return "Terminal-Dead"
	default:
		return "Unknown"
	}
}

// RoundResult is everything presentation needs to describe one round.
type RoundResult struct {
	Round     int
	Mode      mortality.Mode
	Chamber   int // 1-based chamber that came up
	Chambers  int
	Outcome   Outcome
	Trace     []RoundState // states visited, Spinning first
	Remaining string       // revival stock after the round ("2", "???", "0")
	DiedAt    string       // set for OutcomeDead
}

// State returns the final state of the round.
func (r RoundResult) State() RoundState {
	if len(r.Trace) == 0 {
		return StateSpinning
	}
	return r.Trace[len(r.Trace)-1]
}
