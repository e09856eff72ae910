package game

import (
	"context"

	"github.com/peterkuimelis/roulette/internal/mortality"
)

// Mortality is the persistent death state of one mode; *mortality.Player
// implements it.
type Mortality interface {
	Mode() mortality.Mode
	IsDead() (bool, error)
	DeathTimestamp() (string, bool, error)
	MarkDead() error
	Revive() error
}

// RevivalProvider is a way back from a fatal round. Normal mode uses life
// tokens (*lives.Pool), hardcore mode uses file sacrifice (*sacrifice.Altar).
// Failures inside Consume are reported as false, never as errors; callers
// tell an interrupted prompt apart by checking ctx.
type RevivalProvider interface {
	HasAny() bool
	Consume(ctx context.Context) bool
	Remaining() string
}

// DebugToggler is implemented by providers with verbose diagnostics.
type DebugToggler interface {
	Debug() bool
	SetDebug(on bool)
}

// Choice is the answer to the between-rounds prompt.
type Choice int

const (
	ChoiceQuit Choice = iota
	ChoiceContinue
	ChoiceToggleDebug
)

func (c Choice) String() string {
	switch c {
	case ChoiceQuit:
		return "quit"
	case ChoiceContinue:
		return "continue"
	case ChoiceToggleDebug:
		return "toggle-debug"
	default:
		return "unknown"
	}
}

// Status is the banner shown before a round, or the tombstone shown when a
// dead player tries to play.
type Status struct {
	Mode      mortality.Mode
	Dead      bool
	DiedAt    string
	Revival   bool   // provider currently has something to offer
	Remaining string // provider stock
	Debug     bool
}

// Presentation is the interface the terminal, MCP, and test front-ends implement.
type Presentation interface {
	// DisplaySpinAnimation shows the cylinder spinning before the trigger pull.
	DisplaySpinAnimation(ctx context.Context) error

	// PromptContinue asks whether to play another round.
	PromptContinue(ctx context.Context) (Choice, error)

	// PromptConfirmation asks the player to type a phrase and returns it raw.
	PromptConfirmation(ctx context.Context, prompt string) (string, error)

	// ReportOutcome describes a resolved round.
	ReportOutcome(ctx context.Context, result RoundResult) error

	// ReportStatus shows the pre-round banner or the already-dead screen.
	ReportStatus(ctx context.Context, status Status) error
}
