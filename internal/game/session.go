package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/peterkuimelis/roulette/internal/mortality"
)

// ErrAlreadyDead is returned when a dead player starts a session.
var ErrAlreadyDead = errors.New("player is permanently dead")

// Summary describes how a session ended.
type Summary struct {
	Rounds int
	Last   Outcome
	Dead   bool // ended in terminal death
}

// Session runs rounds until the player dies or walks away.
type Session struct {
	engine *Engine
	ui     Presentation
}

// NewSession pairs an engine with a presentation.
func NewSession(engine *Engine, ui Presentation) *Session {
	return &Session{engine: engine, ui: ui}
}

// Run plays the interactive loop. Dead players get their tombstone and
// ErrAlreadyDead. Persistence failures abort with the underlying
// *mortality.ConfigIOError.
func (s *Session) Run(ctx context.Context) (Summary, error) {
	var sum Summary
	player := s.engine.player

	dead, err := player.IsDead()
	if err != nil {
		return sum, err
	}
	if dead {
		ts, _, err := player.DeathTimestamp()
		if err != nil {
			return sum, err
		}
		if err := s.ui.ReportStatus(ctx, Status{Mode: player.Mode(), Dead: true, DiedAt: ts}); err != nil {
			return sum, err
		}
		return sum, ErrAlreadyDead
	}

	for {
		if err := ctx.Err(); err != nil {
			return sum, err
		}
		if err := s.ui.ReportStatus(ctx, s.status()); err != nil {
			return sum, err
		}
		if err := s.ui.DisplaySpinAnimation(ctx); err != nil {
			return sum, err
		}

		res, err := s.engine.PlayRound(ctx)
		sum.Rounds = res.Round
		if ctxErr := ctx.Err(); ctxErr != nil {
			return sum, ctxErr
		}
		if err != nil {
			return sum, fmt.Errorf("round %d: %w", res.Round, err)
		}
		sum.Last = res.Outcome

		if err := s.ui.ReportOutcome(ctx, res); err != nil {
			return sum, err
		}
		if !res.Outcome.Alive() {
			sum.Dead = true
			return sum, nil
		}

		again, err := s.promptContinue(ctx)
		if err != nil {
			return sum, err
		}
		if !again {
			return sum, nil
		}
	}
}

// promptContinue re-asks after each debug toggle.
func (s *Session) promptContinue(ctx context.Context) (bool, error) {
	for {
		choice, err := s.ui.PromptContinue(ctx)
		if err != nil {
			return false, err
		}
		switch choice {
		case ChoiceContinue:
			return true, nil
		case ChoiceToggleDebug:
			if dt, ok := s.engine.revival.(DebugToggler); ok {
				dt.SetDebug(!dt.Debug())
			}
			if err := s.ui.ReportStatus(ctx, s.status()); err != nil {
				return false, err
			}
		default:
			return false, nil
		}
	}
}

func (s *Session) status() Status {
	st := Status{Mode: s.engine.Mode(), Remaining: "0"}
	if s.engine.revival != nil {
		st.Revival = s.engine.revival.HasAny()
		st.Remaining = s.engine.revival.Remaining()
	}
	if dt, ok := s.engine.revival.(DebugToggler); ok {
		st.Debug = dt.Debug()
	}
	return st
}

// Revive spends one revival outside of a round for a player who is already
// dead. Only revivals that predate the death count in normal mode, since the
// provider's cutoff is the time of death. It reports whether the player is
// alive afterwards. An interrupted sacrifice prompt returns ctx.Err().
func Revive(ctx context.Context, player Mortality, revival RevivalProvider) (bool, error) {
	dead, err := player.IsDead()
	if err != nil {
		return false, err
	}
	if !dead {
		return true, nil
	}
	if revival == nil || !revival.HasAny() {
		return false, nil
	}
	if !revival.Consume(ctx) {
		return false, ctx.Err()
	}
	if err := player.Revive(); err != nil {
		return false, err
	}
	return true, nil
}

var _ Mortality = (*mortality.Player)(nil)
