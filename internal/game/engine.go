package game

import (
	"context"
	"math/rand"
	"time"

	"github.com/peterkuimelis/roulette/internal/log"
	"github.com/peterkuimelis/roulette/internal/mortality"
)

// Source is the randomness the engine draws from; *rand.Rand implements it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// Rules are the revolver's constants.
type Rules struct {
	Chambers     int
	FatalChamber int
	FailChance   float64 // probability that a live round jams or duds
}

// DefaultRules returns the classic six-chamber revolver for the mode.
func DefaultRules(mode mortality.Mode) Rules {
	r := Rules{Chambers: 6, FatalChamber: 1, FailChance: 0.33}
	if mode == mortality.Hardcore {
		r.FailChance = 0.13
	}
	return r
}

// EngineConfig holds configuration for creating a round engine.
type EngineConfig struct {
	Rules   Rules
	Player  Mortality
	Revival RevivalProvider // nil means no way back
	Rand    Source          // overrides Seed when set
	Seed    int64           // RNG seed (0 for random)
	Logger  log.EventLogger
}

// Engine resolves trigger pulls for one player.
type Engine struct {
	rules   Rules
	player  Mortality
	revival RevivalProvider
	rng     Source
	logger  log.EventLogger
	round   int
}

// NewEngine creates an engine from the given config.
func NewEngine(cfg EngineConfig) *Engine {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	rng := cfg.Rand
	if rng == nil {
		seed := cfg.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		rng = rand.New(rand.NewSource(seed))
	}
	rules := cfg.Rules
	if rules.Chambers == 0 {
		rules = DefaultRules(cfg.Player.Mode())
	}
	return &Engine{
		rules:   rules,
		player:  cfg.Player,
		revival: cfg.Revival,
		rng:     rng,
		logger:  logger,
	}
}

// Mode returns the mode of the engine's player.
func (e *Engine) Mode() mortality.Mode { return e.player.Mode() }

// Rules returns the engine's revolver constants.
func (e *Engine) Rules() Rules { return e.rules }

// Revival returns the engine's revival provider, possibly nil.
func (e *Engine) Revival() RevivalProvider { return e.revival }

// Rounds returns how many rounds have been played.
func (e *Engine) Rounds() int { return e.round }

// PlayRound spins, pulls, and settles the consequences. Errors are a failure
// to persist mortality state, or ctx.Err() when the revival prompt was
// interrupted, in which case nothing is written. Other revival failures end
// in terminal death.
func (e *Engine) PlayRound(ctx context.Context) (RoundResult, error) {
	e.round++
	mode := e.player.Mode()
	res := RoundResult{
		Round:    e.round,
		Mode:     mode,
		Chambers: e.rules.Chambers,
		Trace:    []RoundState{StateSpinning},
	}
	e.logger.Log(log.NewSpinEvent(e.round, mode.String()))

	res.Chamber = e.rng.Intn(e.rules.Chambers) + 1
	if res.Chamber != e.rules.FatalChamber {
		res.Outcome = OutcomeSurvived
		res.Trace = append(res.Trace, StateSurvived)
		res.Remaining = e.remaining()
		e.logger.Log(log.NewSurvivedEvent(e.round, mode.String(), res.Chamber, res.Chambers))
		return res, nil
	}

	// Live round: the gun may still fail.
	if e.rng.Float64() < e.rules.FailChance {
		if e.rng.Float64() < 0.5 {
			res.Outcome = OutcomeJam
			e.logger.Log(log.NewJamEvent(e.round, mode.String()))
		} else {
			res.Outcome = OutcomeDud
			e.logger.Log(log.NewDudEvent(e.round, mode.String()))
		}
		res.Trace = append(res.Trace, StateSurvived)
		res.Remaining = e.remaining()
		return res, nil
	}

	res.Trace = append(res.Trace, StateDead)
	e.logger.Log(log.NewBangEvent(e.round, mode.String(), res.Chamber))

	if e.tryRevive(ctx) {
		if err := e.player.Revive(); err != nil {
			return res, err
		}
		res.Outcome = OutcomeRevived
		res.Trace = append(res.Trace, StateDeadRevived)
		res.Remaining = e.remaining()
		e.logger.Log(log.NewRevivedEvent(e.round, mode.String()))
		return res, nil
	}

	if err := ctx.Err(); err != nil {
		return res, err
	}

	if err := e.player.MarkDead(); err != nil {
		return res, err
	}
	res.Outcome = OutcomeDead
	res.Trace = append(res.Trace, StateTerminalDead)
	res.Remaining = e.remaining()
	diedAt, _, err := e.player.DeathTimestamp()
	if err != nil {
		return res, err
	}
	res.DiedAt = diedAt
	e.logger.Log(log.NewDeadEvent(e.round, mode.String(), res.DiedAt))
	return res, nil
}

func (e *Engine) tryRevive(ctx context.Context) bool {
	mode := e.player.Mode().String()
	if e.revival == nil {
		e.logger.Log(log.NewNoRevivalEvent(e.round, mode, "no revival in this game"))
		return false
	}
	if !e.revival.HasAny() {
		e.logger.Log(log.NewNoRevivalEvent(e.round, mode, "nothing left to spend"))
		return false
	}
	if !e.revival.Consume(ctx) {
		reason := "revival failed"
		if ctx.Err() != nil {
			reason = "interrupted"
		}
		e.logger.Log(log.NewNoRevivalEvent(e.round, mode, reason))
		return false
	}
	return true
}

func (e *Engine) remaining() string {
	if e.revival == nil {
		return "0"
	}
	return e.revival.Remaining()
}
