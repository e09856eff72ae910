// Package app wires configuration into a ready-to-play runtime for one mode.
package app

import (
	"math/rand"
	"path/filepath"
	"time"

	"github.com/peterkuimelis/roulette/internal/config"
	"github.com/peterkuimelis/roulette/internal/game"
	"github.com/peterkuimelis/roulette/internal/lives"
	"github.com/peterkuimelis/roulette/internal/log"
	"github.com/peterkuimelis/roulette/internal/mortality"
	"github.com/peterkuimelis/roulette/internal/sacrifice"
)

// Runtime is everything one mode needs, built once per process.
type Runtime struct {
	Config  config.Config
	Mode    mortality.Mode
	Store   *mortality.MarkerStore
	Player  *mortality.Player
	Pool    *lives.Pool      // normal mode only
	Altar   *sacrifice.Altar // hardcore mode only
	Revival game.RevivalProvider
	Engine  *game.Engine
	Logger  log.EventLogger
}

// Build creates the runtime for mode. confirm answers hardcore sacrifice
// prompts and may be nil for front-ends that never sacrifice. The only error
// is a *mortality.ConfigIOError for an unusable config directory.
func Build(cfg config.Config, mode mortality.Mode, confirm sacrifice.Confirmer, logger log.EventLogger) (*Runtime, error) {
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	store := mortality.NewMarkerStore(cfg.ConfigRoot)
	dir, err := store.Dir(mode)
	if err != nil {
		return nil, err
	}
	player := mortality.NewPlayer(store, mode)

	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(seed))

	rt := &Runtime{
		Config: cfg,
		Mode:   mode,
		Store:  store,
		Player: player,
		Logger: logger,
	}

	switch mode {
	case mortality.Hardcore:
		rt.Altar = sacrifice.NewAltar(sacrifice.Config{
			Dir:       cfg.SacrificeDir,
			LogPath:   filepath.Join(dir, sacrifice.LogFile),
			Phrase:    cfg.ConfirmPhrase,
			Confirmer: confirm,
			Rand:      rng,
			Logger:    logger,
		})
		rt.Revival = rt.Altar
	default:
		rt.Pool = lives.NewPool(lives.Config{
			Dir:        cfg.LivesDir,
			SeedMarker: filepath.Join(dir, lives.SeedMarker),
			Cutoff:     player,
			Logger:     logger,
			Debug:      cfg.Debug,
		})
		rt.Revival = rt.Pool
	}

	rt.Engine = game.NewEngine(game.EngineConfig{
		Rules: game.Rules{
			Chambers:     cfg.Chambers,
			FatalChamber: cfg.FatalChamber,
			FailChance:   cfg.FailChance(mode == mortality.Hardcore),
		},
		Player:  player,
		Revival: rt.Revival,
		Rand:    rng,
		Logger:  logger,
	})
	return rt, nil
}

// SeedLives hands out the starter life on first use. Failures are reported
// as events; a missing starter life never stops the game.
func (rt *Runtime) SeedLives() {
	if rt.Pool == nil {
		return
	}
	if _, err := rt.Pool.EnsureSeeded(); err != nil {
		rt.Logger.Log(log.NewLifeFailedEvent(rt.Mode.String(), rt.Pool.Dir(), err))
	}
}

// Status describes the player without playing.
func (rt *Runtime) Status() (game.Status, error) {
	st := game.Status{Mode: rt.Mode, Remaining: rt.Revival.Remaining()}
	dead, err := rt.Player.IsDead()
	if err != nil {
		return st, err
	}
	st.Dead = dead
	if dead {
		st.DiedAt, _, err = rt.Player.DeathTimestamp()
		if err != nil {
			return st, err
		}
	}
	st.Revival = rt.Revival.HasAny()
	if rt.Pool != nil {
		st.Debug = rt.Pool.Debug()
	}
	return st, nil
}

// Paths lists where the mode keeps its state.
type Paths struct {
	ConfigRoot   string `json:"config_root"`
	ModeDir      string `json:"mode_dir"`
	Marker       string `json:"marker"`
	MarkerExists bool   `json:"marker_exists"`
	LivesDir     string `json:"lives_dir,omitempty"`
	SacrificeLog string `json:"sacrifice_log,omitempty"`
}

// Where resolves the mode's paths.
func (rt *Runtime) Where() (Paths, error) {
	p := Paths{
		ConfigRoot: rt.Store.Root(),
		ModeDir:    rt.Store.DirPath(rt.Mode),
		Marker:     rt.Store.MarkerPath(rt.Mode),
	}
	if abs, err := filepath.Abs(p.Marker); err == nil {
		p.Marker = abs
	}
	dead, err := rt.Player.IsDead()
	if err != nil {
		return p, err
	}
	p.MarkerExists = dead
	if rt.Pool != nil {
		p.LivesDir, _ = filepath.Abs(rt.Pool.Dir())
	}
	if rt.Altar != nil {
		p.SacrificeLog = rt.Altar.LogPath()
	}
	return p, nil
}
