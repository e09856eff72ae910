// Package lives manages extra lives for normal mode: plain files in a lives
// directory whose modification time decides whether they may revive a player.
package lives

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"time"

	"github.com/peterkuimelis/roulette/internal/log"
)

const (
	// SeedMarker is the sentinel written next to the death marker once the
	// starter life has been handed out.
	SeedMarker  = ".first_run_complete"
	starterName = "starter_life.txt"
	starterText = "Your first life. Good luck."
)

// CutoffSource yields the death cutoff; *mortality.Player implements it.
type CutoffSource interface {
	DeathCutoff() (time.Time, error)
}

// Token is one life file.
type Token struct {
	Path    string
	ModTime time.Time
}

// Config holds the settings for a Pool.
type Config struct {
	Dir        string // lives directory, created on demand
	SeedMarker string // full path of the first-run sentinel
	Cutoff     CutoffSource
	Logger     log.EventLogger
	Debug      bool
}

// Pool is the set of life tokens available to one player.
type Pool struct {
	dir        string
	seedMarker string
	cutoff     CutoffSource
	logger     log.EventLogger
	debug      bool
	remove     func(string) error
}

// NewPool creates a pool from the given config.
func NewPool(cfg Config) *Pool {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	return &Pool{
		dir:        cfg.Dir,
		seedMarker: cfg.SeedMarker,
		cutoff:     cfg.Cutoff,
		logger:     logger,
		debug:      cfg.Debug,
		remove:     os.Remove,
	}
}

// Dir returns the lives directory.
func (p *Pool) Dir() string { return p.dir }

// Debug reports whether per-token diagnostics are emitted by default.
func (p *Pool) Debug() bool { return p.debug }

// SetDebug toggles per-token diagnostics for calls that don't force them.
func (p *Pool) SetDebug(on bool) { p.debug = on }

// EnsureSeeded hands out the one starter life on first-ever use. The sentinel
// rather than the token count guards this, so consuming the starter life
// never triggers a reseed. It reports whether a token was created.
func (p *Pool) EnsureSeeded() (bool, error) {
	if err := os.MkdirAll(p.dir, 0o755); err != nil {
		return false, fmt.Errorf("create lives dir: %w", err)
	}

	_, err := os.Stat(p.seedMarker)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("check seed marker: %w", err)
	}

	starter := filepath.Join(p.dir, starterName)
	if err := os.WriteFile(starter, []byte(starterText), 0o644); err != nil {
		return false, fmt.Errorf("create starter life: %w", err)
	}
	if err := os.WriteFile(p.seedMarker, nil, 0o644); err != nil {
		return true, fmt.Errorf("write seed marker: %w", err)
	}

	p.logger.Log(log.NewSeededEvent("normal", starter))
	return true, nil
}

// Cutoff returns the current death cutoff.
func (p *Pool) Cutoff() (time.Time, error) {
	return p.cutoff.DeathCutoff()
}

// ValidTokens lists tokens modified strictly before the cutoff, oldest first.
// With debug set (or the pool's debug toggle on) every regular file produces a
// TokenCheck event; the result is the same either way.
func (p *Pool) ValidTokens(debug bool) ([]Token, error) {
	return p.scan(debug || p.debug)
}

func (p *Pool) scan(debug bool) ([]Token, error) {
	cutoff, err := p.Cutoff()
	if err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(p.dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list lives: %w", err)
	}

	var valid []Token
	for _, entry := range entries {
		path := filepath.Join(p.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		modTime := info.ModTime()
		if debug {
			p.logger.Log(log.NewTokenCheckEvent("normal", path, modTime, cutoff))
		}
		if modTime.Before(cutoff) {
			valid = append(valid, Token{Path: path, ModTime: modTime})
		}
	}

	sort.Slice(valid, func(i, j int) bool {
		if valid[i].ModTime.Equal(valid[j].ModTime) {
			return valid[i].Path < valid[j].Path
		}
		return valid[i].ModTime.Before(valid[j].ModTime)
	})
	return valid, nil
}

// Count returns the number of valid tokens.
func (p *Pool) Count() (int, error) {
	tokens, err := p.ValidTokens(false)
	return len(tokens), err
}

// HasAny reports whether at least one valid token exists. Listing failures
// count as no lives.
func (p *Pool) HasAny() bool {
	n, err := p.Count()
	if err != nil {
		p.logger.Log(log.NewLifeFailedEvent("normal", p.dir, err))
		return false
	}
	return n > 0
}

// ConsumeOldest deletes the oldest valid token. It returns false without side
// effects when there is none, and false when the deletion itself fails; the
// caller must not treat either as a revival.
func (p *Pool) ConsumeOldest() bool {
	tokens, err := p.ValidTokens(false)
	if err != nil {
		p.logger.Log(log.NewLifeFailedEvent("normal", p.dir, err))
		return false
	}
	if len(tokens) == 0 {
		return false
	}

	oldest := tokens[0]
	if err := p.remove(oldest.Path); err != nil {
		p.logger.Log(log.NewLifeFailedEvent("normal", oldest.Path, err))
		return false
	}

	remaining, _ := p.scan(false)
	p.logger.Log(log.NewLifeConsumedEvent("normal", oldest.Path, len(remaining)))
	return true
}

// Consume implements game.RevivalProvider. Tokens never prompt, so ctx is
// unused.
func (p *Pool) Consume(ctx context.Context) bool {
	return p.ConsumeOldest()
}

// Remaining renders the valid token count for status lines. Diagnostics are
// never emitted here.
func (p *Pool) Remaining() string {
	tokens, err := p.scan(false)
	if err != nil {
		return "0"
	}
	return strconv.Itoa(len(tokens))
}
