// Package sacrifice implements hardcore revival: a random real file from a
// system directory is deleted, after explicit confirmation, as the price of
// coming back.
package sacrifice

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/peterkuimelis/roulette/internal/log"
	"github.com/peterkuimelis/roulette/internal/mortality"
)

// LogFile is the append-only audit log kept in the hardcore config dir.
const LogFile = "sacrifices.log"

// Confirmer asks the human to type the confirmation phrase.
type Confirmer interface {
	PromptConfirmation(ctx context.Context, prompt string) (string, error)
}

// Picker draws the victim index; *rand.Rand implements it.
type Picker interface {
	Intn(n int) int
}

// Config holds the settings for an Altar.
type Config struct {
	Dir       string // directory victims are taken from, not recursive
	LogPath   string
	Phrase    string // exact, case-sensitive confirmation phrase
	Confirmer Confirmer
	Rand      Picker
	Logger    log.EventLogger
	Now       func() time.Time
}

// Altar is the hardcore revival provider.
type Altar struct {
	dir     string
	logPath string
	phrase  string
	confirm Confirmer
	rng     Picker
	logger  log.EventLogger
	now     func() time.Time
}

// NewAltar creates an altar from the given config.
func NewAltar(cfg Config) *Altar {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewMemoryLogger()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	phrase := cfg.Phrase
	if phrase == "" {
		phrase = "SACRIFICE"
	}
	return &Altar{
		dir:     cfg.Dir,
		logPath: cfg.LogPath,
		phrase:  phrase,
		confirm: cfg.Confirmer,
		rng:     rng,
		logger:  logger,
		now:     now,
	}
}

// SetConfirmer replaces the confirmation collaborator.
func (a *Altar) SetConfirmer(c Confirmer) {
	a.confirm = c
}

// LogPath returns where sacrifices are recorded.
func (a *Altar) LogPath() string { return a.logPath }

// candidates lists the accessible regular files directly under dir. Entries
// that cannot be stat'ed are skipped; an unreadable dir yields none.
func (a *Altar) candidates() []string {
	entries, err := os.ReadDir(a.dir)
	if err != nil && len(entries) == 0 {
		return nil
	}
	var files []string
	for _, entry := range entries {
		path := filepath.Join(a.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil || !info.Mode().IsRegular() {
			continue
		}
		files = append(files, path)
	}
	return files
}

// HasCandidate reports whether any file could be sacrificed.
func (a *Altar) HasCandidate() bool {
	return len(a.candidates()) > 0
}

// PickCandidate selects a victim uniformly at random.
func (a *Altar) PickCandidate() (string, bool) {
	files := a.candidates()
	if len(files) == 0 {
		return "", false
	}
	return files[a.rng.Intn(len(files))], true
}

// HasAny implements game.RevivalProvider.
func (a *Altar) HasAny() bool {
	return a.HasCandidate()
}

// Remaining implements game.RevivalProvider. Lives are theoretical here.
func (a *Altar) Remaining() string {
	if a.HasCandidate() {
		return "???"
	}
	return "0"
}

// Consume implements game.RevivalProvider: pick a victim, ask for the exact
// phrase, log, then delete. The log line is written before the deletion and
// stays even if the deletion fails. An interrupted prompt writes and deletes
// nothing; the caller sees ctx.Err().
func (a *Altar) Consume(ctx context.Context) bool {
	victim, ok := a.PickCandidate()
	if !ok {
		a.logger.Log(log.NewSacrificeFailedEvent("hardcore", a.dir, errors.New("no accessible system files found")))
		return false
	}
	a.logger.Log(log.NewSacrificeOfferedEvent("hardcore", victim))

	if a.confirm == nil {
		a.logger.Log(log.NewSacrificeRefusedEvent("hardcore", victim))
		return false
	}
	prompt := fmt.Sprintf("THIS WILL DELETE A REAL SYSTEM FILE: %s\nType '%s' to delete this file and revive", victim, a.phrase)
	answer, err := a.confirm.PromptConfirmation(ctx, prompt)
	if err != nil && ctx.Err() != nil {
		a.logger.Log(log.NewSacrificeFailedEvent("hardcore", victim, err))
		return false
	}
	if err != nil || strings.TrimSpace(answer) != a.phrase {
		a.logger.Log(log.NewSacrificeRefusedEvent("hardcore", victim))
		return false
	}

	if err := a.appendLog(victim); err != nil {
		a.logger.Log(log.NewSacrificeFailedEvent("hardcore", victim, err))
		return false
	}
	a.logger.Log(log.NewSacrificeLoggedEvent("hardcore", a.logPath, victim))

	if err := os.Remove(victim); err != nil {
		a.logger.Log(log.NewSacrificeFailedEvent("hardcore", victim, err))
		return false
	}
	a.logger.Log(log.NewSacrificedEvent("hardcore", victim))
	return true
}

func (a *Altar) appendLog(victim string) error {
	f, err := os.OpenFile(a.logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open sacrifice log: %w", err)
	}
	line := fmt.Sprintf("%s | DELETED: %s\n", a.now().Format(mortality.TimeLayout), victim)
	if _, err := f.WriteString(line); err != nil {
		f.Close()
		return fmt.Errorf("write sacrifice log: %w", err)
	}
	return f.Close()
}
