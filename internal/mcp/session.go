package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/peterkuimelis/roulette/internal/app"
	"github.com/peterkuimelis/roulette/internal/config"
	"github.com/peterkuimelis/roulette/internal/game"
	"github.com/peterkuimelis/roulette/internal/log"
	"github.com/peterkuimelis/roulette/internal/mortality"
)

// EventView is a round event as presented in tool responses.
type EventView struct {
	Seq     int    `json:"seq"`
	Round   int    `json:"round,omitempty"`
	Type    string `json:"type"`
	Path    string `json:"path,omitempty"`
	Details string `json:"details"`
}

// StatusView describes one mode's player.
type StatusView struct {
	Mode      string `json:"mode"`
	Dead      bool   `json:"dead"`
	DiedAt    string `json:"died_at,omitempty"`
	Revival   bool   `json:"revival_available"`
	Remaining string `json:"remaining"`
}

// RoundView is the result of one pull of the trigger.
type RoundView struct {
	Round    int    `json:"round"`
	Chamber  int    `json:"chamber"`
	Chambers int    `json:"chambers"`
	Outcome  string `json:"outcome"`
	State    string `json:"state"`
}

// ToolResponse is the JSON envelope returned by all MCP tools.
type ToolResponse struct {
	Events []EventView `json:"events"`
	Status *StatusView `json:"status,omitempty"`
	Round  *RoundView  `json:"round,omitempty"`
	Paths  *app.Paths  `json:"paths,omitempty"`
}

// Session holds one runtime per mode for the lifetime of the stdio process.
// Mortality itself lives on disk, so a fresh process sees the same player.
type Session struct {
	cfg config.Config

	mu       sync.Mutex
	runtimes map[mortality.Mode]*app.Runtime
	loggers  map[mortality.Mode]*log.MemoryLogger
	seen     map[mortality.Mode]int
}

// NewSession creates a session over cfg.
func NewSession(cfg config.Config) *Session {
	return &Session{
		cfg:      cfg,
		runtimes: make(map[mortality.Mode]*app.Runtime),
		loggers:  make(map[mortality.Mode]*log.MemoryLogger),
		seen:     make(map[mortality.Mode]int),
	}
}

// runtime returns the cached runtime for mode. Caller holds s.mu.
func (s *Session) runtime(mode mortality.Mode) (*app.Runtime, error) {
	if rt, ok := s.runtimes[mode]; ok {
		return rt, nil
	}
	logger := log.NewMemoryLogger()
	// No confirmer: a tool call can never authorize a sacrifice.
	rt, err := app.Build(s.cfg, mode, nil, logger)
	if err != nil {
		return nil, err
	}
	rt.SeedLives()
	s.runtimes[mode] = rt
	s.loggers[mode] = logger
	return rt, nil
}

// drainEvents returns events logged for mode since the last drain.
// Caller holds s.mu.
func (s *Session) drainEvents(mode mortality.Mode) []EventView {
	logger, ok := s.loggers[mode]
	if !ok {
		return []EventView{}
	}
	all := logger.Events()
	views := make([]EventView, 0, len(all)-s.seen[mode])
	for _, e := range all[s.seen[mode]:] {
		views = append(views, EventView{
			Seq:     e.Seq,
			Round:   e.Round,
			Type:    e.Type.String(),
			Path:    e.Path,
			Details: e.Details,
		})
	}
	s.seen[mode] = len(all)
	return views
}

// Status reports the player of mode.
func (s *Session) Status(mode mortality.Mode) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, err := s.runtime(mode)
	if err != nil {
		return nil, err
	}
	st, err := rt.Status()
	if err != nil {
		return nil, err
	}
	return &ToolResponse{
		Events: s.drainEvents(mode),
		Status: statusView(st),
	}, nil
}

// PullTrigger plays one normal-mode round. Hardcore rounds need a human at
// the confirmation prompt and are never played here.
func (s *Session) PullTrigger(ctx context.Context) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, err := s.runtime(mortality.Normal)
	if err != nil {
		return nil, err
	}
	dead, err := rt.Player.IsDead()
	if err != nil {
		return nil, err
	}
	if dead {
		return nil, game.ErrAlreadyDead
	}

	res, err := rt.Engine.PlayRound(ctx)
	if err != nil {
		return nil, err
	}
	st, err := rt.Status()
	if err != nil {
		return nil, err
	}
	return &ToolResponse{
		Events: s.drainEvents(mortality.Normal),
		Status: statusView(st),
		Round: &RoundView{
			Round:    res.Round,
			Chamber:  res.Chamber,
			Chambers: res.Chambers,
			Outcome:  res.Outcome.String(),
			State:    res.State().String(),
		},
	}, nil
}

// Where reports the on-disk locations of mode.
func (s *Session) Where(mode mortality.Mode) (*ToolResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rt, err := s.runtime(mode)
	if err != nil {
		return nil, err
	}
	paths, err := rt.Where()
	if err != nil {
		return nil, err
	}
	return &ToolResponse{
		Events: s.drainEvents(mode),
		Paths:  &paths,
	}, nil
}

func statusView(st game.Status) *StatusView {
	return &StatusView{
		Mode:      st.Mode.String(),
		Dead:      st.Dead,
		DiedAt:    st.DiedAt,
		Revival:   st.Revival,
		Remaining: st.Remaining,
	}
}

// respondJSON marshals a ToolResponse to a JSON string.
func respondJSON(resp *ToolResponse) string {
	data, err := json.Marshal(resp)
	if err != nil {
		return fmt.Sprintf(`{"error": "marshal error: %v"}`, err)
	}
	return string(data)
}
