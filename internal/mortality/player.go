package mortality

import "time"

// UnknownTime is reported for markers written before timestamps were recorded.
const UnknownTime = "unknown"

// Player is the mortality state of one mode, backed by a MarkerStore.
type Player struct {
	store *MarkerStore
	mode  Mode
	now   func() time.Time
}

// NewPlayer binds a player to a store and mode.
func NewPlayer(store *MarkerStore, mode Mode) *Player {
	return &Player{store: store, mode: mode, now: time.Now}
}

// WithClock replaces the time source used by MarkDead and DeathCutoff.
func (p *Player) WithClock(now func() time.Time) *Player {
	p.now = now
	return p
}

// Mode returns the player's mode.
func (p *Player) Mode() Mode { return p.mode }

// Store returns the backing marker store.
func (p *Player) Store() *MarkerStore { return p.store }

// IsDead reports whether a marker exists for the player's mode.
func (p *Player) IsDead() (bool, error) {
	_, found, err := p.store.Read(p.mode)
	return found, err
}

// DeathTimestamp returns the recorded time of death. ok is false while alive;
// legacy markers report UnknownTime.
func (p *Player) DeathTimestamp() (ts string, ok bool, err error) {
	rec, found, err := p.store.Read(p.mode)
	if err != nil || !found {
		return "", false, err
	}
	if !rec.HasTime() {
		return UnknownTime, true, nil
	}
	return rec.DiedAt.Format(TimeLayout), true, nil
}

// MarkDead records death at the current time, replacing any earlier record.
func (p *Player) MarkDead() error {
	return p.store.Write(p.mode, Record{Dead: true, DiedAt: p.now()})
}

// Revive clears the death record. Reviving a living player does nothing.
func (p *Player) Revive() error {
	return p.store.Clear(p.mode)
}

// DeathCutoff is the boundary for valid life tokens: the time of death, the
// marker's modification time for legacy markers, or now while alive.
func (p *Player) DeathCutoff() (time.Time, error) {
	rec, found, err := p.store.Read(p.mode)
	if err != nil {
		return time.Time{}, err
	}
	if !found {
		return p.now(), nil
	}
	if rec.HasTime() {
		return rec.DiedAt, nil
	}
	return rec.ModTime, nil
}
