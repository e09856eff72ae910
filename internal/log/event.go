package log

// EventType enumerates all observable game events.
type EventType int

const (
	EventSeeded EventType = iota
	EventSpin
	EventSurvived
	EventJam
	EventDud
	EventBang
	EventTokenCheck // debug-only per-token cutoff comparison
	EventLifeConsumed
	EventLifeFailed
	EventSacrificeOffered
	EventSacrificeRefused
	EventSacrificeLogged
	EventSacrificed
	EventSacrificeFailed
	EventNoRevival
	EventRevived
	EventDead
)

func (e EventType) String() string {
	switch e {
	case EventSeeded:
		return "Seeded"
	case EventSpin:
		return "Spin"
	case EventSurvived:
		return "Survived"
	case EventJam:
		return "Jam"
	case EventDud:
		return "Dud"
	case EventBang:
		return "Bang"
	case EventTokenCheck:
		return "TokenCheck"
	case EventLifeConsumed:
		return "LifeConsumed"
	case EventLifeFailed:
		return "LifeFailed"
	case EventSacrificeOffered:
		return "SacrificeOffered"
	case EventSacrificeRefused:
		return "SacrificeRefused"
	case EventSacrificeLogged:
		return "SacrificeLogged"
	case EventSacrificed:
		return "Sacrificed"
	case EventSacrificeFailed:
		return "SacrificeFailed"
	case EventNoRevival:
		return "NoRevival"
	case EventRevived:
		return "Revived"
	case EventDead:
		return "Dead"
	default:
		return "Unknown"
	}
}

// RoundEvent represents a single observable event in a game session.
type RoundEvent struct {
	Seq     int       // monotonic sequence number
	Round   int       // which round (1-based, 0 outside a round)
	Mode    string    // "normal" or "hardcore"
	Type    EventType // event type
	Path    string    // file involved (life token, victim, log), if any
	Details string    // human-readable detail string
}
