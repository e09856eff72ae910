package log

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"
)

// EventLogger is the interface for logging game events.
type EventLogger interface {
	Log(event RoundEvent)
	Events() []RoundEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	events []RoundEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event RoundEvent) {
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
}

func (l *MemoryLogger) Events() []RoundEvent {
	return l.events
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []RoundEvent {
	var result []RoundEvent
	for _, e := range l.events {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() RoundEvent {
	if len(l.events) == 0 {
		return RoundEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event RoundEvent) {
	l.MemoryLogger.Log(event)
	fmt.Fprintln(l.w, FormatEvent(event))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e RoundEvent) string {
	mode := e.Mode
	if mode == "" {
		mode = "-"
	}
	if e.Round == 0 {
		return fmt.Sprintf("    %-8s| %s", mode, e.Details)
	}
	return fmt.Sprintf("R%-2d %-8s| %s", e.Round, mode, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []RoundEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// FormatTime renders an mtime or cutoff for diagnostics.
func FormatTime(t time.Time) string {
	return t.Format("2006-01-02 15:04:05.000")
}

// --- Helper constructors for common events ---

func NewSeededEvent(mode, path string) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventSeeded,
		Path:    path,
		Details: fmt.Sprintf("Starter life created: %s", filepath.Base(path)),
	}
}

func NewSpinEvent(round int, mode string) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventSpin,
		Details: "Cylinder spun, trigger pulled",
	}
}

func NewSurvivedEvent(round int, mode string, chamber, chambers int) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventSurvived,
		Details: fmt.Sprintf("Chamber %d/%d was empty", chamber, chambers),
	}
}

func NewJamEvent(round int, mode string) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventJam,
		Details: "Live chamber, but the gun jammed",
	}
}

func NewDudEvent(round int, mode string) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventDud,
		Details: "Live chamber, but the round was a dud",
	}
}

func NewBangEvent(round int, mode string, chamber int) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventBang,
		Details: fmt.Sprintf("BANG! Chamber %d was loaded", chamber),
	}
}

func NewTokenCheckEvent(mode, path string, modTime, cutoff time.Time) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventTokenCheck,
		Path:    path,
		Details: fmt.Sprintf("DEBUG: %s modified %s, cutoff %s, valid %t", filepath.Base(path), FormatTime(modTime), FormatTime(cutoff), modTime.Before(cutoff)),
	}
}

func NewLifeConsumedEvent(mode, path string, remaining int) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventLifeConsumed,
		Path:    path,
		Details: fmt.Sprintf("Extra life consumed: %s (%d remaining)", filepath.Base(path), remaining),
	}
}

func NewLifeFailedEvent(mode, path string, err error) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventLifeFailed,
		Path:    path,
		Details: fmt.Sprintf("Error consuming life: %v", err),
	}
}

func NewSacrificeOfferedEvent(mode, path string) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventSacrificeOffered,
		Path:    path,
		Details: fmt.Sprintf("Sacrifice required, selected victim: %s", path),
	}
}

func NewSacrificeRefusedEvent(mode, path string) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventSacrificeRefused,
		Path:    path,
		Details: "Sacrifice refused. You remain dead.",
	}
}

func NewSacrificeLoggedEvent(mode, logPath, victim string) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventSacrificeLogged,
		Path:    victim,
		Details: fmt.Sprintf("Sacrifice of %s logged to %s", victim, logPath),
	}
}

func NewSacrificedEvent(mode, path string) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventSacrificed,
		Path:    path,
		Details: fmt.Sprintf("System file deleted: %s. Your system may now be unstable.", filepath.Base(path)),
	}
}

func NewSacrificeFailedEvent(mode, path string, err error) RoundEvent {
	return RoundEvent{
		Mode:    mode,
		Type:    EventSacrificeFailed,
		Path:    path,
		Details: fmt.Sprintf("Sacrifice failed: %v. You remain dead.", err),
	}
}

func NewNoRevivalEvent(round int, mode, reason string) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventNoRevival,
		Details: fmt.Sprintf("No revival (%s)", reason),
	}
}

func NewRevivedEvent(round int, mode string) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventRevived,
		Details: "You've been revived! The game continues.",
	}
}

func NewDeadEvent(round int, mode, diedAt string) RoundEvent {
	return RoundEvent{
		Round:   round,
		Mode:    mode,
		Type:    EventDead,
		Details: fmt.Sprintf("Game over at %s. You can NEVER play again.", diedAt),
	}
}
