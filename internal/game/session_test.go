package game

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/peterkuimelis/roulette/internal/mortality"
	"github.com/peterkuimelis/roulette/internal/sacrifice"
)

func TestSessionRefusesDeadPlayer(t *testing.T) {
	player := newPlayer(t, mortality.Normal)
	if err := player.MarkDead(); err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	ui := NewScriptedPresentation(t)
	engine := NewEngine(EngineConfig{Player: player, Rand: NewScriptedSource(t)})

	_, err := NewSession(engine, ui).Run(context.Background())
	if !errors.Is(err, ErrAlreadyDead) {
		t.Fatalf("expected ErrAlreadyDead, got %v", err)
	}
	if ui.Spins != 0 || len(ui.Outcomes) != 0 {
		t.Error("dead players must not play")
	}
	if len(ui.Statuses) != 1 || !ui.Statuses[0].Dead || ui.Statuses[0].DiedAt == "" {
		t.Errorf("expected a tombstone status, got %+v", ui.Statuses)
	}
}

func TestSessionPlaysUntilQuit(t *testing.T) {
	player := newPlayer(t, mortality.Normal)
	ui := NewScriptedPresentation(t).AddChoice(ChoiceContinue, ChoiceContinue, ChoiceQuit)
	src := NewScriptedSource(t).Chamber(2).Chamber(3).Chamber(4)
	engine := NewEngine(EngineConfig{Player: player, Revival: &fakeRevival{stock: 1}, Rand: src})

	sum, err := NewSession(engine, ui).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Rounds != 3 || sum.Dead || sum.Last != OutcomeSurvived {
		t.Errorf("unexpected summary %+v", sum)
	}
	if ui.Spins != 3 || len(ui.Outcomes) != 3 {
		t.Errorf("expected 3 spins and outcomes, got %d/%d", ui.Spins, len(ui.Outcomes))
	}
	if ui.Statuses[0].Remaining != "1" || !ui.Statuses[0].Revival {
		t.Errorf("banner should show the spare life, got %+v", ui.Statuses[0])
	}
}

func TestSessionEndsOnTerminalDeath(t *testing.T) {
	player := newPlayer(t, mortality.Normal)
	ui := NewScriptedPresentation(t).AddChoice(ChoiceContinue, ChoiceContinue)
	src := NewScriptedSource(t).Chamber(5).Chamber(1).Roll(0.99)
	engine := NewEngine(EngineConfig{Player: player, Rand: src})

	sum, err := NewSession(engine, ui).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !sum.Dead || sum.Rounds != 2 || sum.Last != OutcomeDead {
		t.Errorf("unexpected summary %+v", sum)
	}
	if dead, _ := player.IsDead(); !dead {
		t.Error("death not persisted")
	}

	// A new session for the same config dir refuses to start.
	_, err = NewSession(NewEngine(EngineConfig{Player: player, Rand: NewScriptedSource(t)}), NewScriptedPresentation(t)).Run(context.Background())
	if !errors.Is(err, ErrAlreadyDead) {
		t.Errorf("expected ErrAlreadyDead on restart, got %v", err)
	}
}

func TestSessionDebugToggle(t *testing.T) {
	revival := &fakeRevival{stock: 1}
	ui := NewScriptedPresentation(t).AddChoice(ChoiceToggleDebug, ChoiceToggleDebug, ChoiceToggleDebug, ChoiceQuit)
	engine := NewEngine(EngineConfig{
		Player:  newPlayer(t, mortality.Normal),
		Revival: revival,
		Rand:    NewScriptedSource(t).Chamber(3),
	})

	sum, err := NewSession(engine, ui).Run(context.Background())
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if sum.Rounds != 1 {
		t.Errorf("toggling debug must not play rounds, got %d", sum.Rounds)
	}
	if !revival.debug {
		t.Error("three toggles should leave debug on")
	}
	// Initial banner plus one per toggle.
	if len(ui.Statuses) != 4 || !ui.Statuses[3].Debug || ui.Statuses[2].Debug {
		t.Errorf("unexpected statuses %+v", ui.Statuses)
	}
}

func TestSessionCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	ui := NewScriptedPresentation(t)
	engine := NewEngine(EngineConfig{Player: newPlayer(t, mortality.Normal), Rand: NewScriptedSource(t)})

	_, err := NewSession(engine, ui).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ui.Spins != 0 {
		t.Error("no round should start after cancellation")
	}
}

func TestSessionConfigIOErrorAborts(t *testing.T) {
	root := filepath.Join(t.TempDir(), "blocker")
	if err := os.WriteFile(root, nil, 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}
	player := mortality.NewPlayer(mortality.NewMarkerStore(root), mortality.Normal)
	engine := NewEngine(EngineConfig{Player: player, Rand: NewScriptedSource(t)})

	_, err := NewSession(engine, NewScriptedPresentation(t)).Run(context.Background())
	var cerr *mortality.ConfigIOError
	if !errors.As(err, &cerr) {
		t.Fatalf("expected ConfigIOError, got %v", err)
	}
}

func TestReviveOutsideRound(t *testing.T) {
	player := newPlayer(t, mortality.Normal)

	alive, err := Revive(context.Background(), player, &fakeRevival{})
	if err != nil || !alive {
		t.Fatalf("living player: alive=%v err=%v", alive, err)
	}

	if err := player.MarkDead(); err != nil {
		t.Fatalf("mark dead: %v", err)
	}
	alive, err = Revive(context.Background(), player, &fakeRevival{})
	if err != nil || alive {
		t.Fatalf("no revival available: alive=%v err=%v", alive, err)
	}

	revival := &fakeRevival{stock: 1}
	alive, err = Revive(context.Background(), player, revival)
	if err != nil || !alive {
		t.Fatalf("expected revival: alive=%v err=%v", alive, err)
	}
	if dead, _ := player.IsDead(); dead {
		t.Error("marker should be cleared")
	}
	if revival.consumed != 1 {
		t.Error("expected one life spent")
	}
}

// interruptingConfirmer cancels the session while the phrase is asked for.
type interruptingConfirmer struct{ cancel context.CancelFunc }

func (c interruptingConfirmer) PromptConfirmation(ctx context.Context, prompt string) (string, error) {
	c.cancel()
	return "", ctx.Err()
}

func TestSessionInterruptedAtSacrificeLeavesPlayerAlive(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	engine, player, altar, victim := newAltarEngine(t, interruptingConfirmer{cancel: cancel})
	ui := NewScriptedPresentation(t)

	sum, err := NewSession(engine, ui).Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if sum.Dead {
		t.Error("an interrupted round must not count as a death")
	}
	if len(ui.Outcomes) != 0 {
		t.Errorf("no outcome should be reported, got %v", ui.Outcomes)
	}
	if dead, _ := player.IsDead(); dead {
		t.Error("interrupt must not write the death marker")
	}
	if _, err := os.Stat(victim); err != nil {
		t.Error("interrupt must keep the victim")
	}
	if _, err := os.Stat(altar.LogPath()); !os.IsNotExist(err) {
		t.Error("interrupt must not write the sacrifice log")
	}
}

var _ sacrifice.Confirmer = interruptingConfirmer{}

func TestReviveInterrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	_, player, altar, victim := newAltarEngine(t, interruptingConfirmer{cancel: cancel})
	if err := player.MarkDead(); err != nil {
		t.Fatalf("mark dead: %v", err)
	}

	alive, err := Revive(ctx, player, altar)
	if !errors.Is(err, context.Canceled) || alive {
		t.Fatalf("expected interrupted revive, got alive=%v err=%v", alive, err)
	}
	if dead, _ := player.IsDead(); !dead {
		t.Error("player stays dead after an interrupted revive")
	}
	if _, err := os.Stat(victim); err != nil {
		t.Error("interrupted revive must keep the victim")
	}
}
