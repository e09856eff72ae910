package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
)

// Spinner plays the cylinder animation.
type Spinner interface {
	Spin(ctx context.Context, frames []string, cycles int, delay time.Duration) error
}

// ScreenSpinner draws frames full-screen with tcell and restores the terminal
// afterwards.
type ScreenSpinner struct{}

func (ScreenSpinner) Spin(ctx context.Context, frames []string, cycles int, delay time.Duration) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	style := tcell.StyleDefault.Foreground(tcell.ColorSilver)
	for i := 0; i < cycles; i++ {
		for _, frame := range frames {
			drawFrame(screen, frame, style)
			screen.Show()
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
	}
	drawFrame(screen, frames[0], style.Foreground(tcell.ColorWhite))
	screen.Show()
	return sleep(ctx, 3*delay)
}

func drawFrame(screen tcell.Screen, frame string, style tcell.Style) {
	screen.Clear()
	w, _ := screen.Size()
	for y, line := range strings.Split(strings.Trim(frame, "\n"), "\n") {
		x := (w - len(line)) / 2
		if x < 0 {
			x = 0
		}
		for _, r := range line {
			screen.SetContent(x, y+1, r, nil, style)
			x++
		}
	}
}

// TextSpinner is the fallback for terminals tcell cannot drive: frames are
// printed with an ANSI clear between them.
type TextSpinner struct {
	W io.Writer
}

func (s TextSpinner) Spin(ctx context.Context, frames []string, cycles int, delay time.Duration) error {
	for i := 0; i < cycles; i++ {
		for _, frame := range frames {
			fmt.Fprint(s.W, "\033[H\033[2J", frame)
			if err := sleep(ctx, delay); err != nil {
				return err
			}
		}
	}
	fmt.Fprint(s.W, "\033[H\033[2J", frames[0])
	return nil
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
