// Package cli is the interactive terminal front-end of the game.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/peterkuimelis/roulette/internal/game"
	"github.com/peterkuimelis/roulette/internal/mortality"
)

// DebugWord typed at the continue prompt toggles lives diagnostics.
const DebugWord = "debug"

// Options configures a Terminal.
type Options struct {
	Spinner    Spinner // nil disables the animation
	FrameDelay time.Duration
	Sound      *Sound // nil is silent
}

// Terminal implements game.Presentation over a line-oriented reader and writer.
type Terminal struct {
	in    *bufio.Reader
	out   io.Writer
	opts  Options
	once  sync.Once
	lines chan string
}

// NewTerminal creates a terminal front-end.
func NewTerminal(in io.Reader, out io.Writer, opts Options) *Terminal {
	return &Terminal{in: bufio.NewReader(in), out: out, opts: opts}
}

// readLine returns the next input line without its newline. Input is pumped
// on a helper goroutine so an interrupt can abandon a pending prompt.
func (t *Terminal) readLine(ctx context.Context) (string, error) {
	t.once.Do(func() {
		t.lines = make(chan string)
		go t.pump()
	})
	select {
	case <-ctx.Done():
		return "", ctx.Err()
	case line, ok := <-t.lines:
		if !ok {
			return "", io.EOF
		}
		return strings.TrimRight(line, "\r\n"), nil
	}
}

func (t *Terminal) pump() {
	defer close(t.lines)
	for {
		line, err := t.in.ReadString('\n')
		if line != "" {
			t.lines <- line
		}
		if err != nil {
			return
		}
	}
}

// waitEnter blocks until ENTER; a closed input counts as ENTER.
func (t *Terminal) waitEnter(ctx context.Context, prompt string) error {
	fmt.Fprint(t.out, prompt)
	_, err := t.readLine(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(t.out)
		return nil
	}
	return err
}

// DisplaySpinAnimation implements game.Presentation.
func (t *Terminal) DisplaySpinAnimation(ctx context.Context) error {
	if err := t.waitEnter(ctx, "Press ENTER to spin the cylinder..."); err != nil {
		return err
	}

	fmt.Fprintln(t.out, "\n You spin the cylinder...")
	if t.opts.Spinner != nil {
		err := t.opts.Spinner.Spin(ctx, frames, 3, t.opts.FrameDelay)
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return err
		}
		if err != nil {
			// No usable screen: fall back to plain frames.
			if err := (TextSpinner{W: t.out}).Spin(ctx, frames, 3, t.opts.FrameDelay); err != nil {
				return err
			}
		}
	}

	fmt.Fprintln(t.out, "\n"+rule)
	if err := t.waitEnter(ctx, "Press ENTER to pull the trigger..."); err != nil {
		return err
	}
	fmt.Fprintln(t.out, "\n*CLICK*")
	return nil
}

// PromptContinue implements game.Presentation.
func (t *Terminal) PromptContinue(ctx context.Context) (game.Choice, error) {
	fmt.Fprintln(t.out, "\n"+rule)
	fmt.Fprint(t.out, "\nPlay another round? (y/n): ")
	line, err := t.readLine(ctx)
	if errors.Is(err, io.EOF) {
		fmt.Fprintln(t.out, "\nYou walk away alive. Wise choice.")
		return game.ChoiceQuit, nil
	}
	if err != nil {
		return game.ChoiceQuit, err
	}

	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return game.ChoiceContinue, nil
	case DebugWord:
		return game.ChoiceToggleDebug, nil
	default:
		fmt.Fprintln(t.out, "\nYou walk away alive. Wise choice.")
		return game.ChoiceQuit, nil
	}
}

// PromptConfirmation implements game.Presentation and sacrifice.Confirmer.
// The answer is returned untouched; a closed input is an empty answer.
func (t *Terminal) PromptConfirmation(ctx context.Context, prompt string) (string, error) {
	fmt.Fprintf(t.out, "\nHARDCORE MODE: SYSTEM FILE SACRIFICE REQUIRED\n%s: ", prompt)
	line, err := t.readLine(ctx)
	if errors.Is(err, io.EOF) {
		return "", nil
	}
	return line, err
}

// ReportOutcome implements game.Presentation.
func (t *Terminal) ReportOutcome(ctx context.Context, res game.RoundResult) error {
	switch res.Outcome {
	case game.OutcomeSurvived:
		t.opts.Sound.Click()
		fmt.Fprintln(t.out, "You survived this round!")
		fmt.Fprintf(t.out, "Chamber %d/%d was empty.\n", res.Chamber, res.Chambers)
	case game.OutcomeJam:
		t.opts.Sound.Thunk()
		fmt.Fprintln(t.out, "*CLUNK* - THE GUN JAMMED!")
		fmt.Fprintln(t.out, "Mechanical failure! The firing pin didn't strike!")
		t.survivedByLuck()
	case game.OutcomeDud:
		t.opts.Sound.Thunk()
		fmt.Fprintln(t.out, "*THUNK* - DUD ROUND!")
		fmt.Fprintln(t.out, "The primer failed to ignite! Faulty ammunition!")
		t.survivedByLuck()
	case game.OutcomeRevived:
		t.opts.Sound.Bang()
		fmt.Fprintln(t.out, "BANG! You're dead!")
		if res.Mode == mortality.Hardcore {
			fmt.Fprintln(t.out, "\nYou've been revived through sacrifice!")
		} else {
			fmt.Fprintln(t.out, "\nYou've been revived!")
			fmt.Fprintf(t.out, "Extra lives remaining: %s\n", res.Remaining)
		}
		fmt.Fprintln(t.out, "The game continues...")
	case game.OutcomeDead:
		t.opts.Sound.Bang()
		fmt.Fprintln(t.out, "BANG! You're dead!")
		fmt.Fprint(t.out, tombstone)
		fmt.Fprintln(t.out, "\nGame Over. You can NEVER play again.")
		fmt.Fprintln(t.out, "\nYour journey ends here.")
	}
	return nil
}

func (t *Terminal) survivedByLuck() {
	fmt.Fprintln(t.out, "\nYou survive by sheer luck!")
	fmt.Fprintln(t.out, "The cylinder rotates. The game continues...")
}

// ReportStatus implements game.Presentation.
func (t *Terminal) ReportStatus(ctx context.Context, st game.Status) error {
	if st.Dead {
		fmt.Fprintln(t.out, "You are permanently DEAD.")
		fmt.Fprintf(t.out, "You died on %s. You can never play again.\n", st.DiedAt)
		fmt.Fprintln(t.out, "\nThis is permanent. There is no reset.")
		return nil
	}

	fmt.Fprintln(t.out)
	if st.Mode == mortality.Hardcore {
		fmt.Fprintln(t.out, "By playing you assume all liability for damages.")
		fmt.Fprintln(t.out, " Russian Roulette - HARDCORE MODE")
		fmt.Fprintln(t.out, rule)
		if st.Revival {
			fmt.Fprintln(t.out, "System File Sacrifice: Available")
		} else {
			fmt.Fprintln(t.out, "No system files available")
		}
	} else {
		fmt.Fprintln(t.out, " Russian Roulette")
		fmt.Fprintln(t.out, rule)
		if st.Revival {
			fmt.Fprintf(t.out, "Extra Lives: %s\n", st.Remaining)
		}
	}
	if st.Debug {
		fmt.Fprintln(t.out, "[debug] lives diagnostics ON")
	}
	return nil
}

// Welcome prints the opening screen for a mode.
func (t *Terminal) Welcome(mode mortality.Mode, chambers int) {
	fmt.Fprintln(t.out, rule)
	if mode == mortality.Hardcore {
		fmt.Fprintln(t.out, "   RUSSIAN ROULETTE (HARDCORE MODE)")
	} else {
		fmt.Fprintln(t.out, "   RUSSIAN ROULETTE")
	}
	fmt.Fprintln(t.out, rule)
	fmt.Fprintf(t.out, "\nThe revolver has %d chambers. One bullet.\n", chambers)
	fmt.Fprintln(t.out, "WARNING: If you die, you can NEVER play again.")
	if mode == mortality.Hardcore {
		fmt.Fprintln(t.out, "Revival costs a real system file. Deleted files are logged.")
	}
	fmt.Fprintln(t.out, "This is PERMANENT. No resets.")
}
