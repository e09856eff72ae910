package game

import (
	"context"
	"strconv"
	"testing"

	"github.com/peterkuimelis/roulette/internal/lives"
	"github.com/peterkuimelis/roulette/internal/mortality"
	"github.com/peterkuimelis/roulette/internal/sacrifice"
)

var (
	_ RevivalProvider = (*lives.Pool)(nil)
	_ RevivalProvider = (*sacrifice.Altar)(nil)
	_ DebugToggler    = (*lives.Pool)(nil)
)

// ScriptedSource replays fixed draws. Intn returns the next int verbatim, so
// scripting chamber N means scripting N-1.
type ScriptedSource struct {
	t      *testing.T
	ints   []int
	floats []float64
}

func NewScriptedSource(t *testing.T) *ScriptedSource {
	return &ScriptedSource{t: t}
}

// Chamber queues a 1-based chamber draw.
func (s *ScriptedSource) Chamber(n int) *ScriptedSource {
	s.ints = append(s.ints, n-1)
	return s
}

// Roll queues a Float64 draw.
func (s *ScriptedSource) Roll(f float64) *ScriptedSource {
	s.floats = append(s.floats, f)
	return s
}

func (s *ScriptedSource) Intn(n int) int {
	if len(s.ints) == 0 {
		s.t.Fatalf("unexpected Intn(%d): script exhausted", n)
	}
	v := s.ints[0]
	s.ints = s.ints[1:]
	if v < 0 || v >= n {
		s.t.Fatalf("scripted int %d out of range for Intn(%d)", v, n)
	}
	return v
}

func (s *ScriptedSource) Float64() float64 {
	if len(s.floats) == 0 {
		s.t.Fatal("unexpected Float64: script exhausted")
	}
	v := s.floats[0]
	s.floats = s.floats[1:]
	return v
}

// Exhausted reports whether every scripted draw was used.
func (s *ScriptedSource) Exhausted() bool {
	return len(s.ints) == 0 && len(s.floats) == 0
}

// fakeRevival is a RevivalProvider with a fixed stock.
type fakeRevival struct {
	stock    int
	fail     bool // Consume reports failure without spending
	consumed int
	debug    bool
}

func (f *fakeRevival) HasAny() bool { return f.stock > 0 }

func (f *fakeRevival) Consume(ctx context.Context) bool {
	if f.fail || f.stock == 0 {
		return false
	}
	f.stock--
	f.consumed++
	return true
}

func (f *fakeRevival) Remaining() string {
	return strconv.Itoa(f.stock)
}

func (f *fakeRevival) Debug() bool      { return f.debug }
func (f *fakeRevival) SetDebug(on bool) { f.debug = on }

// ScriptedPresentation records everything shown and replays prompt answers.
type ScriptedPresentation struct {
	t        *testing.T
	choices  []Choice
	confirms []string

	Spins    int
	Outcomes []RoundResult
	Statuses []Status
	Prompts  []string
}

func NewScriptedPresentation(t *testing.T) *ScriptedPresentation {
	return &ScriptedPresentation{t: t}
}

func (p *ScriptedPresentation) AddChoice(c ...Choice) *ScriptedPresentation {
	p.choices = append(p.choices, c...)
	return p
}

func (p *ScriptedPresentation) AddConfirmation(s string) *ScriptedPresentation {
	p.confirms = append(p.confirms, s)
	return p
}

func (p *ScriptedPresentation) DisplaySpinAnimation(ctx context.Context) error {
	p.Spins++
	return nil
}

func (p *ScriptedPresentation) PromptContinue(ctx context.Context) (Choice, error) {
	if len(p.choices) == 0 {
		return ChoiceQuit, nil
	}
	c := p.choices[0]
	p.choices = p.choices[1:]
	return c, nil
}

func (p *ScriptedPresentation) PromptConfirmation(ctx context.Context, prompt string) (string, error) {
	p.Prompts = append(p.Prompts, prompt)
	if len(p.confirms) == 0 {
		return "", nil
	}
	s := p.confirms[0]
	p.confirms = p.confirms[1:]
	return s, nil
}

func (p *ScriptedPresentation) ReportOutcome(ctx context.Context, result RoundResult) error {
	p.Outcomes = append(p.Outcomes, result)
	return nil
}

func (p *ScriptedPresentation) ReportStatus(ctx context.Context, status Status) error {
	p.Statuses = append(p.Statuses, status)
	return nil
}

// newPlayer returns a player isolated in its own temp config root.
func newPlayer(t *testing.T, mode mortality.Mode) *mortality.Player {
	t.Helper()
	return mortality.NewPlayer(mortality.NewMarkerStore(t.TempDir()), mode)
}

func assertTrace(t *testing.T, res RoundResult, want ...RoundState) {
	t.Helper()
	if len(res.Trace) != len(want) {
		t.Fatalf("trace %v, expected %v", res.Trace, want)
	}
	for i := range want {
		if res.Trace[i] != want[i] {
			t.Fatalf("trace %v, expected %v", res.Trace, want)
		}
	}
}
