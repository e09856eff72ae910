package mortality

import (
	"fmt"
	"runtime"
)

// Mode selects which independent mortality namespace a player lives in.
type Mode int

const (
	Normal Mode = iota
	Hardcore
)

func (m Mode) String() string {
	switch m {
	case Normal:
		return "normal"
	case Hardcore:
		return "hardcore"
	default:
		return "unknown"
	}
}

// ParseMode accepts "normal" or "hardcore".
func ParseMode(s string) (Mode, error) {
	switch s {
	case "normal", "":
		return Normal, nil
	case "hardcore":
		return Hardcore, nil
	default:
		return Normal, fmt.Errorf("unknown mode %q", s)
	}
}

// dirName is the mode's directory under the config root. Windows keeps the
// dot-prefixed names since LOCALAPPDATA is not a dedicated config tree.
func (m Mode) dirName() string {
	name := "roulette"
	if m == Hardcore {
		name = "roulette_hardcore"
	}
	if runtime.GOOS == "windows" {
		return "." + name
	}
	return name
}
