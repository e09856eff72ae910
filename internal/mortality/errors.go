package mortality

import "fmt"

// ConfigIOError means the per-user config directory or the marker in it
// cannot be read or written. Mortality state cannot be trusted after one, so
// callers abort the session.
type ConfigIOError struct {
	Op   string // "mkdir", "read", "write", "clear", "stat"
	Path string
	Err  error
}

func (e *ConfigIOError) Error() string {
	return fmt.Sprintf("config %s %s: %v", e.Op, e.Path, e.Err)
}

func (e *ConfigIOError) Unwrap() error {
	return e.Err
}
