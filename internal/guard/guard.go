// Package guard enforces the time-of-day execution window for the
// unattended job. Runs started outside the window are rejected before any
// network call is made.
package guard

import (
	"errors"
	"fmt"
	"time"
)

// ErrOutsideWindow is returned when the current time falls outside the
// configured execution window. The caller maps it to its own exit policy.
var ErrOutsideWindow = errors.New("outside execution window")

// Guard holds the permitted window in local hours. EndHour is exclusive.
// A zero Guard permits all hours.
type Guard struct {
	StartHour int
	EndHour   int
}

// Enabled reports whether a window is configured at all.
func (g Guard) Enabled() bool {
	return !(g.StartHour == 0 && g.EndHour == 0)
}

// Check returns ErrOutsideWindow when now's hour is outside the window.
// Windows wrapping midnight (e.g. 22–6) are supported.
func (g Guard) Check(now time.Time) error {
	if !g.Enabled() {
		return nil
	}
	h := now.Hour()
	var inside bool
	if g.StartHour <= g.EndHour {
		inside = h >= g.StartHour && h < g.EndHour
	} else {
		inside = h >= g.StartHour || h < g.EndHour
	}
	if !inside {
		return fmt.Errorf("%w: hour %02d not in [%02d, %02d)", ErrOutsideWindow, h, g.StartHour, g.EndHour)
	}
	return nil
}
