package model

import "time"

// Action is what happened to a physical key. Hardware auto-repeat is
// reported as another Press; the engine treats it as a no-op.
type Action uint8

const (
	Press Action = iota
	Release
)

func (a Action) String() string {
	if a == Press {
		return "press"
	}
	return "release"
}

// KeyEvent is one raw event from the input device. Key is the evdev code
// name (e.g. "KEY_Q") and is opaque to everything but the layout table.
type KeyEvent struct {
	Key    string
	Action Action
	Time   time.Time
}
