package constants

import "os"

// Channel convention shared by every compatible layout: 1 carries control
// messages, 2 the chord/alternate-octave rows, 3 the bass-note rows.
const (
	ControlChannel = 1
	ChordChannel   = 2
	BassChannel    = 3
)

// The input device carries no velocity information, so every note-on uses
// one constant unless the layout overrides it.
const DefaultVelocity = 100

// AllNotesOff is the channel-mode controller swept across used channels at
// shutdown.
const AllNotesOff = 123

const MaxPitch = 127

// VirtualPortName is the name of the MIDI output created when no existing
// port is selected.
const VirtualPortName = "Accordion Bass"

// DefaultQueueSize bounds the key-event queue between the device reader and
// the translating stage.
const DefaultQueueSize = 64

func GetLayoutDir() string {
	path := os.Getenv("LAYOUT_PATH")
	if path != "" {
		return path
	}
	return "./layouts"
}
