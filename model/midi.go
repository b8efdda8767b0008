package model

import "fmt"

type MIDIKind uint8

const (
	NoteOn MIDIKind = iota
	NoteOff
	ControlChange
)

func (k MIDIKind) String() string {
	switch k {
	case NoteOn:
		return "note_on"
	case NoteOff:
		return "note_off"
	default:
		return "control_change"
	}
}

// MIDIEvent is one wire-level message. For ControlChange, Pitch carries the
// controller number and Value the controller value.
type MIDIEvent struct {
	Kind    MIDIKind
	Channel uint8 // 1-based; converted to a status nibble at the port
	Pitch   uint8
	Value   uint8 // velocity for notes
}

func (e MIDIEvent) String() string {
	return fmt.Sprintf("%s ch=%d data=[%d %d]", e.Kind, e.Channel, e.Pitch, e.Value)
}

func NoteOnEvent(channel, pitch, velocity uint8) MIDIEvent {
	return MIDIEvent{Kind: NoteOn, Channel: channel, Pitch: pitch, Value: velocity}
}

func NoteOffEvent(channel, pitch uint8) MIDIEvent {
	return MIDIEvent{Kind: NoteOff, Channel: channel, Pitch: pitch}
}

func ControlChangeEvent(channel, control, value uint8) MIDIEvent {
	return MIDIEvent{Kind: ControlChange, Channel: channel, Pitch: control, Value: value}
}
