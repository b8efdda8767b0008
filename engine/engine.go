// Package engine translates key events into MIDI events. It is the only
// stateful part of the core and is strictly single-consumer: events must be
// fed in arrival order from one goroutine.
package engine

import (
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/chord"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/layout"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/ledger"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

type Engine struct {
	table    *layout.Table
	ledger   *ledger.Ledger
	velocity uint8
	log      *zap.Logger

	// toggle state per auxiliary key
	ccStates map[string]bool
	// physically-down auxiliary keys, the aux counterpart of the ledger
	auxHeld map[string]bool
}

func New(table *layout.Table, log *zap.Logger) *Engine {
	return &Engine{
		table:    table,
		ledger:   ledger.New(),
		velocity: table.Velocity(),
		log:      log,
		ccStates: make(map[string]bool),
		auxHeld:  make(map[string]bool),
	}
}

// Translate consumes one key event and returns the MIDI events it produces,
// in emission order. Unmapped keys, stray releases and repeated presses
// yield nil. A non-nil error is an internal invariant violation and the
// caller must stop processing.
func (e *Engine) Translate(ev model.KeyEvent) ([]model.MIDIEvent, error) {
	if cell, ok := e.table.Lookup(ev.Key); ok {
		return e.translateNote(ev, cell)
	}
	if aux, ok := e.table.LookupAux(ev.Key); ok {
		return e.translateAux(ev, aux), nil
	}

	e.log.Debug("unmapped key ignored", zap.String("key", ev.Key), zap.Stringer("action", ev.Action))
	return nil, nil
}

func (e *Engine) translateNote(ev model.KeyEvent, cell model.Cell) ([]model.MIDIEvent, error) {
	switch ev.Action {
	case model.Press:
		if e.ledger.Held(ev.Key) {
			// OS key repeat; re-triggering would retrigger audible attacks
			return nil, nil
		}

		channel, pitches := chord.Resolve(cell)
		if len(pitches) == 0 {
			return nil, nil
		}
		if err := e.ledger.Record(ev.Key, model.EmittedNotes{Channel: channel, Pitches: pitches}); err != nil {
			return nil, err
		}

		e.log.Info("key pressed",
			zap.String("name", cell.Name),
			zap.String("key", ev.Key),
			zap.Uint8("channel", channel))

		out := make([]model.MIDIEvent, 0, len(pitches))
		for _, pitch := range pitches {
			out = append(out, model.NoteOnEvent(channel, pitch, e.velocity))
		}
		return out, nil

	default:
		emitted, ok := e.ledger.Take(ev.Key)
		if !ok {
			// release for a key we never sounded
			return nil, nil
		}

		e.log.Info("key released",
			zap.String("name", cell.Name),
			zap.String("key", ev.Key),
			zap.Uint8("channel", emitted.Channel))

		out := make([]model.MIDIEvent, 0, len(emitted.Pitches))
		for _, pitch := range emitted.Pitches {
			out = append(out, model.NoteOffEvent(emitted.Channel, pitch))
		}
		return out, nil
	}
}

func (e *Engine) translateAux(ev model.KeyEvent, aux model.AuxCell) []model.MIDIEvent {
	if ev.Action == model.Press {
		if e.auxHeld[ev.Key] {
			// OS key repeat, same rule as for note keys
			return nil
		}
		e.auxHeld[ev.Key] = true
	} else {
		if !e.auxHeld[ev.Key] {
			// stray release
			return nil
		}
		delete(e.auxHeld, ev.Key)
	}

	switch aux.Behavior {
	case model.Toggle:
		if ev.Action != model.Press {
			return nil
		}
		e.ccStates[ev.Key] = !e.ccStates[ev.Key]
		value := uint8(0)
		if e.ccStates[ev.Key] {
			value = aux.Value
		}
		e.log.Info("auxiliary toggled",
			zap.String("name", aux.Name),
			zap.Uint8("cc", aux.Control),
			zap.Uint8("value", value))
		return []model.MIDIEvent{model.ControlChangeEvent(aux.Channel, aux.Control, value)}

	default: // momentary: value on press, zero on release
		value := uint8(0)
		if ev.Action == model.Press {
			value = aux.Value
		}
		return []model.MIDIEvent{model.ControlChangeEvent(aux.Channel, aux.Control, value)}
	}
}

// Held reports how many keys are currently sounding.
func (e *Engine) Held() int {
	return e.ledger.Len()
}

// Snapshot copies the currently sounding keys and their emitted notes.
func (e *Engine) Snapshot() map[string]model.EmittedNotes {
	return e.ledger.Snapshot()
}

// Channels returns the MIDI channels the active layout uses.
func (e *Engine) Channels() []uint8 {
	return e.table.Channels()
}

// Layout returns the active layout name.
func (e *Engine) Layout() string {
	return e.table.Name()
}
