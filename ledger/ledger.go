// Package ledger keeps the per-key record of notes actually emitted, so a
// release can replay exactly what its press sent.
package ledger

import (
	"errors"
	"fmt"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

// ErrDuplicateActivation means a key was recorded twice without an
// intervening take. That is an upstream ordering bug, never overwritten
// silently: the old entry would leak its note-ons forever.
var ErrDuplicateActivation = errors.New("duplicate key activation")

// Ledger maps key ids to their live EmittedNotes. A key is present exactly
// while it is held down and translated. Not safe for concurrent use; it is
// owned by the single consuming stage.
type Ledger struct {
	entries map[string]model.EmittedNotes
}

func New() *Ledger {
	return &Ledger{entries: make(map[string]model.EmittedNotes)}
}

// Held reports whether the key currently has a live entry.
func (l *Ledger) Held(key string) bool {
	_, ok := l.entries[key]
	return ok
}

// Record stores the notes emitted for a freshly pressed key.
func (l *Ledger) Record(key string, emitted model.EmittedNotes) error {
	if _, ok := l.entries[key]; ok {
		return fmt.Errorf("%w: %v", ErrDuplicateActivation, key)
	}
	l.entries[key] = emitted
	return nil
}

// Take removes and returns the entry for a key. A missing entry is not an
// error: stray and duplicate hardware releases are common.
func (l *Ledger) Take(key string) (model.EmittedNotes, bool) {
	emitted, ok := l.entries[key]
	if ok {
		delete(l.entries, key)
	}
	return emitted, ok
}

func (l *Ledger) Len() int {
	return len(l.entries)
}

// Snapshot copies the live entries, for the monitor. The copies share no
// memory with the ledger.
func (l *Ledger) Snapshot() map[string]model.EmittedNotes {
	out := make(map[string]model.EmittedNotes, len(l.entries))
	for key, emitted := range l.entries {
		pitches := make([]uint8, len(emitted.Pitches))
		copy(pitches, emitted.Pitches)
		out[key] = model.EmittedNotes{Channel: emitted.Channel, Pitches: pitches}
	}
	return out
}
