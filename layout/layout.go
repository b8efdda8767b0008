// Package layout owns the immutable key-to-cell mapping tables. A table is
// built once, from a builtin variant or a YAML file, and is read-only
// afterwards, so it is safe to query from multiple goroutines.
package layout

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/constants"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/util"
)

type Table struct {
	name     string
	velocity uint8
	cells    map[string]model.Cell
	aux      map[string]model.AuxCell
}

func (t *Table) Name() string {
	return t.name
}

// Velocity is the constant note-on velocity for this layout.
func (t *Table) Velocity() uint8 {
	return t.velocity
}

// Lookup returns the cell mapped to a key, if any. Keys outside the layout
// return ok=false and must be ignored by the caller.
func (t *Table) Lookup(key string) (model.Cell, bool) {
	c, ok := t.cells[key]
	return c, ok
}

// LookupAux returns the auxiliary (control) mapping for a key, if any.
func (t *Table) LookupAux(key string) (model.AuxCell, bool) {
	a, ok := t.aux[key]
	return a, ok
}

func (t *Table) NumCells() int {
	return len(t.cells)
}

// Channels returns every MIDI channel the table can emit on, ascending.
// The shutdown silence sweep runs across exactly these.
func (t *Table) Channels() []uint8 {
	set := make(map[uint8]bool)
	for _, c := range t.cells {
		set[c.Channel] = true
	}
	for _, a := range t.aux {
		set[a.Channel] = true
	}
	return util.GetKeysSorted(set)
}

// Keys returns every mapped key id, ascending, auxiliary keys included.
func (t *Table) Keys() []string {
	set := make(map[string]bool)
	for k := range t.cells {
		set[k] = true
	}
	for k := range t.aux {
		set[k] = true
	}
	return util.GetKeysSorted(set)
}

// Get resolves a layout name: builtin variants first, then
// <layout dir>/<name>_layout.yml.
func Get(name string) (*Table, error) {
	if t, ok := builtins[name]; ok {
		return t(), nil
	}

	path := filepath.Join(constants.GetLayoutDir(), name+"_layout.yml")
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("unknown layout %q (no builtin, no %v)", name, path)
	}
	return LoadFile(path)
}

// Names lists the builtin layout variants, ascending.
func Names() []string {
	return util.GetKeysSorted(builtins)
}
