package layout

import (
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/constants"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

// The four QWERTY rows emulating the four button rows of the left-hand
// manual, left to right.
var (
	numberRow = []string{
		"KEY_1", "KEY_2", "KEY_3", "KEY_4", "KEY_5", "KEY_6",
		"KEY_7", "KEY_8", "KEY_9", "KEY_0", "KEY_MINUS", "KEY_EQUAL",
	}
	upperRow = []string{
		"KEY_Q", "KEY_W", "KEY_E", "KEY_R", "KEY_T", "KEY_Y",
		"KEY_U", "KEY_I", "KEY_O", "KEY_P", "KEY_LEFTBRACE", "KEY_RIGHTBRACE",
	}
	homeRow = []string{
		"KEY_A", "KEY_S", "KEY_D", "KEY_F", "KEY_G", "KEY_H",
		"KEY_J", "KEY_K", "KEY_L", "KEY_SEMICOLON", "KEY_APOSTROPHE",
	}
	bottomRow = []string{
		"KEY_Z", "KEY_X", "KEY_C", "KEY_V", "KEY_B", "KEY_N",
		"KEY_M", "KEY_COMMA", "KEY_DOT", "KEY_SLASH",
	}
)

// Columns run along the circle of fifths, centered on C, as on a real
// Stradella manual.
var fifthsOrder = []string{"Bb", "F", "C", "G", "D", "A", "E", "B", "F#", "C#", "G#", "D#"}

var builtins = map[string]func() *Table{
	"stradella": stradella,
	"fifths":    fifths,
	"simple":    simple,
}

// bassWindow wraps a pitch into the single bass octave starting at C1.
func bassWindow(semitones int) uint8 {
	base := int(MustNote("C1"))
	return uint8(base + ((semitones-base)%12+12)%12)
}

func defaultAux() map[string]model.AuxCell {
	return map[string]model.AuxCell{
		"KEY_SPACE": {
			Name:     "sustain",
			Control:  64,
			Value:    127,
			Behavior: model.Momentary,
			Channel:  constants.ControlChannel,
		},
		"KEY_TAB": {
			Name:     "soft",
			Control:  67,
			Value:    127,
			Behavior: model.Toggle,
			Channel:  constants.ControlChannel,
		},
	}
}

// stradella is the traditional four-row layout: counterbass, bass notes,
// major chords, minor chords.
func stradella() *Table {
	cells := make(map[string]model.Cell)

	for i, root := range fifthsOrder {
		bass := MustNote(root + "1")

		cells[numberRow[i]] = model.Cell{
			Name:      root + " counterbass",
			Row:       model.Counterbass,
			BasePitch: bassWindow(int(bass) + 4),
			Channel:   constants.BassChannel,
		}
		cells[upperRow[i]] = model.Cell{
			Name:      root + " bass",
			Row:       model.BassNote,
			BasePitch: bass,
			Channel:   constants.BassChannel,
		}
		if i < len(homeRow) {
			cells[homeRow[i]] = model.Cell{
				Name:      root + " major",
				Row:       model.MajorChord,
				BasePitch: bass + 12,
				Channel:   constants.ChordChannel,
			}
		}
		if i < len(bottomRow) {
			cells[bottomRow[i]] = model.Cell{
				Name:      root + " minor",
				Row:       model.MinorChord,
				BasePitch: bass + 12,
				Channel:   constants.ChordChannel,
			}
		}
	}

	return &Table{
		name:     "stradella",
		velocity: constants.DefaultVelocity,
		cells:    cells,
		aux:      defaultAux(),
	}
}

// fifths keeps the two bass rows and replaces the chord rows with
// octave-shifted single bass notes.
func fifths() *Table {
	t := stradella()
	t.name = "fifths"

	for i, root := range fifthsOrder {
		bass := MustNote(root + "1")
		if i < len(homeRow) {
			t.cells[homeRow[i]] = model.Cell{
				Name:      root + " +1 oct",
				Row:       model.BassNote,
				BasePitch: bass + 12,
				Channel:   constants.ChordChannel,
			}
		}
		if i < len(bottomRow) {
			t.cells[bottomRow[i]] = model.Cell{
				Name:      root + " +2 oct",
				Row:       model.BassNote,
				BasePitch: bass + 24,
				Channel:   constants.ChordChannel,
			}
		}
	}
	return t
}

// simple is a fully chromatic layout: one octave per row, four octaves
// total, the lower two on the bass channel and the upper two on the chord
// channel.
func simple() *Table {
	cells := make(map[string]model.Cell)

	rows := []struct {
		keys    []string
		base    uint8
		channel uint8
	}{
		{bottomRow, MustNote("C1"), constants.BassChannel},
		{homeRow, MustNote("C2"), constants.BassChannel},
		{upperRow, MustNote("C3"), constants.ChordChannel},
		{numberRow, MustNote("C4"), constants.ChordChannel},
	}

	for _, row := range rows {
		for i, key := range row.keys {
			pitch := row.base + uint8(i)
			cells[key] = model.Cell{
				Name:      PitchName(pitch),
				Row:       model.BassNote,
				BasePitch: pitch,
				Channel:   row.channel,
			}
		}
	}

	return &Table{
		name:     "simple",
		velocity: constants.DefaultVelocity,
		cells:    cells,
		aux:      defaultAux(),
	}
}
