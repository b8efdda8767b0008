package layout

import (
	"fmt"
	"strconv"
	"strings"
)

var noteOffsets = map[string]int{
	"C": 0, "C#": 1, "Db": 1, "D": 2, "D#": 3, "Eb": 3, "E": 4,
	"F": 5, "F#": 6, "Gb": 6, "G": 7, "G#": 8, "Ab": 8, "A": 9,
	"A#": 10, "Bb": 10, "B": 11,
}

var noteNames = [12]string{"C", "C#", "D", "D#", "E", "F", "F#", "G", "G#", "A", "A#", "B"}

// ParseNote converts a note string like "C1", "F#2" or "Bb3" to its MIDI
// note number. C1 is 36, the bottom of the Stradella bass range.
func ParseNote(s string) (uint8, error) {
	if len(s) < 2 {
		return 0, fmt.Errorf("invalid note format: %q", s)
	}

	octave, err := strconv.Atoi(s[len(s)-1:])
	if err != nil {
		return 0, fmt.Errorf("invalid octave in note %q", s)
	}

	name := s[:len(s)-1]
	offset, ok := noteOffsets[strings.ToUpper(name[:1])+name[1:]]
	if !ok {
		return 0, fmt.Errorf("unknown note: %q", name)
	}

	pitch := (octave+2)*12 + offset
	if pitch < 0 || pitch > 127 {
		return 0, fmt.Errorf("note %q is outside the MIDI range", s)
	}
	return uint8(pitch), nil
}

// MustNote is ParseNote for builtin tables, where a bad literal is a
// programming error.
func MustNote(s string) uint8 {
	pitch, err := ParseNote(s)
	if err != nil {
		panic(err.Error())
	}
	return pitch
}

// PitchName renders a MIDI note number back to a note string.
func PitchName(pitch uint8) string {
	return fmt.Sprintf("%s%d", noteNames[pitch%12], int(pitch/12)-2)
}
