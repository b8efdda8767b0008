// Package chord turns layout cells into concrete MIDI pitch sets.
package chord

import (
	"sort"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/constants"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

// Interval sets per row kind. Counterbass and bass rows sound a single
// note; the chord rows sound triads built on the cell's base pitch.
var qualityIntervals = map[model.RowKind][]int{
	model.Counterbass: {0},
	model.BassNote:    {0},
	model.MajorChord:  {0, 4, 7},
	model.MinorChord:  {0, 3, 7},
}

// Resolve maps a cell to its channel and the ascending set of MIDI pitches
// it sounds. Intervals that land outside [0,127] are dropped rather than
// failing the whole cell, so chords at the keyboard extremes come out
// partial. The result is deduplicated and never empty for an in-range base
// pitch.
func Resolve(cell model.Cell) (uint8, []uint8) {
	intervals := qualityIntervals[cell.Row]

	seen := make(map[uint8]bool, len(intervals))
	pitches := make([]uint8, 0, len(intervals))
	for _, interval := range intervals {
		p := int(cell.BasePitch) + interval
		if p < 0 || p > constants.MaxPitch {
			continue
		}
		if seen[uint8(p)] {
			continue
		}
		seen[uint8(p)] = true
		pitches = append(pitches, uint8(p))
	}

	sort.Slice(pitches, func(i, j int) bool {
		return pitches[i] < pitches[j]
	})
	return cell.Channel, pitches
}
