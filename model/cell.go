package model

// RowKind determines whether a cell sounds a single note or a triad.
type RowKind uint8

const (
	Counterbass RowKind = iota
	BassNote
	MajorChord
	MinorChord
)

var rowKindNames = map[RowKind]string{
	Counterbass: "counterbass",
	BassNote:    "bass",
	MajorChord:  "major",
	MinorChord:  "minor",
}

func (r RowKind) String() string {
	return rowKindNames[r]
}

// Cell is the static mapping target of one physical key within a layout.
// Never mutated after the table is built.
type Cell struct {
	Name      string
	Row       RowKind
	BasePitch uint8
	Channel   uint8 // 1-based, as written in layout files
}

// AuxBehavior selects how an auxiliary key drives its controller.
type AuxBehavior uint8

const (
	// Momentary sends Value on press and 0 on release.
	Momentary AuxBehavior = iota
	// Toggle alternates between Value and 0 on press; release is ignored.
	Toggle
)

// AuxCell maps a key outside the bass grid to a control-change message.
type AuxCell struct {
	Name     string
	Control  uint8
	Value    uint8
	Behavior AuxBehavior
	Channel  uint8
}

// EmittedNotes records what a key press actually put on the wire, so its
// release can replay the exact same set as note-offs.
type EmittedNotes struct {
	Channel uint8
	Pitches []uint8 // ascending
}
