package ledger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

func TestRecordThenTakeReturnsSameNotes(t *testing.T) {
	l := New()
	emitted := model.EmittedNotes{Channel: 2, Pitches: []uint8{60, 64, 67}}

	assert := assert.New(t)
	assert.NoError(l.Record("KEY_A", emitted))
	assert.True(l.Held("KEY_A"))
	assert.Equal(1, l.Len())

	got, ok := l.Take("KEY_A")
	assert.True(ok)
	assert.Equal(emitted, got)
	assert.False(l.Held("KEY_A"))
	assert.Equal(0, l.Len())
}

func TestDuplicateRecordFailsLoudly(t *testing.T) {
	l := New()
	emitted := model.EmittedNotes{Channel: 3, Pitches: []uint8{43}}

	assert := assert.New(t)
	assert.NoError(l.Record("KEY_S", emitted))

	err := l.Record("KEY_S", emitted)
	assert.Error(err)
	assert.True(errors.Is(err, ErrDuplicateActivation))

	// the original entry must survive the failed record
	got, ok := l.Take("KEY_S")
	assert.True(ok)
	assert.Equal(emitted, got)
}

func TestTakeOfUnknownKeyIsNoOp(t *testing.T) {
	l := New()

	_, ok := l.Take("KEY_Z")
	assert.False(t, ok)
	assert.Equal(t, 0, l.Len())
}

func TestTwoKeysMayHoldTheSamePitch(t *testing.T) {
	l := New()
	emitted := model.EmittedNotes{Channel: 3, Pitches: []uint8{36}}

	assert := assert.New(t)
	assert.NoError(l.Record("KEY_Q", emitted))
	assert.NoError(l.Record("KEY_W", emitted))

	_, ok := l.Take("KEY_Q")
	assert.True(ok)
	// KEY_W keeps its own record of the shared pitch
	assert.True(l.Held("KEY_W"))
}

func TestSnapshotSharesNoMemory(t *testing.T) {
	l := New()
	assert := assert.New(t)
	assert.NoError(l.Record("KEY_A", model.EmittedNotes{Channel: 2, Pitches: []uint8{60, 64, 67}}))

	snap := l.Snapshot()
	snap["KEY_A"].Pitches[0] = 0

	got, _ := l.Take("KEY_A")
	assert.Equal(uint8(60), got.Pitches[0])
}
