package pipeline

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/engine"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/layout"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

const testLayout = `
layout_info:
  name: testlayout
velocity: 80
bass_mapping:
  KEY_A:
    name: C major
    row: major
    root: C3
  KEY_S:
    name: G bass
    row: bass
    root: G1
auxiliary_keys:
  KEY_SPACE:
    name: sustain
    cc: 64
`

type recordingSink struct {
	mu     sync.Mutex
	events []model.MIDIEvent
	err    error
}

func (s *recordingSink) Send(ev model.MIDIEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	s.events = append(s.events, ev)
	return nil
}

func (s *recordingSink) recorded() []model.MIDIEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.MIDIEvent, len(s.events))
	copy(out, s.events)
	return out
}

func newTestPipeline(t *testing.T, sink Sink) *Pipeline {
	table, err := layout.Load([]byte(testLayout))
	assert.NoError(t, err)
	eng := engine.New(table, zap.NewNop())
	return New(eng, sink, zap.NewNop(), 8)
}

func submit(t *testing.T, p *Pipeline, key string, action model.Action) {
	ev := model.KeyEvent{Key: key, Action: action, Time: time.Now()}
	assert.NoError(t, p.Submit(context.Background(), ev))
}

func TestEventsReachSinkInOrder(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	submit(t, p, "KEY_A", model.Press)
	submit(t, p, "KEY_S", model.Press)
	submit(t, p, "KEY_A", model.Release)
	submit(t, p, "KEY_S", model.Release)

	assert.Eventually(t, func() bool { return len(sink.recorded()) == 8 },
		time.Second, time.Millisecond)

	cancel()
	assert.NoError(t, <-done)

	want := []model.MIDIEvent{
		model.NoteOnEvent(2, 60, 80),
		model.NoteOnEvent(2, 64, 80),
		model.NoteOnEvent(2, 67, 80),
		model.NoteOnEvent(3, 43, 80),
		model.NoteOffEvent(2, 60),
		model.NoteOffEvent(2, 64),
		model.NoteOffEvent(2, 67),
		model.NoteOffEvent(3, 43),
		model.ControlChangeEvent(1, 123, 0),
		model.ControlChangeEvent(2, 123, 0),
		model.ControlChangeEvent(3, 123, 0),
	}
	assert.Equal(t, want, sink.recorded())
}

func TestCancelSweepsAllNotesOff(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, sink)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- p.Run(ctx) }()

	cancel()
	assert.NoError(t, <-done)

	assert.Equal(t, []model.MIDIEvent{
		model.ControlChangeEvent(1, 123, 0),
		model.ControlChangeEvent(2, 123, 0),
		model.ControlChangeEvent(3, 123, 0),
	}, sink.recorded())
}

func TestSinkErrorStopsRun(t *testing.T) {
	sink := &recordingSink{err: errors.New("port gone")}
	p := newTestPipeline(t, sink)

	done := make(chan error, 1)
	go func() { done <- p.Run(context.Background()) }()

	submit(t, p, "KEY_A", model.Press)

	err := <-done
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "midi sink")
}

func TestStateSnapshotPublishes(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, sink)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go p.Run(ctx)

	submit(t, p, "KEY_A", model.Press)
	submit(t, p, "KEY_SPACE", model.Press)

	assert.Eventually(t, func() bool { return p.State().EventCount == 2 },
		time.Second, 5*time.Millisecond)

	snap := p.State()
	assert := assert.New(t)
	assert.Equal(p.Session(), snap.Session)
	assert.Equal("testlayout", snap.Layout)
	assert.Len(snap.Held, 1)
	assert.Equal("KEY_A", snap.Held[0].Key)
	assert.Equal(uint8(2), snap.Held[0].Channel)
	assert.Equal([]uint8{60, 64, 67}, snap.Held[0].Pitches)
}

func TestSubmitHonorsContextCancellation(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPipeline(t, sink)

	// fill the queue with nobody draining it
	for i := 0; i < 8; i++ {
		submit(t, p, "KEY_A", model.Press)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := p.Submit(ctx, model.KeyEvent{Key: "KEY_A", Action: model.Press})
	assert.ErrorIs(t, err, context.Canceled)
}
