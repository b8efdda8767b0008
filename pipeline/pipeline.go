// Package pipeline connects the blocking device reader to the MIDI sink
// through a bounded FIFO queue, with the translation engine owned by a
// single consuming goroutine.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"github.com/bep/debounce"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/constants"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/engine"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/util"

	"sync"
)

// Sink accepts ordered MIDI events, one call per event.
type Sink interface {
	Send(ev model.MIDIEvent) error
}

// snapshotQuiet coalesces monitor snapshot publishes during event bursts.
const snapshotQuiet = 50 * time.Millisecond

type Pipeline struct {
	engine  *engine.Engine
	sink    Sink
	log     *zap.Logger
	events  chan model.KeyEvent
	session string

	debounced func(func())

	mu    sync.RWMutex
	state model.StateSnapshot
	count uint64
}

func New(eng *engine.Engine, sink Sink, log *zap.Logger, queueSize int) *Pipeline {
	if queueSize <= 0 {
		queueSize = constants.DefaultQueueSize
	}
	p := &Pipeline{
		engine:    eng,
		sink:      sink,
		log:       log,
		events:    make(chan model.KeyEvent, queueSize),
		session:   uuid.New().String(),
		debounced: debounce.New(snapshotQuiet),
	}
	p.state = model.StateSnapshot{Session: p.session, Layout: eng.Layout(), Held: []model.HeldKey{}}
	return p
}

func (p *Pipeline) Session() string {
	return p.session
}

// Submit queues one key event for translation. It blocks when the queue is
// full: backpressure on the reader is preferable to dropping a press or
// release, which would desynchronize the ledger from the physical keys.
func (p *Pipeline) Submit(ctx context.Context, ev model.KeyEvent) error {
	select {
	case p.events <- ev:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Run drains the queue until the context is cancelled or a fatal error
// occurs, forwarding produced MIDI events to the sink in order. On the way
// out it sweeps all-notes-off across the layout's channels.
func (p *Pipeline) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			p.silence()
			return nil
		case ev := <-p.events:
			if err := p.handle(ev); err != nil {
				p.silence()
				return err
			}
		}
	}
}

func (p *Pipeline) handle(ev model.KeyEvent) error {
	midiEvents, err := p.engine.Translate(ev)
	if err != nil {
		return fmt.Errorf("translating %v of %v: %w", ev.Action, ev.Key, err)
	}

	for _, me := range midiEvents {
		if err := p.sink.Send(me); err != nil {
			return fmt.Errorf("midi sink: %w", err)
		}
	}

	p.count++
	p.publish()
	return nil
}

// publish rebuilds the monitor snapshot. The copy is made here, on the
// consuming goroutine where touching the engine is safe; only the swap is
// debounced.
func (p *Pipeline) publish() {
	held := p.engine.Snapshot()
	snap := model.StateSnapshot{
		Session:    p.session,
		Layout:     p.engine.Layout(),
		Held:       make([]model.HeldKey, 0, len(held)),
		EventCount: p.count,
	}
	for _, key := range util.GetKeysSorted(held) {
		snap.Held = append(snap.Held, model.HeldKey{
			Key:     key,
			Channel: held[key].Channel,
			Pitches: held[key].Pitches,
		})
	}

	p.debounced(func() {
		p.mu.Lock()
		p.state = snap
		p.mu.Unlock()
	})
}

// State returns the last published snapshot. Safe for concurrent callers.
func (p *Pipeline) State() model.StateSnapshot {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.state
}

// silence sends all-notes-off on every channel the layout uses. Errors are
// logged and ignored: this is best-effort teardown.
func (p *Pipeline) silence() {
	for _, channel := range p.engine.Channels() {
		ev := model.ControlChangeEvent(channel, constants.AllNotesOff, 0)
		if err := p.sink.Send(ev); err != nil {
			p.log.Warn("all-notes-off failed", zap.Uint8("channel", channel), zap.Error(err))
		}
	}
	p.log.Info("silence sweep complete", zap.Uint8s("channels", p.engine.Channels()))
}
