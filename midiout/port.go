// Package midiout delivers MIDI events to a real or virtual output port.
package midiout

import (
	"fmt"

	"gitlab.com/gomidi/midi/v2/drivers"
	"gitlab.com/gomidi/midi/v2/drivers/rtmididrv"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/util"
)

const (
	statusNoteOff       = 0x80
	statusNoteOn        = 0x90
	statusControlChange = 0xB0
)

// Port is a pipeline.Sink writing raw channel messages through rtmidi.
type Port struct {
	drv *rtmididrv.Driver
	out drivers.Out
	log *zap.Logger
}

// OpenVirtual creates a virtual output port other programs can connect to,
// like the reference synthesizer setup expects.
func OpenVirtual(name string, log *zap.Logger) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	out, err := drv.OpenVirtualOut(name)
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("opening virtual port %q: %w", name, err)
	}
	log.Info("virtual MIDI port created", zap.String("port", name))
	return &Port{drv: drv, out: out, log: log}, nil
}

// OpenByName connects to an existing output port by case-insensitive
// substring match.
func OpenByName(name string, log *zap.Logger) (*Port, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}

	outs, err := drv.Outs()
	if err != nil {
		drv.Close()
		return nil, fmt.Errorf("listing MIDI outputs: %w", err)
	}

	var found drivers.Out
	for _, out := range outs {
		if util.ContainsCI(out.String(), name) {
			found = out
			break
		}
	}
	if found == nil {
		drv.Close()
		return nil, fmt.Errorf("MIDI output %q not found", name)
	}
	if err := found.Open(); err != nil {
		drv.Close()
		return nil, fmt.Errorf("opening %q: %w", found.String(), err)
	}

	log.Info("MIDI output connected", zap.String("port", found.String()))
	return &Port{drv: drv, out: found, log: log}, nil
}

// ListPorts names the available MIDI output ports.
func ListPorts() ([]string, error) {
	drv, err := rtmididrv.New()
	if err != nil {
		return nil, fmt.Errorf("rtmididrv: %w", err)
	}
	defer drv.Close()

	outs, err := drv.Outs()
	if err != nil {
		return nil, fmt.Errorf("listing MIDI outputs: %w", err)
	}

	names := make([]string, 0, len(outs))
	for _, out := range outs {
		names = append(names, out.String())
	}
	return names, nil
}

// Send writes one event. Channels are 1-based in events and 0-based on the
// wire.
func (p *Port) Send(ev model.MIDIEvent) error {
	channel := ev.Channel
	if channel > 0 {
		channel--
	}
	channel &= 0x0F

	var msg []byte
	switch ev.Kind {
	case model.NoteOn:
		msg = []byte{statusNoteOn | channel, ev.Pitch, ev.Value}
	case model.NoteOff:
		msg = []byte{statusNoteOff | channel, ev.Pitch, 0}
	case model.ControlChange:
		msg = []byte{statusControlChange | channel, ev.Pitch, ev.Value}
	}

	if err := p.out.Send(msg); err != nil {
		return fmt.Errorf("sending %v: %w", ev, err)
	}
	return nil
}

func (p *Port) Close() error {
	if err := p.out.Close(); err != nil {
		p.log.Warn("closing MIDI port", zap.Error(err))
	}
	return p.drv.Close()
}
