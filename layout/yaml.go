package layout

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v2"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/constants"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
)

type layoutInfo struct {
	Name           string `yaml:"name"`
	KeyboardLayout string `yaml:"keyboard_layout"`
}

type cellSpec struct {
	Name    string      `yaml:"name"`
	Row     string      `yaml:"row"`
	Root    interface{} `yaml:"root"` // note string like "C1", or raw MIDI number
	Channel uint8       `yaml:"channel"`
}

type auxSpec struct {
	Name     string `yaml:"name"`
	CC       uint8  `yaml:"cc"`
	Value    *uint8 `yaml:"value"`
	Behavior string `yaml:"behavior"`
	Channel  uint8  `yaml:"channel"`
}

type fileSpec struct {
	LayoutInfo     layoutInfo          `yaml:"layout_info"`
	Velocity       uint8               `yaml:"velocity"`
	ChannelMapping map[string]uint8    `yaml:"channel_mapping"`
	BassMapping    map[string]cellSpec `yaml:"bass_mapping"`
	AuxiliaryKeys  map[string]auxSpec  `yaml:"auxiliary_keys"`
}

var rowKinds = map[string]model.RowKind{
	"counterbass": model.Counterbass,
	"bass":        model.BassNote,
	"major":       model.MajorChord,
	"minor":       model.MinorChord,
}

// channelCategory maps a row kind to its channel_mapping key.
func channelCategory(row model.RowKind) string {
	if row == model.MajorChord || row == model.MinorChord {
		return "chords"
	}
	return "bass"
}

// conventionChannel is the fallback when neither the cell nor the
// channel_mapping section names a channel.
func conventionChannel(row model.RowKind) uint8 {
	if row == model.MajorChord || row == model.MinorChord {
		return constants.ChordChannel
	}
	return constants.BassChannel
}

func resolveRoot(root interface{}) (uint8, error) {
	switch v := root.(type) {
	case string:
		return ParseNote(v)
	case int:
		if v < 0 || v > constants.MaxPitch {
			return 0, fmt.Errorf("MIDI root %d out of range", v)
		}
		return uint8(v), nil
	default:
		return 0, fmt.Errorf("invalid root format: %v", root)
	}
}

// Load builds a table from YAML layout data.
func Load(data []byte) (*Table, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, fmt.Errorf("parsing layout: %w", err)
	}
	if len(spec.BassMapping) == 0 {
		return nil, fmt.Errorf("layout missing bass_mapping section")
	}

	name := spec.LayoutInfo.Name
	if name == "" {
		name = "custom"
	}
	velocity := spec.Velocity
	if velocity == 0 {
		velocity = constants.DefaultVelocity
	}

	cells := make(map[string]model.Cell, len(spec.BassMapping))
	for key, cs := range spec.BassMapping {
		row, ok := rowKinds[cs.Row]
		if !ok {
			return nil, fmt.Errorf("key %v: unknown row kind %q", key, cs.Row)
		}
		pitch, err := resolveRoot(cs.Root)
		if err != nil {
			return nil, fmt.Errorf("key %v: %w", key, err)
		}

		channel := cs.Channel
		if channel == 0 {
			channel = spec.ChannelMapping[channelCategory(row)]
		}
		if channel == 0 {
			channel = conventionChannel(row)
		}

		cells[key] = model.Cell{
			Name:      cs.Name,
			Row:       row,
			BasePitch: pitch,
			Channel:   channel,
		}
	}

	aux := make(map[string]model.AuxCell, len(spec.AuxiliaryKeys))
	for key, as := range spec.AuxiliaryKeys {
		if as.CC > constants.MaxPitch {
			return nil, fmt.Errorf("key %v: invalid CC number %d", key, as.CC)
		}

		value := uint8(127)
		if as.Value != nil {
			if *as.Value > constants.MaxPitch {
				return nil, fmt.Errorf("key %v: invalid CC value %d", key, *as.Value)
			}
			value = *as.Value
		}

		behavior := model.Momentary
		if as.Behavior == "toggle" {
			behavior = model.Toggle
		}

		channel := as.Channel
		if channel == 0 {
			channel = spec.ChannelMapping["control"]
		}
		if channel == 0 {
			channel = constants.ControlChannel
		}

		aux[key] = model.AuxCell{
			Name:     as.Name,
			Control:  as.CC,
			Value:    value,
			Behavior: behavior,
			Channel:  channel,
		}
	}

	return &Table{name: name, velocity: velocity, cells: cells, aux: aux}, nil
}

// LoadFile builds a table from a YAML layout file.
func LoadFile(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading layout file: %w", err)
	}
	t, err := Load(data)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return t, nil
}
