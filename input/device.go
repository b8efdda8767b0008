// Package input reads key events from a Linux evdev keyboard device.
package input

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/holoplot/go-evdev"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/model"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/util"
)

const (
	keyRelease = 0
	keyPress   = 1
	keyRepeat  = 2
)

// grabKey toggles exclusive device grab so played keys stop typing into the
// OS. Consumed here, never forwarded to the engine.
const grabKey = evdev.KEY_CAPSLOCK

var ErrNoDevice = errors.New("no matching keyboard device")

// Info describes one discovered keyboard device.
type Info struct {
	Path       string
	Name       string
	Phys       string
	Accessible bool
}

// List enumerates input devices that look like keyboards: EV_KEY capability
// including KEY_A. Devices we cannot open are reported as inaccessible
// rather than skipped, so `list` can show permission problems.
func List() ([]Info, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("listing input devices: %w", err)
	}

	var infos []Info
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			infos = append(infos, Info{Path: p.Path, Name: p.Name})
			continue
		}

		if isKeyboard(dev) {
			info := Info{Path: p.Path, Name: p.Name, Accessible: true}
			if phys, err := dev.PhysicalLocation(); err == nil {
				info.Phys = phys
			}
			infos = append(infos, info)
		}
		dev.Close()
	}
	return infos, nil
}

func isKeyboard(dev *evdev.InputDevice) bool {
	for _, t := range dev.CapableTypes() {
		if t != evdev.EV_KEY {
			continue
		}
		for _, code := range dev.CapableEvents(t) {
			if code == evdev.KEY_A {
				return true
			}
		}
	}
	return false
}

// FindByName resolves a device path by case-insensitive substring match on
// the device name.
func FindByName(name string) (string, error) {
	infos, err := List()
	if err != nil {
		return "", err
	}
	for _, info := range infos {
		if util.ContainsCI(info.Name, name) {
			return info.Path, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrNoDevice, name)
}

// Keyboard is an opened evdev device feeding the pipeline.
type Keyboard struct {
	dev     *evdev.InputDevice
	path    string
	name    string
	log     *zap.Logger
	grabbed bool
	closed  bool
}

func Open(path string, log *zap.Logger) (*Keyboard, error) {
	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %v: %w", path, err)
	}
	if !isKeyboard(dev) {
		dev.Close()
		return nil, fmt.Errorf("%w: %v is not a keyboard", ErrNoDevice, path)
	}

	name, err := dev.Name()
	if err != nil {
		name = path
	}

	log.Info("keyboard device connected", zap.String("name", name), zap.String("path", path))
	return &Keyboard{dev: dev, path: path, name: name, log: log}, nil
}

func (k *Keyboard) Name() string {
	return k.name
}

func (k *Keyboard) Path() string {
	return k.path
}

// Close releases the device. It also unblocks a pending ReadLoop.
// Safe to call more than once; only the first call does anything.
func (k *Keyboard) Close() error {
	if k.closed {
		return nil
	}
	k.closed = true

	if k.grabbed {
		if err := k.dev.Ungrab(); err != nil {
			k.log.Warn("failed to release keyboard grab", zap.Error(err))
		}
		k.grabbed = false
	}
	return k.dev.Close()
}

func (k *Keyboard) toggleGrab() {
	var err error
	if k.grabbed {
		err = k.dev.Ungrab()
	} else {
		err = k.dev.Grab()
	}
	if err != nil {
		k.log.Error("failed to toggle grab mode", zap.Error(err))
		return
	}
	k.grabbed = !k.grabbed
	k.log.Info("grab mode toggled", zap.Bool("grabbed", k.grabbed))
}

// ReadLoop blocks on the device and hands every key press/release to
// submit, until the device fails or the context is cancelled. Auto-repeat
// events are forwarded as presses; the engine ignores them.
func (k *Keyboard) ReadLoop(ctx context.Context, submit func(context.Context, model.KeyEvent) error) error {
	for {
		ev, err := k.dev.ReadOne()
		if err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return fmt.Errorf("reading %v: %w", k.name, err)
		}
		if ev.Type != evdev.EV_KEY {
			continue
		}

		if ev.Code == grabKey {
			if ev.Value == keyPress {
				k.toggleGrab()
			}
			continue
		}

		var action model.Action
		switch ev.Value {
		case keyPress, keyRepeat:
			action = model.Press
		case keyRelease:
			action = model.Release
		default:
			continue
		}

		keyEvent := model.KeyEvent{
			Key:    evdev.CodeName(ev.Type, ev.Code),
			Action: action,
			Time:   time.Now(),
		}
		if err := submit(ctx, keyEvent); err != nil {
			if ctx.Err() != nil {
				return nil
			}
			return err
		}
	}
}
