package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/config"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/constants"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/engine"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/input"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/layout"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/midiout"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/monitor"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/pipeline"
)

var runFlags struct {
	device       string
	deviceByName string
	layoutName   string
	port         string
	monitorAddr  string
	configPath   string
	debug        bool
	queueSize    int
}

func init() {
	runCmd.Flags().StringVarP(&runFlags.device, "device", "d", "", "path to keyboard device (e.g. /dev/input/event3)")
	runCmd.Flags().StringVar(&runFlags.deviceByName, "device-by-name", "", "find device by name (partial match, case-insensitive)")
	runCmd.Flags().StringVar(&runFlags.layoutName, "layout", "stradella", "layout variant or custom layout name")
	runCmd.Flags().StringVar(&runFlags.port, "port", "", "connect to an existing MIDI output instead of creating a virtual port")
	runCmd.Flags().StringVar(&runFlags.monitorAddr, "monitor", "", "serve the live state over HTTP on this address")
	runCmd.Flags().StringVar(&runFlags.configPath, "config", "config.yml", "path to the defaults file")
	runCmd.Flags().BoolVar(&runFlags.debug, "debug", false, "log every key event")
	runCmd.Flags().IntVar(&runFlags.queueSize, "queue", constants.DefaultQueueSize, "key event queue size")
	rootCmd.AddCommand(runCmd)
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Runs the keyboard-to-MIDI bridge",
	Long:  `Runs the keyboard-to-MIDI bridge`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd)
	},
}

// applyConfigDefaults fills flags the user did not set from config.yml.
func applyConfigDefaults(cmd *cobra.Command) error {
	cfg, err := config.Load(runFlags.configPath)
	if err != nil {
		return err
	}

	defaults := map[string]*string{
		"device":         &cfg.Arguments.Device,
		"device-by-name": &cfg.Arguments.DeviceByName,
		"layout":         &cfg.Arguments.Layout,
		"port":           &cfg.Arguments.Port,
		"monitor":        &cfg.Arguments.Monitor,
	}
	targets := map[string]*string{
		"device":         &runFlags.device,
		"device-by-name": &runFlags.deviceByName,
		"layout":         &runFlags.layoutName,
		"port":           &runFlags.port,
		"monitor":        &runFlags.monitorAddr,
	}
	for name, value := range defaults {
		if *value != "" && !cmd.Flags().Changed(name) {
			*targets[name] = *value
		}
	}
	if cfg.Arguments.Debug && !cmd.Flags().Changed("debug") {
		runFlags.debug = true
	}
	return nil
}

func newLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// resolveDevice picks the keyboard device path from flags, or the single
// accessible keyboard if exactly one exists.
func resolveDevice() (string, error) {
	if runFlags.device != "" {
		return runFlags.device, nil
	}
	if runFlags.deviceByName != "" {
		return input.FindByName(runFlags.deviceByName)
	}

	keyboards, err := input.List()
	if err != nil {
		return "", err
	}
	var accessible []input.Info
	for _, kb := range keyboards {
		if kb.Accessible {
			accessible = append(accessible, kb)
		}
	}
	if len(accessible) == 1 {
		return accessible[0].Path, nil
	}
	return "", fmt.Errorf("%d keyboards found; pick one with --device or --device-by-name (see `accordion-bass list`)", len(accessible))
}

func run(cmd *cobra.Command) error {
	if err := applyConfigDefaults(cmd); err != nil {
		return err
	}

	log, err := newLogger(runFlags.debug)
	if err != nil {
		return err
	}
	defer log.Sync()

	table, err := layout.Get(runFlags.layoutName)
	if err != nil {
		return err
	}
	log.Info("layout loaded",
		zap.String("layout", table.Name()),
		zap.Int("cells", table.NumCells()),
		zap.Uint8s("channels", table.Channels()))

	devicePath, err := resolveDevice()
	if err != nil {
		return err
	}
	keyboard, err := input.Open(devicePath, log)
	if err != nil {
		return err
	}
	defer keyboard.Close()

	var sink *midiout.Port
	if runFlags.port != "" {
		sink, err = midiout.OpenByName(runFlags.port, log)
	} else {
		sink, err = midiout.OpenVirtual(constants.VirtualPortName, log)
	}
	if err != nil {
		return err
	}
	defer sink.Close()

	eng := engine.New(table, log)
	pipe := pipeline.New(eng, sink, log, runFlags.queueSize)
	log.Info("bridge started",
		zap.String("session", pipe.Session()),
		zap.String("keyboard", keyboard.Name()))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if runFlags.monitorAddr != "" {
		go monitor.Serve(runFlags.monitorAddr, pipe, table, log)
	}

	readErr := make(chan error, 1)
	go func() {
		err := keyboard.ReadLoop(ctx, pipe.Submit)
		readErr <- err
		// a dead input source stops the whole bridge
		cancel()
	}()

	runErr := pipe.Run(ctx)
	cancel()
	keyboard.Close()

	if err := <-readErr; err != nil {
		return err
	}
	if runErr != nil {
		return runErr
	}
	log.Info("bridge stopped")
	return nil
}
