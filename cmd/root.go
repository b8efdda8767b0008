package cmd

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "accordion-bass",
	Short: "USB-keyboard to MIDI controller for accordion bass simulation",
	Long: `Plays a standard keyboard as the left-hand (Stradella) manual of an
accordion, translating key presses into MIDI note and control messages.`,
}

func Execute() {
	cobra.CheckErr(rootCmd.Execute())
}
