package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/input"
	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/midiout"
)

func init() {
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "Lists keyboard devices and MIDI output ports",
	Long:  `Lists keyboard devices and MIDI output ports`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return list()
	},
}

func list() error {
	keyboards, err := input.List()
	if err != nil {
		return err
	}

	if len(keyboards) == 0 {
		fmt.Println("No keyboards found")
	} else {
		fmt.Println("Available keyboards:")
		for i, kb := range keyboards {
			status := "ready"
			if !kb.Accessible {
				status = "permission denied"
			}
			fmt.Printf("#%d. %v\n", i+1, kb.Name)
			fmt.Printf("    Device: %v\n", kb.Path)
			if kb.Phys != "" {
				fmt.Printf("    Physical: %v\n", kb.Phys)
			}
			fmt.Printf("    Status: %v\n", status)
		}
	}

	ports, err := midiout.ListPorts()
	if err != nil {
		return err
	}
	fmt.Println()
	if len(ports) == 0 {
		fmt.Println("No MIDI output ports (a virtual port is created by default)")
		return nil
	}
	fmt.Println("MIDI output ports:")
	for i, port := range ports {
		fmt.Printf("[%v] %s\n", i, port)
	}
	return nil
}
