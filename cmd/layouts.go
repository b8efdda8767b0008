package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AlmightyFrog/AccordionBassMIDIKeyboard/layout"
)

func init() {
	rootCmd.AddCommand(layoutsCmd)
}

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "Lists the builtin layout variants",
	Long:  `Lists the builtin layout variants`,
	RunE: func(cmd *cobra.Command, args []string) error {
		for _, name := range layout.Names() {
			table, err := layout.Get(name)
			if err != nil {
				return err
			}
			fmt.Printf("%-10s %2d cells, channels %v\n", name, table.NumCells(), table.Channels())
		}
		return nil
	},
}
