package main

import "github.com/AlmightyFrog/AccordionBassMIDIKeyboard/cmd"

func main() {
	cmd.Execute()
}
