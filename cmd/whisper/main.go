package main

import (
	"os"

	"github.com/memetcircus/whisper-core/cmd/whisper/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
