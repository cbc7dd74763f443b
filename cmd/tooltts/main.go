package main

import (
	"os"

	"github.com/Lavi-Vu/toolTTS/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
