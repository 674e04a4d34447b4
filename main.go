package main

import (
	"os"
	"path/filepath"

	"github.com/josephlewis42/minish/cmd"
)

func main() {
	// Invoked through a link named after an applet.
	if status, ok := cmd.RunApplet(filepath.Base(os.Args[0]), os.Args[1:]); ok {
		os.Exit(status)
	}

	cmd.Execute()
}
