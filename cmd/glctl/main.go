package main

import (
	"os"

	"github.com/SscSPs/gl_backoffice/internal/commands"
)

func main() {
	if err := commands.NewRootCommand(commands.DefaultApp()).Execute(); err != nil {
		os.Exit(1)
	}
}
