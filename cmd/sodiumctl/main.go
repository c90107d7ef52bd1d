package main

import (
	"os"

	"sodiumbridge/cmd/sodiumctl/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
