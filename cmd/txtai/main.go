// Package main is the entry point for the txtai CLI.
package main

import (
	"os"

	"github.com/SerjaoM/txtai/cmd/txtai/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
