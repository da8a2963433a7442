// Command derivexctl is a small command-line wrapper over the derivex
// package: compile a pattern once, then run it against one or more inputs
// from the command line.
package main

import (
	"os"

	"github.com/coregx/derivex/cmd/derivexctl/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
