// Package main is the entry point for the virtual-lunduke CLI.
package main

import (
	"os"

	"github.com/nexussfan/virtual-lunduke/cmd/virtual-lunduke/commands"
	"github.com/nexussfan/virtual-lunduke/internal/errors"
)

func main() {
	if err := commands.Execute(); err != nil {
		commands.PrintError(os.Stderr, err)
		os.Exit(errors.Code(err))
	}
}
