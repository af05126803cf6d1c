package main

import (
	"fmt"
	"os"

	"github.com/pcastellanos/faro/internal/cli"
	"github.com/pcastellanos/faro/internal/tui"
	"github.com/pcastellanos/faro/internal/version"
)

func main() {
	// If no args, launch TUI; otherwise route to CLI
	if len(os.Args) == 1 {
		if err := tui.Run(); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if os.Args[1] == "--version" || os.Args[1] == "-v" {
		fmt.Printf("faro %s (%s, built %s)\n", version.Version, version.CommitSHA, version.BuildDate)
		return
	}

	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
