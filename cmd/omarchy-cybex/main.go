package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/DigitalPals/omarchy-cybex/internal/catalog"
	"github.com/DigitalPals/omarchy-cybex/internal/state"
	"github.com/DigitalPals/omarchy-cybex/internal/tui"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: omarchy-cybex <script-dir>")
		fmt.Fprintln(os.Stderr, "This is typically invoked by ./install")
		os.Exit(1)
	}

	scriptDir := os.Args[1]

	// Validate the installer location before any UI comes up.
	info, err := os.Stat(scriptDir)
	if err != nil || !info.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: script directory not found: %s\n", scriptDir)
		os.Exit(1)
	}

	installPath := filepath.Join(scriptDir, "install")
	if fi, err := os.Stat(installPath); err != nil || fi.IsDir() {
		fmt.Fprintf(os.Stderr, "Error: install not found in %s\n", scriptDir)
		os.Exit(1)
	}

	// OMARCHY_CYBEX_OPTIONS points at an alternate catalog file.
	cat, err := catalog.Default()
	if path := os.Getenv("OMARCHY_CYBEX_OPTIONS"); path != "" {
		cat, err = catalog.Load(path)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	store := state.NewStore(state.DefaultPath())

	if err := tui.Run(scriptDir, cat, store); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
