package main

import (
	"fmt"
	"os"
)

// Version information set by build flags
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle().Render(fmt.Sprintf("Error: %v", err)))
		os.Exit(1)
	}
}
