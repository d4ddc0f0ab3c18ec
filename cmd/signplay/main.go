// Package main is the entry point for the signplay CLI.
//
// Usage:
//
//	signplay [flags] <command> [args]
//
// Commands:
//
//	play   - Translate text and play the resulting sign sequence
//	gloss  - Translate text and print the gloss and render plan
//	sign   - Loop a single sign by name
//	live   - Run the engine with a WebSocket live frame feed
//	vocab  - Inspect the sign vocabulary
package main

import (
	"fmt"
	"os"

	"github.com/unmute-ai/signplay/cmd/signplay/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
