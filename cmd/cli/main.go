// Package main - Entry point for the stacksafe CLI
package main

import (
	"os"

	"stacksafe/cmd/cli/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
