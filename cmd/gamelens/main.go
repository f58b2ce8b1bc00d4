// main is the entry point for the gamelens CLI.
package main

import (
	"os"

	"github.com/gamelens/gamelens/cmd"
	"github.com/gamelens/gamelens/internal/contract"
)

func main() {
	if err := cmd.Execute(); err != nil {
		contract.LogWarn("command failed", err)
		os.Exit(1)
	}
}
