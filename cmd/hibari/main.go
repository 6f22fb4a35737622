// Package main provides the entry point for the Hibari CLI.
package main

import (
	"os"

	"github.com/hibari-bot/hibari/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
