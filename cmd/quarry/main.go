// Package main is the entry point for the quarry CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/quarry/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
