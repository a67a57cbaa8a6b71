// Package main is the entry point for the sppd CLI.
package main

import (
	"os"

	"github.com/shunichi-ikebuchi/sppd/cmd/sppd/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
