// Package main is the entry point for the shopcat CLI.
package main

import (
	"os"

	"github.com/donaldgifford/shop-catalog-exporter/cmd/shopcat/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
