// Package main provides the dbtgen CLI.
package main

import (
	"os"

	"github.com/leapstack-labs/dbtgen/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
