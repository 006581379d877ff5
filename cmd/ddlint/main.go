package main

import (
	"os"

	"github.com/leapstack-labs/ddlint/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
