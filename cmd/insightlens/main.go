package main

import (
	"os"

	"github.com/csheth/insightlens/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
