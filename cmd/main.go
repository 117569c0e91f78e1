package main

import (
	"fmt"
	"os"

	"github.com/wgomg/sumrank/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "sumrank: %v\n", err)
		os.Exit(1)
	}
}
