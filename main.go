package main

import (
	"os"

	"github.com/monoserve/monoserve/internal/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
