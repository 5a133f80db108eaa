package main

import (
	"os"

	"github.com/spigell/fitrank/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
