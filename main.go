package main

import (
	"os"

	"github.com/podiumhq/podium/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
