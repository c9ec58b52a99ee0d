package main

import (
	"os"

	"github.com/emprendelab/vitrina/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
