package main

import (
	"os"

	"github.com/Cavendish02/AI-Factory-Robots/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
