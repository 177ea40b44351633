package main

import (
	"os"

	"github.com/duna-ai/duna/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
