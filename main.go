package main

import (
	"os"

	"github.com/investipet/investipet/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
