package main

import (
	"os"

	"github.com/albertcheruiyot/recipebox/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
