package main

import (
	"os"

	"github.com/robalobadob/wordguess/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		os.Exit(1)
	}
}
