package main

import (
	"os"

	"github.com/whotakesshowers/wts/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
