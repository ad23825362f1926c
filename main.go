package main

import (
	"os"

	"github.com/openlms/seedgen/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
