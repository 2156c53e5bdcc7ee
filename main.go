package main

import (
	"os"

	"github.com/spacecanva/spacecanva/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
