package main

import (
	"os"

	"github.com/homelists/homelists/listservice"
)

func main() {
	if err := listservice.Run(); err != nil {
		os.Exit(1)
	}
}
