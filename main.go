package main

import (
	"os"

	"github.com/labrocante/brocante/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
