package main

import (
	"os"

	"github.com/inkpost/inkpost/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
