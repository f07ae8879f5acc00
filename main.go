package main

import (
	"os"

	"github.com/GoAccessibilityControls/GoAccessibilityControls/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
