package main

import (
	"os"

	"github.com/GhostNetwork/account/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
