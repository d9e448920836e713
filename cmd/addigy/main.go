package main

import (
	"os"

	"github.com/tphakala/go-addigy/cmd/addigy/app"
)

func main() {
	if err := app.NewAddigyCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
