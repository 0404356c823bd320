package main

import (
	"os"

	"github.com/weiawesome/wes-io-live/objectid-cli/internal/command"
)

func main() {
	if err := command.NewRoot().Execute(); err != nil {
		os.Exit(1)
	}
}
