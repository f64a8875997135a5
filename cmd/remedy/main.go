package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/remedyhq/remedy/internal/cli"
	"github.com/remedyhq/remedy/internal/engine"
)

var version = "dev"

func main() {
	cli.SetVersion(version)

	if err := cli.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		// User-declined re-application is a cancellation, not a hard failure.
		if errors.Is(err, engine.ErrCancelled) {
			os.Exit(2)
		}
		os.Exit(1)
	}
}
