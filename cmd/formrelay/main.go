package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/osa911/formrelay/internal/cli"
)

func main() {
	if err := cli.Execute(); err != nil {
		// The form already printed why it was not sent.
		if !errors.Is(err, cli.ErrNotSent) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}
