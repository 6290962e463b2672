package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/rony4d/go-mpss-bench/cmd/mpssbench/launcher"
)

func main() {

	// Gather the full list of command-line arguments
	arguments := os.Args

	// Call into the launcher and capture any resulting error
	err := launcher.Launch(arguments)

	// "ready" answers through the exit status only
	if errors.Is(err, launcher.ErrNotReady) {
		os.Exit(1)
	}

	if err != nil {

		// Report the issue so the user sees it
		fmt.Fprintln(os.Stderr, "Error:", err)

		// Exit with a non-zero status code to indicate failure
		os.Exit(1)
	}
}
