package main

import (
	"fmt"
	"os"
)

// Set via ldflags: -X main.version=1.0.0
var version = "dev"

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
