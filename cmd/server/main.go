// Package main implements the entry point for the Mjolnir API server,
// which serves an artist's most popular songs from the Deezer catalogue.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		// cobra has already printed the error
		os.Exit(1)
	}
}
