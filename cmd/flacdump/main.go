// Command flacdump prints the Vorbis comment tags of a FLAC file.
//
// Usage:
//
//	flacdump [flags] <file|->
//
// Use "-" to read the stream from standard input.
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
