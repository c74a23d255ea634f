// Package main provides the entry point for the calcifer CLI.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/mrz1836/calcifer/internal/cli"
	"github.com/mrz1836/calcifer/internal/signal"
)

// Build information set via ldflags.
//
//nolint:gochecknoglobals // set at build time
var (
	version = ""
	commit  = ""
	date    = ""
)

func main() {
	handler := signal.NewHandler(context.Background())
	defer handler.Stop()

	info := cli.BuildInfo{Version: version, Commit: commit, Date: date}
	err := cli.Execute(handler.Context(), info)

	cli.CloseLogFile()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.ExitCodeForError(err))
	}
}
