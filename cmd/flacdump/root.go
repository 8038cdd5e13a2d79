package main

import (
	"bufio"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"ktkr.us/pkg/flacparse"
	"ktkr.us/pkg/flacparse/flac"
)

type options struct {
	format  string
	raw     bool
	verbose bool
}

func newRootCmd() *cobra.Command {
	opts := &options{}

	cmd := &cobra.Command{
		Use:   "flacdump [flags] <file|->",
		Short: "Print the Vorbis comment tags of a FLAC file",
		Long: `flacdump reads the metadata blocks of a FLAC file and prints the
title, artist, album and track number found in its Vorbis comment block.

Examples:
  # Print the common tags
  flacdump song.flac

  # Every tag, as JSON
  flacdump --raw -o json song.flac

  # Read from standard input
  cat song.flac | flacdump -
`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDump(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.format, "output", "o", string(formatText), "output format: text, yaml, json")
	cmd.Flags().BoolVar(&opts.raw, "raw", false, "include every tag")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "log the metadata blocks visited to stderr")

	return cmd
}

func runDump(cmd *cobra.Command, name string, opts *options) error {
	format, err := parseFormat(opts.format)
	if err != nil {
		return err
	}

	logger := newLogger(cmd.ErrOrStderr(), opts.verbose)

	var in io.Reader
	if name == "-" {
		in = cmd.InOrStdin()
	} else {
		f, err := os.Open(name)
		if err != nil {
			return errors.Wrap(err, "open input")
		}
		defer f.Close()
		in = f
	}

	c, err := flac.NewParser(flac.WithLogger(logger)).Parse(bufio.NewReader(in))
	if err != nil {
		logger.Debug("parse failed", "file", name, "kind", flacparse.KindOf(err))
		return errors.WithMessage(err, name)
	}

	return writeResult(cmd.OutOrStdout(), newResult(name, c, opts.raw), format)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	if !verbose {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
