package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"hearthside/cookbook/pkg/build"
	"hearthside/cookbook/pkg/cookbook/errors"
	"hearthside/cookbook/pkg/telemetry/logging"
)

var (
	// Global flags
	verbose bool
)

var rootFlags struct {
	output       string
	renderer     string
	indexPath    string
	strictGroups bool
}

var rootCmd = &cobra.Command{
	Use:   "cookbook [inputs...]",
	Short: "Cookbook - static recipe site builder",
	Long: `Cookbook builds static recipe sites from YAML recipe collections.

It loads recipe files and a book manifest, validates every document
against a strict field grammar, and renders the collection through a
pluggable backend:
  - Ingredient and step validation with exact round-tripping
  - Group pages populated by label references
  - Markdown and HTML renderer backends
  - Optional SQLite recipe index for search

Without --output the run only validates and writes nothing:
  cookbook recipes/

For more information, visit: https://github.com/hearthside/cookbook`,
	Version:       Version,
	Args:          cobra.ArbitraryArgs,
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		printError(os.Stderr, err, verbose)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.Flags().StringVarP(&rootFlags.output, "output", "o", "", "output directory (omit to validate without writing)")
	rootCmd.Flags().StringVarP(&rootFlags.renderer, "renderer", "r", "", "renderer backend (overrides the book manifest)")
	rootCmd.Flags().StringVar(&rootFlags.indexPath, "index", "", "write a SQLite recipe index to this file")
	rootCmd.Flags().BoolVar(&rootFlags.strictGroups, "strict-groups", false, "fail on recipes referencing undeclared groups")
}

func runBuild(cmd *cobra.Command, args []string) error {
	// No inputs, nothing to validate.
	if len(args) == 0 {
		return nil
	}

	logger := logging.Setup(verbose)

	builder := build.New(build.Config{
		Inputs:       args,
		OutputDir:    rootFlags.output,
		Renderer:     rootFlags.renderer,
		StrictGroups: rootFlags.strictGroups,
		IndexPath:    rootFlags.indexPath,
	}, nil, logger)

	_, err := builder.Build(context.Background())
	return err
}

// printError writes the one-line diagnostic for err. Source errors carry
// the offending file path and get the [!] marker; everything else is
// reported generically. Verbose mode appends the cause chain, one frame
// per line.
func printError(w io.Writer, err error, verbose bool) {
	var srcErr *errors.SourceError
	if stderrors.As(err, &srcErr) {
		fmt.Fprintf(w, "[!]: %v\n", srcErr)
	} else {
		fmt.Fprintf(w, "Error: %v\n", err)
	}

	if verbose {
		for _, cause := range errors.Chain(err)[1:] {
			fmt.Fprintf(w, "  caused by: %v\n", cause)
		}
	}
}
