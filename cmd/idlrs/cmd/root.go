// Package cmd implements the idlrs command line interface.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/teranos/idlrs/errors"
	"github.com/teranos/idlrs/idl"
	"github.com/teranos/idlrs/idl/grammar"
	"github.com/teranos/idlrs/logger"
	"github.com/teranos/idlrs/version"
)

var (
	inputPath  string
	outputPath string
	plainErrs  bool
	verbosity  int
)

// RootCmd is the idlrs command: one-shot IDL to Rust bindings compiler
var RootCmd = &cobra.Command{
	Use:   "idlrs",
	Short: "Compile COM-style IDL into Rust binding declarations",
	Long: `idlrs - one-shot compiler from COM/WinRT-style IDL to Rust bindings.

Reads an entire IDL document, builds its semantic tree, and writes Rust
declarations: one vtable-dispatched trait per interface, #[repr(C)] structs,
#[repr(u32)] enums, and unsafe foreign method signatures, preceded by a
fixed prologue of helper declarations.

By default the IDL is read from stdin and the Rust source is written to
stdout, so the tool composes in a pipeline:

  idlrs < webview2.idl > webview2.rs
  idlrs -i webview2.idl -o webview2.rs
  idlrs --plain -i broken.idl      # diagnostics without ANSI colors

Exit status is 0 on success and non-zero on a syntax error, with a located
diagnostic on stderr and nothing on stdout.`,
	Version:       version.Get().String(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := logger.Initialize(verbosity); err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger.Logger.Debugw("logger initialized", "level", logger.LevelName(verbosity))
		return nil
	},
	RunE: runCompile,
}

func init() {
	RootCmd.Flags().StringVarP(&inputPath, "input", "i", "", "Read IDL from a file instead of stdin")
	RootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write Rust to a file instead of stdout")
	RootCmd.Flags().BoolVar(&plainErrs, "plain", false, "Format diagnostics without ANSI colors")
	RootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (repeat for more detail: -v, -vv)")
}

func runCompile(cmd *cobra.Command, args []string) error {
	source, err := readSource()
	if err != nil {
		return err
	}

	sink := cmd.OutOrStdout()
	if outputPath != "" {
		f, err := os.Create(outputPath)
		if err != nil {
			return errors.Wrapf(err, "failed to create %s", outputPath)
		}
		defer f.Close()
		sink = f
	}

	if err := idl.Compile(source, sink); err != nil {
		var perr *grammar.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(cmd.ErrOrStderr(), perr.FormatError(errorContext()))
			return errors.New("compilation failed")
		}
		return err
	}
	return nil
}

// readSource ingests the whole input before any parsing begins
func readSource() (string, error) {
	if inputPath == "" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", errors.Wrap(err, "failed to read stdin")
		}
		return string(data), nil
	}
	data, err := os.ReadFile(inputPath)
	if err != nil {
		return "", errors.Wrapf(err, "failed to read %s", inputPath)
	}
	return string(data), nil
}

func errorContext() grammar.ErrorContext {
	if plainErrs {
		return grammar.ErrorContextPlain
	}
	return grammar.ErrorContextTerminal
}
