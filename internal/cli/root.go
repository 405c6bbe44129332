package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/kju-lang/kju/internal/asmfilter"
	"github.com/kju-lang/kju/internal/logger"
	"github.com/kju-lang/kju/pkg/fuzzer"
)

const (
	appName    = "kju-fuzzer"
	appVersion = "0.1.0"
)

func NewRootCmd() *cobra.Command {
	opts := fuzzer.Defaults()
	seedSet := false
	showVersion := false
	toStdout := false
	logLevel := "warn"

	cmd := &cobra.Command{
		Use:           appName + " [flags] BASENAME",
		Short:         "Random KJU program generator for differential testing",
		Long:          "Generates a random KJU program and an equivalent Python program with overflow-checked arithmetic.\nWrites BASENAME.kju and BASENAME.py.",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return logger.InitLogger(logLevel, cmd.ErrOrStderr())
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			if showVersion {
				_, err := fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", appName, appVersion)
				return err
			}

			if toStdout && len(args) > 0 {
				return fmt.Errorf("unexpected arguments with --stdout: %v", args)
			}
			if !toStdout && len(args) != 1 {
				return fmt.Errorf("expected exactly one BASENAME argument, got %d", len(args))
			}

			if !seedSet {
				opts.Seed = uint64(time.Now().UnixNano())
			}

			program, err := fuzzer.Generate(opts)
			if err != nil {
				return err
			}

			if toStdout {
				return printOutputs(cmd.OutOrStdout(), program)
			}
			return writeOutputs(args[0], program)
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVarP(&logLevel, "log-level", "l", logLevel, "log level (debug, info, warn, error)")

	cmd.Flags().BoolVarP(&showVersion, "version", "v", false, "print version")
	cmd.Flags().Uint64VarP(&opts.Seed, "seed", "s", 0, "seed for deterministic generation")
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "print both programs to stdout instead of writing files")
	cmd.Flags().IntVar(&opts.Functions, "functions", opts.Functions, "number of top-level functions")
	cmd.Flags().IntVar(&opts.MaxParams, "max-params", opts.MaxParams, "limit number of function parameters")
	cmd.Flags().IntVar(&opts.MaxBlockSize, "max-block-size", opts.MaxBlockSize, "limit statements per nested block")
	cmd.Flags().IntVar(&opts.MainStatements, "main-stmts", opts.MainStatements, "number of statements in the entry block")
	cmd.Flags().IntVar(&opts.MaxBlockDepth, "max-block-depth", opts.MaxBlockDepth, "block depth after which only declarations are generated")
	cmd.Flags().IntVar(&opts.MaxExprDepth, "max-expr-depth", opts.MaxExprDepth, "expression depth after which only literals are generated")
	cmd.Flags().BoolVar(&opts.TraceRNG, "trace-rng", opts.TraceRNG, "log every random draw at debug level")

	cmd.PreRun = func(cmd *cobra.Command, args []string) {
		seedSet = cmd.Flags().Changed("seed")
	}

	cmd.AddCommand(newAsmFilterCmd())

	return cmd
}

func newAsmFilterCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "asm-filter",
		Short: "Drop unused generated label lines from an assembly listing read on stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return asmfilter.Filter(cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}
}

// writeOutputs persists every rendering as base plus the syntax extension.
func writeOutputs(base string, program *fuzzer.Program) error {
	log := logger.GetLogger()
	for _, s := range fuzzer.Syntaxes {
		path := base + s.Extension()
		if err := os.WriteFile(path, []byte(fuzzer.Render(program, s)), 0o644); err != nil {
			return fmt.Errorf("write %s program: %w", s, err)
		}
		log.Info("wrote program", "syntax", s.String(), "path", path)
	}
	return nil
}

func printOutputs(w io.Writer, program *fuzzer.Program) error {
	for i, s := range fuzzer.Syntaxes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "==> %s <==\n%s", s.Extension(), fuzzer.Render(program, s)); err != nil {
			return err
		}
	}
	return nil
}
