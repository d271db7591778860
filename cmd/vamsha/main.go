package main

import (
	"context"
	stderrors "errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/matzehuels/vamsha/internal/cli"
	"github.com/matzehuels/vamsha/pkg/errors"
	"github.com/matzehuels/vamsha/pkg/hierarchy"
)

// Exit codes.
const (
	exitOK        = 0
	exitFailure   = 1
	exitBadInput  = 2
	exitInterrupt = 130 // shell convention for SIGINT
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	verbose := false
	err := run(ctx, os.Args[1:], &verbose)
	os.Exit(report(os.Stderr, err, verbose))
}

func run(ctx context.Context, args []string, verbose *bool) error {
	c := cli.New(os.Stderr, cli.LogInfo)
	root := c.RootCommand()
	root.SilenceErrors = true
	root.PersistentFlags().BoolVarP(verbose, "verbose", "v", false, "enable verbose logging")

	originalPreRun := root.PersistentPreRunE
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		if *verbose {
			c.SetLogLevel(cli.LogDebug)
		}
		if originalPreRun != nil {
			return originalPreRun(cmd, args)
		}
		return nil
	}

	root.SetArgs(args)
	return root.ExecuteContext(ctx)
}

// report prints err for the user and returns the process exit code.
func report(w io.Writer, err error, verbose bool) int {
	if err == nil {
		return exitOK
	}
	if stderrors.Is(err, context.Canceled) {
		return exitInterrupt
	}

	msg := errors.UserMessage(err)
	if errors.Is(err, errors.ErrCodeInvalidStructure) {
		msg = hierarchy.Diagnostic(err)
	}
	fmt.Fprintln(w, "Error: "+msg)
	if verbose && msg != err.Error() {
		fmt.Fprintln(w, "  "+err.Error())
	}

	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidLanguage, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidStructure, errors.ErrCodeInvalidPath, errors.ErrCodeFileNotFound:
		return exitBadInput
	}
	return exitFailure
}
