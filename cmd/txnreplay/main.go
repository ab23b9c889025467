// Command txnreplay plays a YAML transaction scenario against the
// simulated windowing layer and prints how every batch ended.
//
// Usage:
//
//	txnreplay [--ops] [--metrics] [--log-level debug] scenario.yaml
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rjkroege/xdgtxn/scenario"
)

type options struct {
	logLevel  string
	logFormat string
	ops       bool
	metrics   bool
}

func newRootCmd(stdout, stderr io.Writer) *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "txnreplay scenario.yaml",
		Short: "Replay xdg toplevel transactions against a simulated view",
		Long: `txnreplay loads a scenario describing one view and a list of steps,
runs every batch of instructions through the simulated windowing layer and
prints each batch's outcome together with the committed state of the view.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], opts, stdout, stderr)
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.logLevel, "log-level", "info", "log level: debug, info, warn or error")
	f.StringVar(&opts.logFormat, "log-format", "text", "log format: text or json")
	f.BoolVar(&opts.ops, "ops", false, "print the operation log of the simulated layer")
	f.BoolVar(&opts.metrics, "metrics", false, "print the transaction counters")
	return cmd
}

func run(path string, opts options, stdout, stderr io.Writer) error {
	logger, err := newLogger(stderr, opts.logLevel, opts.logFormat)
	if err != nil {
		return err
	}
	sc, err := scenario.LoadFile(path)
	if err != nil {
		return fmt.Errorf("failed to load scenario: %w", err)
	}
	rep, err := scenario.Run(sc, logger)
	if err != nil {
		return fmt.Errorf("failed to replay %s: %w", path, err)
	}
	if err := rep.Write(stdout, opts.ops); err != nil {
		return err
	}
	if opts.metrics {
		return writeMetrics(stdout)
	}
	return nil
}

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "txnreplay:", err)
		os.Exit(1)
	}
}
