/*
Copyright © 2025 SecEnum Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/harvexz/secenum/pkg/defaults"
	"github.com/harvexz/secenum/pkg/logging"
	"github.com/harvexz/secenum/pkg/serializer"
)

const (
	name           = "secenum"
	versionDefault = "dev"
)

var (
	// overridden during build with ldflags
	version = versionDefault
	commit  = "unknown"
	date    = "unknown"
)

var outputFlag = &cli.StringFlag{
	Name:    "output",
	Aliases: []string{"o"},
	Usage:   "Output file path (default: stdout)",
	Sources: cli.EnvVars("SECENUM_OUTPUT"),
}

var formatFlag = &cli.StringFlag{
	Name:    "format",
	Aliases: []string{"f"},
	Value:   string(serializer.FormatJSON),
	Usage: fmt.Sprintf("Output format (supported values: %s)",
		strings.Join(serializer.SupportedFormats(), ", ")),
	Sources: cli.EnvVars("SECENUM_FORMAT"),
}

var timeoutFlag = &cli.DurationFlag{
	Name:    "timeout",
	Usage:   "Budget for the whole run",
	Value:   defaults.EnumerationTimeout,
	Sources: cli.EnvVars("SECENUM_TIMEOUT"),
}

func rootCmd() *cli.Command {
	return &cli.Command{
		Name:    name,
		Usage:   "Read-only host security inventory",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
		Description: `secenum enumerates the security-relevant inventory of a Linux host:
installed packages, running services, and host configuration, scored
against hardening baselines.

Every operation is strictly read-only: secenum never installs, removes,
starts, stops, or reconfigures anything.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "info",
				Sources: cli.EnvVars("SECENUM_LOG_LEVEL"),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			logging.SetDefaultStructuredLoggerWithLevel(name, version, cmd.String("log-level"))
			return ctx, nil
		},
		Commands: []*cli.Command{
			scanCmd(),
			packagesCmd(),
			servicesCmd(),
			analyzeCmd(),
		},
	}
}

// Execute runs the CLI. It is called by main.main() and handles SIGINT and
// SIGTERM for graceful shutdown.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd().Run(ctx, os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// outputFormat validates the format flag before any collection starts.
func outputFormat(cmd *cli.Command) (serializer.Format, error) {
	f := serializer.Format(cmd.String("format"))
	if f.IsUnknown() {
		return "", fmt.Errorf("unknown output format: %q", f)
	}
	return f, nil
}
