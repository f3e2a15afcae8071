/*
Copyright © 2025 SecEnum Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/harvexz/secenum/pkg/enumerator"
	"github.com/harvexz/secenum/pkg/logging"
	"github.com/harvexz/secenum/pkg/serializer"
)

func scanCmd() *cli.Command {
	return &cli.Command{
		Name:                  "scan",
		EnableShellCompletion: true,
		Usage:                 "Run a full host enumeration",
		Description: `Run a full enumeration of the host's security-relevant inventory:
  - Host identity and resources (kernel, distribution, CPU, memory)
  - Installed packages with signature trust state
  - Services with per-service hardening analysis
  - Host-wide security checks (firewall, SSH, MAC systems)

The report can be output in JSON, YAML, or table format.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			timeoutFlag,
			&cli.BoolFlag{
				Name:    "quiet",
				Aliases: []string{"q"},
				Usage:   "Suppress informational logging, emit only the report",
				Sources: cli.EnvVars("SECENUM_QUIET"),
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := outputFormat(cmd)
			if err != nil {
				return err
			}
			if cmd.Bool("quiet") {
				logging.SetDefaultStructuredLoggerWithLevel(name, version, "error")
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			e, err := enumerator.New(ctx)
			if err != nil {
				return err
			}

			result, err := e.EnumerateAll(ctx)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, result)
		},
	}
}
