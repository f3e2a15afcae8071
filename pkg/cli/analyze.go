/*
Copyright © 2025 SecEnum Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"log/slog"

	"github.com/urfave/cli/v3"

	"github.com/harvexz/secenum/pkg/enumerator"
	"github.com/harvexz/secenum/pkg/serializer"
)

func analyzeCmd() *cli.Command {
	return &cli.Command{
		Name:                  "analyze",
		EnableShellCompletion: true,
		Usage:                 "Run the host security analysis",
		Description: `Run the three independent security assessments:
  - Host-wide checks (firewall, SSH root login, MAC systems)
  - Per-package integrity and signature verification
  - Per-service hardening checks

Per-item verification failures are reported as data; only a whole
category failing to collect fails the run.`,
		Flags: []cli.Flag{
			outputFlag,
			formatFlag,
			timeoutFlag,
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			outFormat, err := outputFormat(cmd)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithTimeout(ctx, cmd.Duration("timeout"))
			defer cancel()

			e, err := enumerator.New(ctx)
			if err != nil {
				return err
			}

			report, err := e.AnalyzeSecurity(ctx)
			if err != nil {
				return err
			}

			slog.Info("package verification",
				"verified", report.VerifiedPackages(),
				"total", len(report.PackageSecurity),
				"rate", report.VerificationRate())

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, report)
		},
	}
}
