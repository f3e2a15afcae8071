/*
Copyright © 2025 SecEnum Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/harvexz/secenum/pkg/enumerator"
	"github.com/harvexz/secenum/pkg/serializer"
)

func servicesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "services",
		EnableShellCompletion: true,
		Usage:                 "List services with their hardening analysis",
		Description: `List every service the process manager knows about, enriched with the
per-service hardening analysis (root usage, sandboxing directives, MAC
policy attachment), without collecting the other categories.`,
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

			services, err := e.EnumerateServices(ctx)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, services)
		},
	}
}
