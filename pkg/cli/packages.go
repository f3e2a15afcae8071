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

func packagesCmd() *cli.Command {
	return &cli.Command{
		Name:                  "packages",
		EnableShellCompletion: true,
		Usage:                 "List installed packages",
		Description: `List every installed package with its version, architecture, size,
and signature trust state, without collecting the other categories.`,
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

			packages, err := e.EnumeratePackages(ctx)
			if err != nil {
				return err
			}

			w := serializer.NewFileWriterOrStdout(outFormat, cmd.String("output"))
			defer w.Close()
			return w.Serialize(ctx, packages)
		},
	}
}
