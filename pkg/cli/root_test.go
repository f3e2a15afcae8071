/*
Copyright © 2025 SecEnum Authors
SPDX-License-Identifier: Apache-2.0
*/
package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRootCmd_Commands(t *testing.T) {
	root := rootCmd()

	assert.Equal(t, name, root.Name)

	names := make([]string, 0, len(root.Commands))
	for _, cmd := range root.Commands {
		names = append(names, cmd.Name)
	}
	assert.Equal(t, []string{"scan", "packages", "services", "analyze"}, names)
}

func TestUnknownFormatRejectedBeforeCollection(t *testing.T) {
	for _, sub := range []string{"scan", "packages", "services", "analyze"} {
		t.Run(sub, func(t *testing.T) {
			err := rootCmd().Run(context.TODO(), []string{name, sub, "--format", "xml"})

			assert.Error(t, err)
			assert.Contains(t, err.Error(), "unknown output format")
		})
	}
}

func TestFlagDefaults(t *testing.T) {
	assert.Equal(t, "json", formatFlag.Value)
	assert.Empty(t, outputFlag.Value)
	assert.NotZero(t, timeoutFlag.Value)
}
