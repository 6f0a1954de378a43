package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommandHasAllSubcommands(t *testing.T) {
	want := []string{
		"list", "add", "edit", "delete",
		"export", "import", "seed", "ask",
		"serve", "version",
	}

	registered := make(map[string]bool)
	for _, c := range rootCmd.Commands() {
		registered[c.Name()] = true
	}

	for _, name := range want {
		assert.True(t, registered[name], "missing subcommand %s", name)
	}
}

func TestServeCommandDefaults(t *testing.T) {
	cmd := newServeCmd()

	transport, err := cmd.Flags().GetString("transport")
	require.NoError(t, err)
	assert.Equal(t, "stdio", transport)

	yolo, err := cmd.Flags().GetBool("yolo")
	require.NoError(t, err)
	assert.False(t, yolo, "write operations must be disabled by default")
}

func TestExportCommandDefaultsToJSON(t *testing.T) {
	cmd := newExportCmd()

	format, err := cmd.Flags().GetString("format")
	require.NoError(t, err)
	assert.Equal(t, "json", format)
}
