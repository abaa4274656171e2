package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetDumpCmd_Exists verifies getDumpCmd returns
// a valid command.
func TestGetDumpCmd_Exists(t *testing.T) {
	cmd := getDumpCmd()
	require.NotNil(t, cmd, "Dump command should exist")
	assert.Equal(t, "dump", cmd.Use)
}

// TestGetDumpCmd_Flags verifies the expected flags
// are declared.
func TestGetDumpCmd_Flags(t *testing.T) {
	cmd := getDumpCmd()

	for _, name := range []string{
		"clade", "workdir", "output", "chunk-size",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name), name)
	}
}
