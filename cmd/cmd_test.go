package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestGetBuildCmd_Exists verifies getBuildCmd returns
// a valid command.
func TestGetBuildCmd_Exists(t *testing.T) {
	cmd := getBuildCmd()
	require.NotNil(t, cmd, "Build command should exist")
	assert.Contains(t, cmd.Use, "build",
		"Command name should be build")
	assert.NotNil(t, cmd.RunE, "RunE should be set")
}

// TestGetBuildCmd_Flags verifies the build flags.
func TestGetBuildCmd_Flags(t *testing.T) {
	cmd := getBuildCmd()

	sepFlag := cmd.Flags().Lookup("separator")
	require.NotNil(t, sepFlag, "--separator flag should exist")
	assert.Equal(t, "s", sepFlag.Shorthand,
		"Short form should be -s")

	outFlag := cmd.Flags().Lookup("output")
	require.NotNil(t, outFlag, "--output flag should exist")
	assert.Equal(t, "taxa.sqlite", outFlag.DefValue,
		"Default output should be taxa.sqlite")

	for _, name := range []string{
		"separator-regexp", "regexp", "roles",
		"classification-column", "name-column", "canonical",
	} {
		assert.NotNil(t, cmd.Flags().Lookup(name),
			"--%s flag should exist", name)
	}
}

// TestGetAttachCmd_Exists verifies getAttachCmd returns
// a valid command.
func TestGetAttachCmd_Exists(t *testing.T) {
	cmd := getAttachCmd()
	require.NotNil(t, cmd, "Attach command should exist")
	assert.Contains(t, cmd.Use, "attach",
		"Command name should be attach")
	assert.NotNil(t, cmd.RunE, "RunE should be set")

	treeFlag := cmd.Flags().Lookup("tree")
	require.NotNil(t, treeFlag, "--tree flag should exist")
	assert.Equal(t, "t", treeFlag.Shorthand,
		"Short form should be -t")

	assert.NotNil(t, cmd.Flags().Lookup("strict"),
		"--strict flag should exist")
	assert.NotNil(t, cmd.Flags().Lookup("example"),
		"--example flag should exist")
}

// TestGetQueryCmd_Subcommands verifies the query
// subcommand set.
func TestGetQueryCmd_Subcommands(t *testing.T) {
	cmd := getQueryCmd()
	require.NotNil(t, cmd, "Query command should exist")

	want := []string{
		"roots", "leaves", "subtaxa", "supertaxa",
		"datasets", "observations",
	}
	var got []string
	for _, sub := range cmd.Commands() {
		got = append(got, sub.Name())
	}
	for _, name := range want {
		assert.Contains(t, got, name,
			"query should have a %s subcommand", name)
	}

	assert.NotNil(t, cmd.PersistentFlags().Lookup("tree"),
		"--tree flag should exist")
}
