package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShowvalPrintsResolvedOption(t *testing.T) {
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--showval", "tg-seeds", "--seed", "1"})
	require.NoError(t, cmd.Execute())
	require.Equal(t, "8\n", out.String())
}

func TestNoPrefixedBoolDisablesOption(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{
		"--showval", "tg-longt",
		"--no-tg-longt",
		"--seed", "1",
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
	require.Equal(t, "0\n", out.String())
}

func TestUnknownOptionShowvalErrors(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{"--showval", "not-a-real-option", "--seed", "1"})
	cmd.SetOut(new(bytes.Buffer))
	err := cmd.Execute()
	require.Error(t, err)
}

func TestRunEndToEndSmallPipeline(t *testing.T) {
	cmd := NewRootCmd()
	cmd.SetArgs([]string{
		"--seed", "42",
		"--cg-vertices", "3",
		"--pg-var", "1",
		"--pg-splits", "1",
		"--quiet",
	})
	var out bytes.Buffer
	cmd.SetOut(&out)
	require.NoError(t, cmd.Execute())
}
