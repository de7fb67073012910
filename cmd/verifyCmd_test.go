package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestVerify_ValidRunfile(t *testing.T) {
	resetConfig()
	p := writeTemp(t, t.TempDir(), "run.yaml", sampleRunfile)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"verify", "--runfile", p})
	require.NoError(t, rootCmd.Execute())
}

func TestVerify_MissingFlag(t *testing.T) {
	resetConfig()
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"verify"})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--runfile")
}

func TestVerify_RunfileWithoutHosts(t *testing.T) {
	resetConfig()
	p := writeTemp(t, t.TempDir(), "run.yaml", "name: x\ncommands: [show version]\n")
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"verify", "--runfile", p})
	err := rootCmd.Execute()
	require.Error(t, err)
	require.Contains(t, err.Error(), "no hosts")
}

func TestVerify_InvalidRunfile(t *testing.T) {
	resetConfig()
	p := writeTemp(t, t.TempDir(), "run.yaml", "transport: serial\n")
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"verify", "--runfile", p})
	require.Error(t, rootCmd.Execute())
}
