package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

// Happy path: Execute() should not call exitFunc when rootCmd succeeds.
func TestExecute_Success_NoExit(t *testing.T) {
	resetConfig()
	stubOpen(t)

	origExit := exitFunc
	t.Cleanup(func() { exitFunc = origExit })
	calledExit := -1
	exitFunc = func(code int) { calledExit = code }

	dir := t.TempDir()
	cmdsFile := writeTemp(t, dir, "cmds.txt", "show version\n")
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"-i", "10.1.1.1", "-C", cmdsFile, "-u", "dave", "-p", "pw"})

	Execute()
	require.Equal(t, -1, calledExit, "normal completion must not exit non-zero")
}

// Sad path: configuration errors exit 1 before any connection attempt.
func TestExecute_ConfigError_Exit1(t *testing.T) {
	resetConfig()

	// The open stub counts connection attempts; config errors must happen
	// before any of them.
	_, hosts := stubOpen(t)

	origExit := exitFunc
	t.Cleanup(func() { exitFunc = origExit })
	code := 0
	exitFunc = func(c int) { code = c }

	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--commands", "show version"})

	Execute()
	require.Equal(t, 1, code)
	require.Empty(t, *hosts, "no connection attempted on config error")
}
