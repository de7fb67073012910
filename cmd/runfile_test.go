package cmd

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

const sampleRunfile = `
name: nightly-checks
description: evening state collection
platform: cisco_iosxr
transport: telnet
port: 2023
hosts:
  - 10.1.1.1
  - 10.1.1.2
commands:
  - show version
  - show clock
`

func TestLoadRunfile_Valid(t *testing.T) {
	p := writeTemp(t, t.TempDir(), "run.yaml", sampleRunfile)
	rf, err := loadRunfile(p)
	require.NoError(t, err)
	require.Equal(t, "nightly-checks", rf.Name)
	require.Equal(t, []string{"10.1.1.1", "10.1.1.2"}, rf.Hosts)
	require.Equal(t, []string{"show version", "show clock"}, rf.Commands)
}

func TestLoadRunfile_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "missing name", content: "hosts: [10.0.0.1]\ncommands: [show version]\n"},
		{name: "bad transport", content: "name: x\ntransport: serial\n"},
		{name: "bad port", content: "name: x\nport: 99999\n"},
		{name: "empty host entry", content: "name: x\nhosts: ['']\n"},
		{name: "not yaml", content: "{{{{\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := writeTemp(t, t.TempDir(), "run.yaml", tt.content)
			_, err := loadRunfile(p)
			require.Error(t, err)
		})
	}
}

func TestLoadRunfile_Missing(t *testing.T) {
	_, err := loadRunfile("does-not-exist.yaml")
	require.Error(t, err)
}

func TestRootExecute_RunfileSuppliesEverything(t *testing.T) {
	resetConfig()
	cfg, hosts := stubOpen(t)

	p := writeTemp(t, t.TempDir(), "run.yaml", sampleRunfile)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{"--runfile", p, "-u", "dave", "-p", "pw"})
	require.NoError(t, rootCmd.Execute())

	require.Equal(t, []string{"10.1.1.1", "10.1.1.2"}, *hosts)
	require.Equal(t, "telnet", cfg.Transport)
	require.Equal(t, 2023, cfg.Port)
	require.Equal(t, "cisco_iosxr", cfg.Platform)
}

func TestRootExecute_FlagsBeatRunfile(t *testing.T) {
	resetConfig()
	cfg, hosts := stubOpen(t)

	p := writeTemp(t, t.TempDir(), "run.yaml", sampleRunfile)
	rootCmd.SetOut(new(bytes.Buffer))
	rootCmd.SetArgs([]string{
		"--runfile", p,
		"--inventory", "192.0.2.9",
		"--transport", "ssh",
		"--port", "22",
		"-u", "dave", "-p", "pw",
	})
	require.NoError(t, rootCmd.Execute())

	require.Equal(t, []string{"192.0.2.9"}, *hosts, "explicit inventory wins over runfile hosts")
	require.Equal(t, "standard", cfg.Transport)
	require.Equal(t, 22, cfg.Port)
}
