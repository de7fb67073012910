package cmd

import (
	"errors"
	"time"

	"github.com/network-dave/netrun/internal/creds"
	"github.com/network-dave/netrun/internal/device"
)

// Version is the CLI version string injected at build time via -ldflags.
var Version = "0.1.0"

// errInterrupted signals that the run was aborted by an interactive
// interrupt; Execute maps it to exit code 1.
var errInterrupted = errors.New("run interrupted")

var (
	// Global configuration populated by flags, environment variables and the
	// optional runfile. Declared here so they are visible across subcommands.
	cfgInventory      string
	cfgInventoryFile  string
	cfgCommands       []string
	cfgCommandsFile   string
	cfgDeploy         bool
	cfgRunfile        string
	cfgTransport      string
	cfgPlatform       string
	cfgPort           int
	cfgUsername       string
	cfgPassword       string
	cfgEnableSecret   string
	cfgNoEnable       bool
	cfgSave           bool
	cfgSeparate       bool
	cfgOutputDir      string
	cfgSSHConfig      bool
	cfgTimeout        time.Duration
	cfgOnCommandError string
	cfgVerbose        bool
)

// Allow tests to stub session opening, interactive prompting and the clock.
var (
	openSessionFunc               = device.Open
	promptFunc   creds.PromptFunc = creds.Terminal()
	nowFunc                       = time.Now
)
