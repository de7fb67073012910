package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/network-dave/netrun/internal/commands"
	"github.com/network-dave/netrun/internal/creds"
	"github.com/network-dave/netrun/internal/device"
	"github.com/network-dave/netrun/internal/inventory"
	"github.com/network-dave/netrun/internal/lg"
	"github.com/network-dave/netrun/internal/output"
	"github.com/network-dave/netrun/internal/run"
)

var rootCmd = &cobra.Command{
	Use:   "netrun",
	Short: "Run commands on network hosts from the command line",
	Long: "Connects to one or more network devices over SSH/Telnet, executes a list of commands " +
		"against each, and writes the output to the console or to files.",
	Version:       Version,
	SilenceErrors: true,
	SilenceUsage:  true,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := lg.New(cfgVerbose)
		defer func() { _ = log.Sync() }()

		var rf *runfile
		if cfgRunfile != "" {
			loaded, err := loadRunfile(cfgRunfile)
			if err != nil {
				return err
			}
			rf = loaded
			applyRunfile(rf, cmd.Flags())
		}

		hosts, err := resolveHosts(rf)
		if err != nil {
			return err
		}
		log.Info("resolved hosts", lg.Int("count", len(hosts)))

		cmds, err := resolveCommands(rf)
		if err != nil {
			return err
		}

		policy, err := run.ParsePolicy(cfgOnCommandError)
		if err != nil {
			return err
		}

		transportName, err := device.NormalizeTransport(cfgTransport)
		if err != nil {
			return err
		}
		port := cfgPort
		if port == 0 {
			port = device.DefaultPort(transportName)
		}

		// Credentials resolve fully before the first connection attempt.
		credentials, err := creds.Resolve(creds.Input{
			Username:     cfgUsername,
			Password:     cfgPassword,
			EnableSecret: cfgEnableSecret,
			NoEnable:     cfgNoEnable,
		}, os.Getenv, promptFunc)
		if err != nil {
			return err
		}

		runID := uuid.NewString()
		log = log.With(lg.String("run", runID))
		stamp := nowFunc().Format(output.FileTimeFormat)

		router := &output.Router{
			Save:        cfgSave,
			Separate:    cfgSeparate,
			DirTemplate: cfgOutputDir,
			Username:    credentials.Username,
			Stamp:       stamp,
			Console:     cmd.OutOrStdout(),
		}

		devCfg := device.Config{
			Platform:     cfgPlatform,
			Transport:    transportName,
			Port:         port,
			Credentials:  credentials,
			Timeout:      cfgTimeout,
			UseSSHConfig: cfgSSHConfig,
		}
		open := func(host string) (device.Session, error) {
			return openSessionFunc(devCfg, host)
		}

		runner := run.New(run.Config{
			Hosts:          hosts,
			Commands:       cmds,
			Deploy:         cfgDeploy,
			OnCommandError: policy,
			FailureLog:     fmt.Sprintf("netrun_failed_%s.txt", stamp),
		}, open, router, log)

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()

		if err := runner.Run(ctx); err != nil {
			if errors.Is(err, context.Canceled) {
				return errInterrupted
			}
			return err
		}
		return nil
	},
}

// resolveHosts picks exactly one host source: inline list, inventory file, or
// the runfile's hosts.
func resolveHosts(rf *runfile) ([]string, error) {
	if cfgInventory != "" && cfgInventoryFile != "" {
		return nil, errors.New("--inventory and --inventory-file are mutually exclusive")
	}
	switch {
	case cfgInventory != "":
		return inventory.ParseInline(cfgInventory)
	case cfgInventoryFile != "":
		hosts, err := inventory.LoadFile(cfgInventoryFile)
		if err != nil {
			return nil, err
		}
		if len(hosts) == 0 {
			return nil, fmt.Errorf("no usable hosts in %s", cfgInventoryFile)
		}
		return hosts, nil
	case rf != nil && len(rf.Hosts) > 0:
		return rf.Hosts, nil
	}
	return nil, errors.New("--inventory or --inventory-file is required")
}

// resolveCommands picks exactly one command source: inline list, commands
// file, deploy mode, or the runfile's commands. In deploy mode the actual
// list is resolved per host inside the run loop.
func resolveCommands(rf *runfile) ([]string, error) {
	sources := 0
	if len(cfgCommands) > 0 {
		sources++
	}
	if cfgCommandsFile != "" {
		sources++
	}
	if cfgDeploy {
		sources++
	}
	if sources > 1 {
		return nil, errors.New("--commands, --commands-file and --deploy are mutually exclusive")
	}
	switch {
	case len(cfgCommands) > 0:
		return commands.ParseInline(cfgCommands)
	case cfgCommandsFile != "":
		cmds, err := commands.LoadFile(cfgCommandsFile)
		if err != nil {
			return nil, err
		}
		if len(cmds) == 0 {
			return nil, fmt.Errorf("%s: %w", cfgCommandsFile, commands.ErrNoCommands)
		}
		return cmds, nil
	case cfgDeploy:
		return nil, nil
	case rf != nil && len(rf.Commands) > 0:
		return rf.Commands, nil
	}
	return nil, errors.New("--commands, --commands-file or --deploy is required")
}
