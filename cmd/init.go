package cmd

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/network-dave/netrun/internal/device"
)

// init configures the root command's flags, binds the non-credential ones to
// environment variables via Viper, and registers subcommands. Credentials are
// deliberately not bound here: they resolve through the dedicated
// flag -> env -> prompt chain in internal/creds so prompting stays out of
// the connection path.
func init() {
	// Host inventory
	rootCmd.Flags().StringVarP(&cfgInventory, "inventory", "i", "", "host(s) to connect to, comma-separated")
	rootCmd.Flags().StringVarP(&cfgInventoryFile, "inventory-file", "I", "", "text file containing hostnames/IP addresses")
	rootCmd.Flags().StringVarP(&cfgTransport, "transport", "t", "ssh", "transport mechanism (ssh, standard, system or telnet)")
	rootCmd.Flags().StringVarP(&cfgPlatform, "platform", "x", device.DefaultPlatform, "network OS platform profile")
	rootCmd.Flags().IntVar(&cfgPort, "port", 0, "host port (default 22, or 23 for telnet)")

	// Commands
	rootCmd.Flags().StringArrayVarP(&cfgCommands, "commands", "c", nil, "command(s) to execute, comma-separated")
	rootCmd.Flags().StringVarP(&cfgCommandsFile, "commands-file", "C", "", "text file containing a list of commands")
	rootCmd.Flags().BoolVar(&cfgDeploy, "deploy", false, "load commands from netrun_deploy_<host>.txt for each host")
	rootCmd.Flags().StringVar(&cfgRunfile, "runfile", "", "YAML runfile providing hosts, commands and options")

	// Authentication
	rootCmd.Flags().StringVarP(&cfgUsername, "username", "u", "", "SSH/Telnet username (or set NETRUN_USERNAME)")
	rootCmd.Flags().StringVarP(&cfgPassword, "password", "p", "", "SSH/Telnet password (or set NETRUN_PASSWORD)")
	rootCmd.Flags().StringVarP(&cfgEnableSecret, "enable-password", "e", "", "enable secret (or set NETRUN_ENABLE; defaults to the login password)")
	rootCmd.Flags().BoolVarP(&cfgNoEnable, "no-enable", "n", false, "do not go into enable mode after login")

	// Output
	rootCmd.Flags().BoolVarP(&cfgSave, "save", "s", false, "save output to a text file (one file per host)")
	rootCmd.Flags().BoolVarP(&cfgSeparate, "separate-output", "S", false, "save each command's output to its own file")
	rootCmd.Flags().StringVarP(&cfgOutputDir, "output-directory", "o", "", "output directory, supports {date_time} {host} {username}")

	// Misc
	rootCmd.Flags().BoolVar(&cfgSSHConfig, "ssh-config", false, "honor the system ssh config file")
	rootCmd.Flags().DurationVar(&cfgTimeout, "timeout", device.DefaultTimeout, "per-operation driver timeout")
	rootCmd.Flags().StringVar(&cfgOnCommandError, "on-command-error", "abort", "policy when a command fails: abort remaining commands on the host, or continue")
	rootCmd.Flags().BoolVar(&cfgVerbose, "verbose", false, "display verbose debugging output")

	// Bind env with Viper
	_ = viper.BindPFlag("transport", rootCmd.Flags().Lookup("transport"))
	_ = viper.BindPFlag("platform", rootCmd.Flags().Lookup("platform"))
	_ = viper.BindPFlag("output-directory", rootCmd.Flags().Lookup("output-directory"))

	viper.SetEnvPrefix("NETRUN")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Pull in environment overrides on init, flags winning when set
	cobra.OnInitialize(func() {
		if v := viper.GetString("transport"); v != "" && !rootCmd.Flags().Changed("transport") {
			cfgTransport = v
		}
		if v := viper.GetString("platform"); v != "" && !rootCmd.Flags().Changed("platform") {
			cfgPlatform = v
		}
		if v := viper.GetString("output-directory"); v != "" && !rootCmd.Flags().Changed("output-directory") {
			cfgOutputDir = v
		}
	})

	rootCmd.AddCommand(verifyCmd)
}
