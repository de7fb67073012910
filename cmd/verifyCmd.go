package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// verifyCmd validates a runfile without connecting to anything, so operators
// can lint a change before pointing it at the fleet.
var verifyCmd = &cobra.Command{
	Use:   "verify",
	Short: "Validate a YAML runfile",
	RunE: func(cmd *cobra.Command, args []string) error {
		if cfgRunfile == "" {
			return errors.New("--runfile is required (path to YAML)")
		}
		rf, err := loadRunfile(cfgRunfile)
		if err != nil {
			return err
		}
		if len(rf.Hosts) == 0 {
			return fmt.Errorf("runfile %s defines no hosts", cfgRunfile)
		}
		if len(rf.Commands) == 0 {
			return fmt.Errorf("runfile %s defines no commands", cfgRunfile)
		}
		_, _ = fmt.Fprintln(os.Stdout, "Runfile OK")
		return nil
	},
}

func init() {
	verifyCmd.Flags().StringVar(&cfgRunfile, "runfile", "", "YAML runfile to validate")
}
