package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command. Invoked with a subnet it runs a scan.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "phoneinv <cidr>",
		Short: "Collect MAC addresses and serial numbers of IP phones on a subnet",
		Long: `phoneinv probes every host of an IPv4 subnet over HTTPS, reads the MAC
address and serial number from the phone's status page, and writes the
results to serials_and_macs.xlsx next to the executable.

One line is printed per host:
  10.0.0.1      -   OK    device found
  10.0.0.2      - VOID    no response within the timeout
  10.0.0.3      - FAIL    responded, but the page has no device table

Examples:
  # Scan a /24 with the defaults
  phoneinv 192.168.0.0/24

  # Write CSV instead of Excel
  phoneinv -o inventory.csv 192.168.0.0/24

  # Pages that keep the device table in the third table
  phoneinv --layout table-index --table-index 2 10.1.0.0/24

  # Strictly sequential scan with a longer timeout
  phoneinv -w 1 -t 5s 10.2.0.0/28`,
		Version:       getVersion(),
		Args:          subnetArg,
		RunE:          runScanCmd,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().String("log-format", "text", "Log format: text or json")

	addScanFlags(cmd)

	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewShowCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// usageError marks errors that should be followed by the usage line.
type usageError struct {
	err error
}

func (e *usageError) Error() string { return e.err.Error() }
func (e *usageError) Unwrap() error { return e.err }

// subnetArg requires exactly one positional argument.
func subnetArg(_ *cobra.Command, args []string) error {
	if len(args) != 1 {
		return &usageError{err: fmt.Errorf("expected exactly one subnet argument, got %d", len(args))}
	}
	return nil
}

// Execute runs the root command and exits with status 1 on any error.
func Execute() {
	cmd := NewRootCmd()
	if err := cmd.Execute(); err != nil {
		reportError(cmd, err)
		os.Exit(1)
	}
}

// reportError prints err to stderr, followed by the usage line for
// argument errors.
func reportError(cmd *cobra.Command, err error) {
	fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)

	var ue *usageError
	if errors.As(err, &ue) {
		fmt.Fprintln(cmd.ErrOrStderr(), "Usage:", cmd.UseLine())
	}
}
