package main

import (
	"github.com/nao1215/phoneinv/internal/export"
	"github.com/spf13/cobra"
)

// NewShowCmd creates the show command.
func NewShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <file>",
		Short: "Print an inventory file as a Markdown table",
		Long: `Show loads an inventory written by a previous scan and prints it as a
Markdown table. xlsx, csv, json and sqlite files can be read.

Examples:
  phoneinv show serials_and_macs.xlsx
  phoneinv show -f sqlite inventory.data`,
		Args: cobra.ExactArgs(1),
		RunE: runShowCmd,
	}

	cmd.Flags().StringP("format", "f", "",
		"Inventory format (default: from the file extension)")

	return cmd
}

func runShowCmd(cmd *cobra.Command, args []string) error {
	name, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}

	format, err := export.ResolveFormat(args[0], name)
	if err != nil {
		return err
	}

	inv, err := export.Load(args[0], format)
	if err != nil {
		return err
	}

	return export.WriteMarkdown(cmd.OutOrStdout(), inv)
}
