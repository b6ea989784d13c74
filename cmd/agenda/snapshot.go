package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func (c *cli) snapshotCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Back up or restore the whole state as JSON",
	}
	cmd.AddCommand(c.snapshotExportCmd(), c.snapshotImportCmd())
	return cmd
}

func (c *cli) snapshotExportCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the state as JSON to stdout or a file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if output == "" {
				return c.app.snapshots.Export(cmd.OutOrStdout())
			}
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			if err := c.app.snapshots.Export(f); err != nil {
				_ = f.Close()
				return err
			}
			return f.Close()
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "Output file")
	return cmd
}

func (c *cli) snapshotImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import FILE",
		Short: "Replace the state with a JSON snapshot (\"-\" reads stdin)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			actor, err := c.actor(cmd)
			if err != nil {
				return err
			}
			var r io.Reader = cmd.InOrStdin()
			if args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			if err := c.app.snapshots.Import(cmd.Context(), actor, r); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "snapshot imported")
			return nil
		},
	}
}
