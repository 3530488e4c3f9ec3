package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
)

func newRunningCmd() *cobra.Command {
	var socket string

	cmd := &cobra.Command{
		Use:     "running --socket PATH",
		Aliases: []string{"status"},
		Short:   "Check whether the session's child is still running",
		Long:    "Exits 0 if the child is running. Otherwise prints the exit code and exits 1.",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rd, err := client.New(socket).Running()
			if err != nil {
				return err
			}
			if rd.Running {
				return nil
			}
			if rd.ExitCode != nil {
				fmt.Printf("Exit code: %d\n", *rd.ExitCode)
			}
			os.Exit(1)
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.MarkFlagRequired("socket")

	return cmd
}
