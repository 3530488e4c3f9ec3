package cmd

import (
	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
)

func newStopCmd() *cobra.Command {
	var socket string

	cmd := &cobra.Command{
		Use:   "stop --socket PATH",
		Short: "Terminate the child and shut the session daemon down",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.New(socket).Stop()
			return err
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.MarkFlagRequired("socket")

	return cmd
}
