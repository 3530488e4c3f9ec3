package cmd

import (
	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
)

func newKillCmd() *cobra.Command {
	var socket string
	var signal string

	cmd := &cobra.Command{
		Use:   "kill --socket PATH [--signal SIGNAME|NUM]",
		Short: "Send a signal to the session's child",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := client.New(socket).Kill(signal)
			return err
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.Flags().StringVar(&signal, "signal", "SIGTERM", "Signal name (SIGTERM, INT, ...) or number (9, 15)")
	cmd.MarkFlagRequired("socket")

	return cmd
}
