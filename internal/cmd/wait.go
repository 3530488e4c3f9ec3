package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
)

func newWaitCmd() *cobra.Command {
	var socket string

	cmd := &cobra.Command{
		Use:   "wait --socket PATH",
		Short: "Block until the session's child exits, then print its exit code",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := client.New(socket).Wait()
			if err != nil {
				return err
			}
			fmt.Println(code)
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.MarkFlagRequired("socket")

	return cmd
}
