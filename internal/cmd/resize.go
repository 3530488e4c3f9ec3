package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
)

func newResizeCmd() *cobra.Command {
	var socket string
	var size string

	cmd := &cobra.Command{
		Use:   "resize --socket PATH --size WxH",
		Short: "Resize the session's terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cols, rows, err := parseSize(size)
			if err != nil {
				return err
			}
			if err := client.New(socket).Resize(cols, rows); err != nil {
				return err
			}
			fmt.Printf("Terminal resized to %dx%d\n", cols, rows)
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.Flags().StringVar(&size, "size", "", "New terminal size, e.g. 120x40 (required)")
	cmd.MarkFlagRequired("socket")
	cmd.MarkFlagRequired("size")

	return cmd
}
