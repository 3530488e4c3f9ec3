package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
	"github.com/guibef/interminai-plus/internal/textescape"
)

func newInputCmd() *cobra.Command {
	var socket string
	var text string

	cmd := &cobra.Command{
		Use:   "input --socket PATH [--text STR]",
		Short: "Send input to a running session",
		Long:  "Write bytes to the child's terminal. --text supports C-style escapes (\\n \\r \\t \\a \\b \\f \\v \\\\ \\e \\xHH); without it, stdin is forwarded verbatim.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var data string
			if cmd.Flags().Changed("text") {
				decoded, err := textescape.Unescape(text)
				if err != nil {
					return err
				}
				data = decoded
			} else {
				raw, err := io.ReadAll(os.Stdin)
				if err != nil {
					return fmt.Errorf("read stdin: %w", err)
				}
				data = string(raw)
			}

			return client.New(socket).Input(data)
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.Flags().StringVar(&text, "text", "", "Input text with escape sequences (alternative to stdin)")
	cmd.MarkFlagRequired("socket")

	return cmd
}
