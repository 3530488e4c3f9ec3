package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
)

func newOutputCmd() *cobra.Command {
	var socket string
	var format string
	var cursor string

	cmd := &cobra.Command{
		Use:   "output --socket PATH [--format ascii|ansi|json] [--cursor none|inverse|print|both]",
		Short: "Print the session's rendered screen",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			switch format {
			case "ascii", "ansi", "json":
			default:
				return fmt.Errorf("invalid format %q (ascii, ansi, or json)", format)
			}
			switch cursor {
			case "none", "inverse", "print", "both":
			default:
				return fmt.Errorf("invalid cursor mode %q (none, inverse, print, or both)", cursor)
			}

			out, err := client.New(socket).Output(format)
			if err != nil {
				return err
			}

			if format == "json" {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			if cursor == "print" || cursor == "both" {
				fmt.Println(client.FormatCursorLine(out.Cursor.Row, out.Cursor.Col))
			}

			screen := out.Screen
			// Inverse wrapping indexes plain characters; the ansi render
			// carries its own styling and is printed untouched.
			if (cursor == "inverse" || cursor == "both") && format == "ascii" {
				screen = client.ApplyCursorInverse(screen, out.Cursor.Row, out.Cursor.Col)
			}
			fmt.Print(screen)
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.Flags().StringVar(&format, "format", "ascii", "Output format (ascii, ansi, or json)")
	cmd.Flags().StringVar(&cursor, "cursor", "none", "Cursor display mode (none, inverse, print, or both)")
	cmd.MarkFlagRequired("socket")

	return cmd
}
