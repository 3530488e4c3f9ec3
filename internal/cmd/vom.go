package cmd

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"
	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/client"
	"github.com/guibef/interminai-plus/internal/vom"
)

// roleColors picks a display color per role family.
var roleColors = map[vom.Role]termenv.ANSIColor{
	vom.RoleButton:       termenv.ANSIGreen,
	vom.RoleInput:        termenv.ANSICyan,
	vom.RoleCheckbox:     termenv.ANSICyan,
	vom.RoleRadio:        termenv.ANSICyan,
	vom.RoleSelect:       termenv.ANSICyan,
	vom.RoleTab:          termenv.ANSIBlue,
	vom.RoleMenuItem:     termenv.ANSIBlue,
	vom.RoleLink:         termenv.ANSIBlue,
	vom.RoleErrorMessage: termenv.ANSIRed,
	vom.RoleStatus:       termenv.ANSIYellow,
	vom.RoleProgressBar:  termenv.ANSIYellow,
	vom.RoleDiffLine:     termenv.ANSIMagenta,
}

func newVomCmd() *cobra.Command {
	var socket string
	var noColor bool

	cmd := &cobra.Command{
		Use:   "vom --socket PATH [--no-color]",
		Short: "List the screen's UI components",
		Long:  "Analyze the rendered screen into classified UI components (buttons, inputs, menus, ...) and print one line per component.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			components, err := client.New(socket).Vom()
			if err != nil {
				return err
			}

			color := !noColor && isatty.IsTerminal(os.Stdout.Fd())
			for _, c := range components {
				role := string(c.Role)
				if color {
					if col, ok := roleColors[c.Role]; ok {
						role = termenv.String(role).Foreground(col).String()
					}
				}
				line := fmt.Sprintf("%-8s %-14s (x=%d,y=%d w=%d) %q",
					c.ID, role, c.Bounds.X, c.Bounds.Y, c.Bounds.Width, c.Text)
				if c.Selected {
					line += "  selected"
				}
				if c.Checked != nil {
					if *c.Checked {
						line += "  checked"
					} else {
						line += "  unchecked"
					}
				}
				fmt.Println(line)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (required)")
	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable role coloring")
	cmd.MarkFlagRequired("socket")

	return cmd
}
