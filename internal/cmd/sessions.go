package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/registry"
	"github.com/guibef/interminai-plus/internal/termstyle"
)

func newSessionsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List recorded sessions",
		Long:  "List sessions from the registry, probing each socket for liveness. Dead entries are pruned.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			alive, dead, err := registry.List()
			if err != nil {
				return err
			}
			if len(alive) == 0 && len(dead) == 0 {
				fmt.Println("no sessions")
				return nil
			}
			for _, e := range alive {
				fmt.Printf("%s %s  pid=%d  %s  %s\n", termstyle.GreenDot(), e.ID, e.Pid, e.Socket, e.Command)
			}
			for _, e := range dead {
				fmt.Printf("%s %s  (gone)  %s  %s\n", termstyle.RedDot(), e.ID, e.Socket, e.Command)
			}
			return nil
		},
	}

	return cmd
}
