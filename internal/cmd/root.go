// Package cmd wires the interminai CLI verbs.
package cmd

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command with all subcommands.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "interminai",
		Short: "An interactive terminal for automated agents",
		Long:  "interminai runs terminal applications on a PTY behind a Unix-socket daemon, so agents can inject keystrokes, read the rendered screen, and inspect UI structure.",
	}

	rootCmd.AddCommand(
		newStartCmd(),
		newInputCmd(),
		newOutputCmd(),
		newRunningCmd(),
		newWaitCmd(),
		newKillCmd(),
		newStopCmd(),
		newResizeCmd(),
		newVomCmd(),
		newSessionsCmd(),
		newDaemonCmd(),
	)

	return rootCmd
}
