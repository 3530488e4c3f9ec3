package cmd

import (
	"fmt"
	"os"

	"github.com/google/shlex"
	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/daemonize"
	"github.com/guibef/interminai-plus/internal/registry"
	"github.com/guibef/interminai-plus/internal/socketpath"
)

func newStartCmd() *cobra.Command {
	var socket string
	var size string
	var noDaemon bool
	var command string

	cmd := &cobra.Command{
		Use:   "start [--socket PATH] [--size WxH] [--no-daemon] -- CMD [ARGS...]",
		Short: "Start a new interactive terminal session",
		Long:  "Start a child process on a PTY behind a session daemon. The command is given after -- or as a single shell-style string via --command.",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			argv := args
			if command != "" {
				if len(args) > 0 {
					return fmt.Errorf("give the command either after -- or via --command, not both")
				}
				split, err := shlex.Split(command)
				if err != nil {
					return fmt.Errorf("parse --command: %w", err)
				}
				argv = split
			}
			if len(argv) == 0 {
				return fmt.Errorf("command is required (after -- or via --command)")
			}

			cols, rows, err := resolveSize(size)
			if err != nil {
				return err
			}

			autoGenerated := socket == ""
			socketPath := socket
			if autoGenerated {
				socketPath, err = socketpath.AutoGenerate()
				if err != nil {
					return err
				}
			}

			sessionID := registry.NewID()

			if noDaemon {
				fmt.Printf("Socket: %s\n", socketPath)
				fmt.Printf("PID: %d\n", os.Getpid())
				fmt.Printf("Auto-generated: %t\n", autoGenerated)
				return runDaemon(socketPath, autoGenerated, sessionID, rows, cols, argv)
			}

			daemonArgs := []string{
				"_daemon",
				"--socket", socketPath,
				"--size", fmt.Sprintf("%dx%d", cols, rows),
				"--session-id", sessionID,
			}
			if autoGenerated {
				daemonArgs = append(daemonArgs, "--auto-generated")
			}
			daemonArgs = append(daemonArgs, "--")
			daemonArgs = append(daemonArgs, argv...)

			pid, err := daemonize.Spawn(daemonArgs, socketPath)
			if err != nil {
				return err
			}

			fmt.Printf("Socket: %s\n", socketPath)
			fmt.Printf("PID: %d\n", pid)
			fmt.Printf("Auto-generated: %t\n", autoGenerated)
			return nil
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path (auto-generated if not specified)")
	cmd.Flags().StringVar(&size, "size", "", "Terminal size, e.g. 80x24 (defaults to the invoking terminal)")
	cmd.Flags().BoolVar(&noDaemon, "no-daemon", false, "Run in the foreground instead of daemonizing")
	cmd.Flags().StringVar(&command, "command", "", "Command as one shell-style string (alternative to -- CMD ARGS)")

	return cmd
}
