package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/guibef/interminai-plus/internal/activitylog"
	"github.com/guibef/interminai-plus/internal/config"
	"github.com/guibef/interminai-plus/internal/session"
	"github.com/guibef/interminai-plus/internal/vom"
)

// newDaemonCmd is the hidden subcommand `start` re-execs into when
// daemonizing. It runs the session loop in the foreground of the detached
// process.
func newDaemonCmd() *cobra.Command {
	var socket string
	var size string
	var autoGenerated bool
	var sessionID string

	cmd := &cobra.Command{
		Use:    "_daemon",
		Hidden: true,
		Args:   cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if socket == "" {
				return fmt.Errorf("--socket is required")
			}
			cols, rows, err := parseSize(size)
			if err != nil {
				return err
			}
			return runDaemon(socket, autoGenerated, sessionID, rows, cols, args)
		},
	}

	cmd.Flags().StringVar(&socket, "socket", "", "Unix socket path")
	cmd.Flags().StringVar(&size, "size", "80x24", "Terminal size WxH")
	cmd.Flags().BoolVar(&autoGenerated, "auto-generated", false, "Socket path was auto-generated; clean it up on shutdown")
	cmd.Flags().StringVar(&sessionID, "session-id", "", "Registry session id")

	return cmd
}

// runDaemon resolves config-driven options and enters the session loop.
// Shared by _daemon and start --no-daemon.
func runDaemon(socketPath string, autoGenerated bool, sessionID string, rows, cols uint16, argv []string) error {
	vomOpts := vom.DefaultOptions()
	logPath := ""
	if cfg, err := config.Load(); err == nil {
		if cfg.TabRowThreshold != nil {
			vomOpts.TabRowThreshold = *cfg.TabRowThreshold
		}
		logPath = cfg.ActivityLog
	}

	return session.Run(session.Options{
		SocketPath:    socketPath,
		AutoGenerated: autoGenerated,
		Rows:          rows,
		Cols:          cols,
		Argv:          argv,
		SessionID:     sessionID,
		Log:           activitylog.New(logPath, sessionID),
		VomOptions:    vomOpts,
	})
}
