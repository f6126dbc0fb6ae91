package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/aether-rift/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the Aether Rift SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection plays one run with a fresh seed. Finished runs are
recorded under the SSH user name, so all users share one history.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.aether-rift/host_key

Examples:
  rift serve                           # Listen on the configured address
  rift serve --ssh :2222               # Listen on port 2222
  rift serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh -p 2222 localhost`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	a, err := loadApp(cmd)
	if err != nil {
		return err
	}

	srvCfg := a.cfg.Server
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKey = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		srvCfg.IdleTimeout = flagIdleTimeout
	}

	var recorder tui.RunRecorder
	if store := a.openStore(); store != nil {
		defer store.Close()
		recorder = store
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     srvCfg.Address,
		HostKeyPath: srvCfg.HostKey,
		IdleTimeout: srvCfg.IdleTimeout,
		TickRate:    a.cfg.Runtime.FPS,
		HoldTicks:   a.cfg.HoldTicks(),
	}, recorder, a.logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a.logger.Info("press Ctrl+C to stop")
	return server.ListenAndServe(ctx)
}
