package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-2048/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the 2048 SSH server",
	Long: `Start an SSH server that allows users to connect and play.

Each SSH connection gets its own board. The high score file and game
history are shared by all users.

Host key handling:
  - Uses --host-key, or ssh.host_key from the config (default ~/.t2048/host_key)
  - A missing key file is generated on first start

Examples:
  t2048 serve                           # Listen on the configured address
  t2048 serve --ssh :2222               # Listen on port 2222
  t2048 serve --host-key ./my_host_key  # Use specific host key
  t2048 serve --idle-timeout 10m        # Drop idle players after 10 minutes

Users can connect with:
  ssh localhost -p 2048`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, overrides config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (overrides config)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting (overrides config)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(cfg.Log, os.Stderr, "t2048-ssh")
	if err != nil {
		return err
	}
	defer closeLog()

	idle, err := cfg.SSH.Timeout()
	if err != nil {
		return err
	}

	serverCfg := tui.SSHServerConfig{
		Address:       cfg.SSH.Address,
		HostKeyPath:   cfg.SSH.HostKey,
		DBPath:        cfg.Database,
		HighScorePath: cfg.HighScoreFile,
		IdleTimeout:   idle,
		Keys:          cfg.Keys,
		Logger:        logger,
	}
	if flagSSHAddr != "" {
		serverCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		serverCfg.HostKeyPath = flagHostKey
	}
	if cmd.Flags().Changed("idle-timeout") {
		serverCfg.IdleTimeout = flagIdleTimeout
	}

	server, err := tui.NewSSHServer(serverCfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting 2048 SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	return server.ListenAndServe()
}
