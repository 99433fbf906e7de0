package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/muesli/termenv"

	"github.com/vovakirdan/tui-2048/internal/config"
	"github.com/vovakirdan/tui-2048/internal/core"
	"github.com/vovakirdan/tui-2048/internal/highscore"
	"github.com/vovakirdan/tui-2048/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":2048").
	Address string

	// HostKeyPath is the path to the host key file.
	// A missing key is generated there. Empty means ~/.t2048/host_key.
	HostKeyPath string

	// DBPath is the path to the game history database.
	DBPath string

	// HighScorePath is the high score file shared by all sessions.
	HighScorePath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Keys are the bindings offered to every session.
	Keys config.KeysConfig

	// Logger receives server and session events. Nil logs to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	def := config.Default()
	timeout, _ := def.SSH.Timeout()
	return SSHServerConfig{
		Address:       def.SSH.Address,
		DBPath:        def.Database,
		HighScorePath: def.HighScoreFile,
		IdleTimeout:   timeout,
		Keys:          def.Keys,
	}
}

// SSHServer wraps a Wish SSH server that hands every connection its own
// board.
type SSHServer struct {
	config    SSHServerConfig
	server    *ssh.Server
	store     *storage.Store
	highScore *highscore.File
	keys      KeyMap
	logger    *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "t2048-ssh",
		})
	}

	// Open storage
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open game database", "error", err)
		store = nil // Continue without history
	}

	srv := &SSHServer{
		config:    cfg,
		store:     store,
		highScore: highscore.New(cfg.HighScorePath, logger),
		keys:      NewKeyMap(cfg.Keys),
		logger:    logger,
	}

	// Resolve host key path
	hostKeyPath := config.ExpandPath(cfg.HostKeyPath)
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".t2048", "host_key")
	}

	// Ensure host key directory exists
	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithMiddleware(
			bubbletea.MiddlewareWithProgramHandler(srv.programHandler, termenv.ANSI256),
			srv.loggingMiddleware,
		),
	}
	if cfg.IdleTimeout > 0 {
		opts = append(opts, wish.WithIdleTimeout(cfg.IdleTimeout))
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	// Each session renders with its own color profile
	renderer := bubbletea.MakeRenderer(sshSession)
	opts := s.sessionOptions(sshSession.User(), pty.Window.Width, pty.Window.Height, renderer)

	return NewSessionModel(opts), []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// programHandler builds the per-session program. The exit filter stores the
// board when the client disconnects mid-game.
func (s *SSHServer) programHandler(sshSession ssh.Session) *tea.Program {
	model, opts := s.teaHandler(sshSession)
	if model == nil {
		return nil
	}
	opts = append(opts, bubbletea.MakeOptions(sshSession)...)
	opts = append(opts, tea.WithFilter(closeOnExit))
	return tea.NewProgram(model, opts...)
}

// sessionOptions builds the model options shared by every connection.
func (s *SSHServer) sessionOptions(user string, width, height int, renderer *lipgloss.Renderer) Options {
	opts := Options{
		Keys:       s.keys,
		Styles:     NewStyles(renderer),
		HighScores: s.highScore,
		Logger:     s.logger.With("user", user),
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Seed:    time.Now().UnixNano(),
		},
	}
	if s.store != nil {
		opts.Games = s.store
		opts.Scores = s.store
	}
	return opts
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "highscore", s.highScore.Path())

	// Setup signal handling for graceful shutdown
	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case <-done:
		s.logger.Info("shutting down...")
		return s.Shutdown()
	case err := <-errCh:
		s.logger.Error("server error", "error", err)
		s.closeStore()
		return err
	}
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.closeStore()
	return err
}

func (s *SSHServer) closeStore() {
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
