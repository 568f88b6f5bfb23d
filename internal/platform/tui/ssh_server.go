package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/hexfit/internal/core"
	"github.com/vovakirdan/hexfit/internal/storage"
)

// SSHServerConfig configures the remote play server.
type SSHServerConfig struct {
	Address string // host:port

	// HostKeyPath defaults to ~/.hexfit/host_key, generated on first start.
	HostKeyPath string

	DBPath      string
	IdleTimeout time.Duration
	TickRate    int

	// Theme is used by players without a stored choice.
	Theme string

	Logger *log.Logger
}

// DefaultSSHServerConfig returns the config used by `hexfit serve`.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.hexfit/scores.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    core.DefaultConfig().TickRate,
		Theme:       DefaultThemeName,
	}
}

const shutdownTimeout = 10 * time.Second

// SSHServer gives every SSH connection its own session model. All
// connections share one score store, which stays open until the last
// session has ended.
type SSHServer struct {
	cfg      SSHServerConfig
	server   *ssh.Server
	store    *storage.Store
	logger   *log.Logger
	active   atomic.Int64
	sessions sync.WaitGroup
}

// NewSSHServer opens the store and prepares the wish server. A store that
// cannot be opened only disables persistence.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	if cfg.Logger == nil {
		cfg.Logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "hexfit-ssh",
		})
	}
	s := &SSHServer{cfg: cfg, logger: cfg.Logger}

	keyPath, err := resolveHostKey(cfg.HostKeyPath)
	if err != nil {
		return nil, err
	}

	if s.store, err = storage.Open(cfg.DBPath); err != nil {
		s.logger.Warn("scores will not be saved", "path", cfg.DBPath, "error", err)
		s.store = nil
	}

	s.server, err = wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(keyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(s.newSession),
			s.trackSession,
		),
	)
	if err != nil {
		s.closeStore()
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}
	return s, nil
}

// resolveHostKey returns the key path and makes sure its directory exists.
func resolveHostKey(path string) (string, error) {
	if path == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot get home directory: %w", err)
		}
		path = filepath.Join(home, ".hexfit", "host_key")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return "", fmt.Errorf("cannot create host key directory: %w", err)
	}
	return path, nil
}

// newSession builds the model for one connection. Preferences are loaded
// per connection, and the bell rings on the connection itself.
func (s *SSHServer) newSession(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sess.Pty()
	if !ok {
		wish.Fatalln(sess, "hexfit needs a terminal: connect with ssh -t")
		return nil, nil
	}

	cfg := core.RuntimeConfig{
		ScreenW:  pty.Window.Width,
		ScreenH:  pty.Window.Height,
		TickRate: s.cfg.TickRate,
		Seed:     time.Now().UnixNano(),
	}
	return NewSessionModel(cfg, GameOptions{
		Store:  s.store,
		Prefs:  LoadPreferences(s.store, sess.User(), s.cfg.Theme),
		Bell:   sess,
		Logger: s.logger.With("user", sess.User()),
	}), []tea.ProgramOption{tea.WithAltScreen()}
}

// trackSession logs connects and disconnects and counts live sessions.
func (s *SSHServer) trackSession(next ssh.Handler) ssh.Handler {
	return func(sess ssh.Session) {
		s.sessions.Add(1)
		defer s.sessions.Done()

		start := time.Now()
		n := s.active.Add(1)
		s.logger.Info("session started",
			"user", sess.User(),
			"remote", sess.RemoteAddr().String(),
			"active", n,
		)
		defer func() {
			s.logger.Info("session ended",
				"user", sess.User(),
				"duration", time.Since(start).Round(time.Second),
				"active", s.active.Add(-1),
			)
		}()
		next(sess)
	}
}

// ActiveSessions reports the number of connected players.
func (s *SSHServer) ActiveSessions() int {
	return int(s.active.Load())
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting SSH server", "address", s.cfg.Address)
		errCh <- s.server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		s.releaseStore(shutdownTimeout)
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down", "active", s.ActiveSessions())
	return s.Shutdown()
}

// Shutdown stops accepting connections and waits up to shutdownTimeout for
// sessions to end. Connections still open after that are closed. The store
// is closed once every session handler has returned.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if errors.Is(err, context.DeadlineExceeded) {
		s.logger.Warn("closing remaining sessions", "active", s.ActiveSessions())
		err = s.server.Close()
	}
	s.releaseStore(shutdownTimeout)
	return err
}

// releaseStore closes the store after all sessions have ended, waiting at
// most wait. It reports whether the store was closed; on timeout the store
// is left open for the sessions still using it.
func (s *SSHServer) releaseStore(wait time.Duration) bool {
	done := make(chan struct{})
	go func() {
		s.sessions.Wait()
		close(done)
	}()

	select {
	case <-done:
		s.closeStore()
		return true
	case <-time.After(wait):
		s.logger.Warn("sessions still running, leaving scores database open", "active", s.ActiveSessions())
		return false
	}
}

func (s *SSHServer) closeStore() {
	if s.store == nil {
		return
	}
	if err := s.store.Close(); err != nil {
		s.logger.Warn("cannot close scores database", "error", err)
	}
	s.store = nil
}

// Addr returns the configured listen address.
func (s *SSHServer) Addr() string {
	return s.cfg.Address
}
