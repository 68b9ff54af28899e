// Package server serves the pagecraft editor over SSH. Every session edits
// its own canvas.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strconv"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	bm "charm.land/wish/v2/bubbletea"
	lm "charm.land/wish/v2/logging"
	"github.com/Gaurav-Gosain/pagecraft/internal/app"
	"github.com/Gaurav-Gosain/pagecraft/internal/config"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"
)

const hostKeyRelPath = "pagecraft/ssh_host_ed25519"

// shutdownTimeout bounds how long open sessions may take to close.
const shutdownTimeout = 30 * time.Second

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	Host    string
	Port    string
	KeyPath string
	Version string

	// Keybinds is shared by every session. Nil means the defaults.
	Keybinds *config.KeybindRegistry
	Logger   *log.Logger
}

// Addr returns the listen address.
func (c *SSHServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, c.Port)
}

// ResolveKeyPath returns the configured host key path, or the XDG data
// file when none is set. Wish generates the key there on first start.
func (c *SSHServerConfig) ResolveKeyPath() (string, error) {
	if c.KeyPath != "" {
		return c.KeyPath, nil
	}
	path, err := xdg.DataFile(hostKeyRelPath)
	if err != nil {
		return "", fmt.Errorf("resolve host key path: %w", err)
	}
	return path, nil
}

// NewSSHServer builds the wish server without starting it.
func NewSSHServer(cfg *SSHServerConfig) (*ssh.Server, error) {
	if cfg.Logger == nil {
		cfg.Logger = logging.Discard()
	}
	if cfg.Port == "" {
		cfg.Port = strconv.Itoa(config.DefaultConfig().SSH.Port)
	}
	keyPath, err := cfg.ResolveKeyPath()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(keyPath), 0700); err != nil {
		return nil, fmt.Errorf("create host key directory: %w", err)
	}

	return wish.NewServer(
		wish.WithAddress(cfg.Addr()),
		wish.WithHostKeyPath(keyPath),
		wish.WithMiddleware(
			bm.Middleware(sessionHandler(cfg)),
			activeterm.Middleware(),
			lm.MiddlewareWithLogger(cfg.Logger),
		),
	)
}

// sessionHandler creates a fresh editor for each SSH session.
func sessionHandler(cfg *SSHServerConfig) bm.Handler {
	return func(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
		pty, _, _ := sess.Pty()
		logger := cfg.Logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())
		logger.Info("session started", "term", pty.Term, "width", pty.Window.Width, "height", pty.Window.Height)

		editor := NewSessionEditor(cfg, logger, pty.Window.Width, pty.Window.Height)
		return editor, []tea.ProgramOption{
			tea.WithFPS(config.NormalFPS),
			tea.WithFilter(app.FilterMouseMotion),
		}
	}
}

// NewSessionEditor returns the editor served to one SSH session. Copies go
// through OSC 52 since the server clipboard is not the user's.
func NewSessionEditor(cfg *SSHServerConfig, logger *log.Logger, width, height int) *app.Editor {
	return app.NewEditor(
		app.WithSize(width, height),
		app.WithOSC52(true),
		app.WithLogger(logger),
		app.WithKeybindRegistry(cfg.Keybinds),
	)
}

// StartSSHServer listens until ctx is cancelled, then shuts down gracefully.
func StartSSHServer(ctx context.Context, cfg *SSHServerConfig) error {
	s, err := NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("create SSH server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		cfg.Logger.Info("SSH server listening", "addr", cfg.Addr(), "version", cfg.Version)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	cfg.Logger.Info("stopping SSH server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
