package server

import (
	"path/filepath"
	"testing"

	"github.com/Gaurav-Gosain/pagecraft/internal/catalog"
	"github.com/Gaurav-Gosain/pagecraft/internal/logging"
)

func TestAddr(t *testing.T) {
	tests := []struct {
		host, port string
		want       string
	}{
		{"localhost", "2222", "localhost:2222"},
		{"::1", "22", "[::1]:22"},
		{"", "2222", ":2222"},
	}
	for _, tt := range tests {
		cfg := &SSHServerConfig{Host: tt.host, Port: tt.port}
		if got := cfg.Addr(); got != tt.want {
			t.Errorf("Addr() = %q, want %q", got, tt.want)
		}
	}
}

func TestResolveKeyPath(t *testing.T) {
	cfg := &SSHServerConfig{KeyPath: "/etc/pagecraft/key"}
	if got, err := cfg.ResolveKeyPath(); err != nil || got != "/etc/pagecraft/key" {
		t.Errorf("ResolveKeyPath() = %q, %v", got, err)
	}
}

func TestNewSSHServer(t *testing.T) {
	cfg := &SSHServerConfig{
		Host:    "127.0.0.1",
		KeyPath: filepath.Join(t.TempDir(), "keys", "host_ed25519"),
	}
	s, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer() error = %v", err)
	}
	if cfg.Port != "2222" {
		t.Errorf("Port = %q, want the default 2222", cfg.Port)
	}
	if s.Addr != "127.0.0.1:2222" {
		t.Errorf("Addr = %q", s.Addr)
	}
}

func TestSessionEditorsAreIsolated(t *testing.T) {
	cfg := &SSHServerConfig{}
	a := NewSessionEditor(cfg, logging.Discard(), 100, 30)
	b := NewSessionEditor(cfg, logging.Discard(), 80, 24)

	if !a.UseOSC52 || !b.UseOSC52 {
		t.Error("SSH sessions must copy through OSC 52")
	}
	if a.Width != 100 || a.Height != 30 {
		t.Errorf("size = %dx%d, want 100x30", a.Width, a.Height)
	}

	a.AddSection()
	a.AddKind(catalog.Hero)
	if a.Canvas().Len() != 1 || b.Canvas().Len() != 0 {
		t.Errorf("sessions share a canvas: %d and %d components", a.Canvas().Len(), b.Canvas().Len())
	}
}
