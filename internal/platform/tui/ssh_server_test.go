package tui

import (
	"path/filepath"
	"testing"
	"time"
)

func TestNewSSHServerLoadsDerbyConfig(t *testing.T) {
	dir := t.TempDir()
	cfg := SSHServerConfig{
		Address:     ":0",
		HostKeyPath: filepath.Join(dir, "host_key"),
		DBPath:      filepath.Join(dir, "derby.db"),
		IdleTimeout: time.Minute,
	}

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}

	if srv.derby == nil {
		t.Fatal("Server should hold the loaded derby config")
	}
	if _, _, err := srv.derby.Build(); err != nil {
		t.Errorf("Loaded config should build a race: %v", err)
	}
	if srv.Addr() != ":0" {
		t.Errorf("Addr = %q, want %q", srv.Addr(), ":0")
	}

	if err := srv.Shutdown(); err != nil {
		t.Errorf("Shutdown failed: %v", err)
	}
}
