package cmd

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestConfigInitAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "timerctl", "config.yaml")

	out, err := execute(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("config init failed: %v", err)
	}
	if out != "wrote "+path+"\n" {
		t.Errorf("unexpected output %q", out)
	}

	out, err = execute(t, "--config", path, "config", "init")
	if err != nil {
		t.Fatalf("second config init failed: %v", err)
	}
	if !strings.HasSuffix(out, "already exists\n") {
		t.Errorf("unexpected output %q", out)
	}

	out, err = execute(t, "--config", path, "config", "get", "interval")
	if err != nil {
		t.Fatalf("config get failed: %v", err)
	}
	if out != "100ms\n" {
		t.Errorf("got %q, want %q", out, "100ms\n")
	}
}

func TestConfigGetMissingKey(t *testing.T) {
	_, err := execute(t, "config", "get", "nope")
	if err == nil {
		t.Fatal("Expected error for missing key, got nil")
	}
	if err.Error() != "key 'nope' not found in configuration" {
		t.Errorf("Unexpected error: %v", err)
	}
}
