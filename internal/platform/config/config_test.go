package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	apperrors "sankalp/internal/platform/errors"
)

func TestNewDerivesPathsFromDataDir(t *testing.T) {
	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.DBPath != filepath.Join(dir, "sankalp.db") {
		t.Fatalf("unexpected db path %s", cfg.DBPath)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Fatalf("expected 250ms poll interval, got %s", cfg.PollInterval)
	}
	if cfg.Store != StoreSQLite {
		t.Fatalf("expected sqlite store by default, got %s", cfg.Store)
	}
}

func TestNewRejectsEmptyDataDir(t *testing.T) {
	if _, err := New(" "); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestNewReadsYAMLFile(t *testing.T) {
	dir := t.TempDir()
	content := "store: file\npoll_interval: 500ms\nplayer_command: [ffplay, -nodisp, -autoexit, \"{file}\"]\n"
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.Store != StoreFile || cfg.PollInterval != 500*time.Millisecond {
		t.Fatalf("yaml values not applied: %+v", cfg)
	}
	if len(cfg.PlayerCommand) != 4 || cfg.PlayerCommand[3] != "{file}" {
		t.Fatalf("unexpected player command %v", cfg.PlayerCommand)
	}
}

func TestApplyEnvOverridesAndValidates(t *testing.T) {
	cfg := Defaults(t.TempDir())
	env := map[string]string{
		"SANKALP_STORE":          "file",
		"SANKALP_POLL_INTERVAL":  "100ms",
		"SANKALP_PLAYER_COMMAND": "mpv --no-video {file}",
	}
	lookup := func(k string) (string, bool) { v, ok := env[k]; return v, ok }
	if err := cfg.applyEnv(lookup); err != nil {
		t.Fatalf("apply env: %v", err)
	}
	if cfg.Store != StoreFile || cfg.PollInterval != 100*time.Millisecond || len(cfg.PlayerCommand) != 3 {
		t.Fatalf("env not applied: %+v", cfg)
	}

	env["SANKALP_POLL_INTERVAL"] = "soon"
	if err := cfg.applyEnv(lookup); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected invalid duration error, got %v", err)
	}

	bad := Defaults(t.TempDir())
	bad.Store = "postgres"
	if err := bad.Validate(); !errors.Is(err, apperrors.ErrInvalidInput) {
		t.Fatalf("expected unsupported store error, got %v", err)
	}
}
