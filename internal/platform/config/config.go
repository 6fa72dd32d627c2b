package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	apperrors "sankalp/internal/platform/errors"
)

const (
	FileName  = "sankalp.yaml"
	EnvPrefix = "SANKALP_"

	StoreSQLite = "sqlite"
	StoreFile   = "file"

	NotifierDesktop = "desktop"
	NotifierLog     = "log"
)

type Config struct {
	DataDir       string        `yaml:"-"`
	DBPath        string        `yaml:"db_path"`
	StatePath     string        `yaml:"state_path"`
	LogPath       string        `yaml:"log_path"`
	Store         string        `yaml:"store"`
	AudioPath     string        `yaml:"audio_path"`
	TrackDuration time.Duration `yaml:"track_duration"`
	PlayerCommand []string      `yaml:"player_command"`
	PollInterval  time.Duration `yaml:"poll_interval"`
	LogLevel      string        `yaml:"log_level"`
	LogFormat     string        `yaml:"log_format"`
	MetricsAddr   string        `yaml:"metrics_addr"`
	Notifier      string        `yaml:"notifier"`
}

// New builds the configuration for dataDir: derived defaults, then the
// optional sankalp.yaml in dataDir, then SANKALP_* environment variables
// (including those from a .env file in dataDir or the working directory).
func New(dataDir string) (Config, error) {
	if strings.TrimSpace(dataDir) == "" {
		return Config{}, fmt.Errorf("%w: data dir is required", apperrors.ErrInvalidInput)
	}
	cfg := Defaults(dataDir)

	if err := cfg.loadFile(filepath.Join(dataDir, FileName)); err != nil {
		return Config{}, err
	}
	loadDotEnv(filepath.Join(dataDir, ".env"), ".env")
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func Defaults(dataDir string) Config {
	return Config{
		DataDir:       dataDir,
		DBPath:        filepath.Join(dataDir, "sankalp.db"),
		StatePath:     filepath.Join(dataDir, "state"),
		LogPath:       filepath.Join(dataDir, "sankalp.log"),
		Store:         StoreSQLite,
		AudioPath:     filepath.Join(dataDir, "audio", "Shree_Hanuman_Chalisa.mp3"),
		TrackDuration: 9*time.Minute + 40*time.Second,
		PollInterval:  250 * time.Millisecond,
		LogLevel:      "info",
		LogFormat:     "console",
		Notifier:      NotifierDesktop,
	}
}

// DefaultDataDir follows XDG_DATA_HOME, falling back to ~/.local/share.
func DefaultDataDir() string {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, "sankalp")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".sankalp"
	}
	return filepath.Join(home, ".local", "share", "sankalp")
}

func (c *Config) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(raw, c); err != nil {
		return fmt.Errorf("%w: decode %s: %v", apperrors.ErrInvalidInput, path, err)
	}
	return nil
}

// loadDotEnv never overrides variables already present in the process.
func loadDotEnv(paths ...string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		_ = godotenv.Load(p)
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(EnvPrefix + name); ok && strings.TrimSpace(v) != "" {
			*dst = strings.TrimSpace(v)
		}
	}
	dur := func(name string, dst *time.Duration) error {
		v, ok := lookup(EnvPrefix + name)
		if !ok || strings.TrimSpace(v) == "" {
			return nil
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", apperrors.ErrInvalidInput, EnvPrefix, name, err)
		}
		*dst = d
		return nil
	}

	str("DB_PATH", &c.DBPath)
	str("STATE_PATH", &c.StatePath)
	str("LOG_PATH", &c.LogPath)
	str("STORE", &c.Store)
	str("AUDIO_PATH", &c.AudioPath)
	str("LOG_LEVEL", &c.LogLevel)
	str("LOG_FORMAT", &c.LogFormat)
	str("METRICS_ADDR", &c.MetricsAddr)
	str("NOTIFIER", &c.Notifier)
	if v, ok := lookup(EnvPrefix + "PLAYER_COMMAND"); ok && strings.TrimSpace(v) != "" {
		c.PlayerCommand = strings.Fields(v)
	}
	if err := dur("TRACK_DURATION", &c.TrackDuration); err != nil {
		return err
	}
	return dur("POLL_INTERVAL", &c.PollInterval)
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite, StoreFile:
	default:
		return fmt.Errorf("%w: unsupported store %q", apperrors.ErrInvalidInput, c.Store)
	}
	switch c.Notifier {
	case NotifierDesktop, NotifierLog:
	default:
		return fmt.Errorf("%w: unsupported notifier %q", apperrors.ErrInvalidInput, c.Notifier)
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("%w: poll interval must be positive", apperrors.ErrInvalidInput)
	}
	if c.TrackDuration <= 0 {
		return fmt.Errorf("%w: track duration must be positive", apperrors.ErrInvalidInput)
	}
	return nil
}
