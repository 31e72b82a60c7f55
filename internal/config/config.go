// Package config loads the wslmanager settings from a TOML file and from the
// environment, and turns them into manager options.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/ubuntu/decorate"
	"github.com/ubuntu/wslmanager"
	"github.com/ubuntu/wslmanager/internal/backend/windows"
)

// Settle modes.
const (
	SettleModeFixed = "fixed"
	SettleModePoll  = "poll"
)

// envPrefix is the prefix of every environment variable read by Load.
const envPrefix = "WSLMANAGER_"

// Config holds the settings of the CLI.
type Config struct {
	StorageDir     string
	TempDir        string
	WSLExe         string
	CommandTimeout time.Duration
	SettleMode     string
	SettleDelay    time.Duration
	PollInterval   time.Duration
	PollTimeout    time.Duration
	Rollback       bool
	LockDir        string
}

type fileConfig struct {
	StorageDir     string `toml:"storage_dir"`
	TempDir        string `toml:"temp_dir"`
	WSLExe         string `toml:"wsl_exe"`
	CommandTimeout string `toml:"command_timeout"`
	SettleMode     string `toml:"settle_mode"`
	SettleDelay    string `toml:"settle_delay"`
	PollInterval   string `toml:"poll_interval"`
	PollTimeout    string `toml:"poll_timeout"`
	Rollback       bool   `toml:"rollback"`
	LockDir        string `toml:"lock_dir"`
}

// Default returns the settings used when nothing is configured.
func Default() Config {
	return Config{
		SettleMode:   SettleModeFixed,
		SettleDelay:  wslmanager.DefaultSettleDelay,
		PollInterval: time.Second,
		PollTimeout:  2 * time.Minute,
	}
}

// DefaultPath returns the path of the configuration file used when none is
// given explicitly.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "wslmanager", "config.toml"), nil
}

// Load reads the configuration file at path, if any, on top of the defaults.
// Environment variables named WSLMANAGER_<KEY> override the file.
func Load(path string) (cfg Config, err error) {
	defer decorate.OnError(&err, "could not load configuration")

	cfg = Default()

	if path != "" {
		if err := cfg.loadFile(path); err != nil {
			return Config{}, err
		}
	}

	if err := cfg.overrideFromEnv(os.LookupEnv); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// LoadDefault is Load on the default path. A missing file is not an error.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Load("")
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return Load("")
	}
	return Load(path)
}

func (c *Config) loadFile(path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return err
	}

	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("unknown key %q in %s", undecoded[0].String(), path)
	}

	if meta.IsDefined("storage_dir") {
		c.StorageDir = strings.TrimSpace(raw.StorageDir)
	}
	if meta.IsDefined("temp_dir") {
		c.TempDir = strings.TrimSpace(raw.TempDir)
	}
	if meta.IsDefined("wsl_exe") {
		c.WSLExe = strings.TrimSpace(raw.WSLExe)
	}
	if meta.IsDefined("settle_mode") {
		c.SettleMode = strings.TrimSpace(raw.SettleMode)
	}
	if meta.IsDefined("rollback") {
		c.Rollback = raw.Rollback
	}
	if meta.IsDefined("lock_dir") {
		c.LockDir = strings.TrimSpace(raw.LockDir)
	}

	durations := []struct {
		key string
		raw string
		dst *time.Duration
	}{
		{"command_timeout", raw.CommandTimeout, &c.CommandTimeout},
		{"settle_delay", raw.SettleDelay, &c.SettleDelay},
		{"poll_interval", raw.PollInterval, &c.PollInterval},
		{"poll_timeout", raw.PollTimeout, &c.PollTimeout},
	}
	for _, d := range durations {
		if !meta.IsDefined(d.key) {
			continue
		}
		v, err := time.ParseDuration(strings.TrimSpace(d.raw))
		if err != nil {
			return fmt.Errorf("parse %s: %w", d.key, err)
		}
		*d.dst = v
	}

	return nil
}

// overrideFromEnv applies the WSLMANAGER_* variables found by lookup.
func (c *Config) overrideFromEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"STORAGE_DIR": &c.StorageDir,
		"TEMP_DIR":    &c.TempDir,
		"WSL_EXE":     &c.WSLExe,
		"SETTLE_MODE": &c.SettleMode,
		"LOCK_DIR":    &c.LockDir,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok {
			*dst = strings.TrimSpace(v)
		}
	}

	durations := map[string]*time.Duration{
		"COMMAND_TIMEOUT": &c.CommandTimeout,
		"SETTLE_DELAY":    &c.SettleDelay,
		"POLL_INTERVAL":   &c.PollInterval,
		"POLL_TIMEOUT":    &c.PollTimeout,
	}
	for key, dst := range durations {
		v, ok := lookup(envPrefix + key)
		if !ok {
			continue
		}
		d, err := time.ParseDuration(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %s%s: %w", envPrefix, key, err)
		}
		*dst = d
	}

	if v, ok := lookup(envPrefix + "ROLLBACK"); ok {
		b, err := strconv.ParseBool(strings.TrimSpace(v))
		if err != nil {
			return fmt.Errorf("parse %sROLLBACK: %w", envPrefix, err)
		}
		c.Rollback = b
	}

	return nil
}

// Validate checks that the settings are consistent.
func (c Config) Validate() error {
	switch c.SettleMode {
	case SettleModeFixed, SettleModePoll:
	default:
		return fmt.Errorf("settle_mode must be %q or %q, not %q", SettleModeFixed, SettleModePoll, c.SettleMode)
	}

	for name, d := range map[string]time.Duration{
		"command_timeout": c.CommandTimeout,
		"settle_delay":    c.SettleDelay,
		"poll_interval":   c.PollInterval,
		"poll_timeout":    c.PollTimeout,
	} {
		if d < 0 {
			return fmt.Errorf("%s cannot be negative", name)
		}
	}

	if c.SettleMode == SettleModePoll && c.PollInterval == 0 {
		return errors.New("poll_interval must be positive when settle_mode is \"poll\"")
	}

	return nil
}

// Options converts the settings into manager options.
func (c Config) Options() []wslmanager.Option {
	opts := []wslmanager.Option{
		wslmanager.WithRollback(c.Rollback),
		wslmanager.WithCommandTimeout(c.CommandTimeout),
	}

	if c.WSLExe != "" {
		opts = append(opts, wslmanager.WithBackend(windows.Backend{Executable: c.WSLExe}))
	}
	if c.StorageDir != "" {
		opts = append(opts, wslmanager.WithStorageDir(c.StorageDir))
	}
	if c.TempDir != "" {
		opts = append(opts, wslmanager.WithTempDir(c.TempDir))
	}
	if c.LockDir != "" {
		opts = append(opts, wslmanager.WithLockDir(c.LockDir))
	}

	if c.SettleMode == SettleModePoll {
		opts = append(opts, wslmanager.WithSettle(wslmanager.SettlePoll(c.PollInterval, c.PollTimeout)))
	} else {
		opts = append(opts, wslmanager.WithSettle(wslmanager.SettleFixed(c.SettleDelay)))
	}

	return opts
}
