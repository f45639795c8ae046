package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// ErrInvalid is wrapped by every Validate failure.
var ErrInvalid = errors.New("invalid config")

// Config holds all client configuration. Values are loaded once and passed
// around by value; a reload produces a new Config rather than mutating one.
type Config struct {
	API     APIConfig     `yaml:"api"`
	Spin    SpinConfig    `yaml:"spin"`
	Display DisplayConfig `yaml:"display"`
	Logging LoggingConfig `yaml:"logging"`
	Store   StoreConfig   `yaml:"store"`
}

// APIConfig points the client at the picker backend.
type APIConfig struct {
	BaseURL string        `yaml:"base_url"`
	Token   string        `yaml:"token"`
	Timeout time.Duration `yaml:"timeout"` // per-request; also bounds outcome resolution
}

// SpinConfig tunes the spin animation.
type SpinConfig struct {
	Variant        string        `yaml:"variant"` // "cycle" or "wheel"
	Duration       time.Duration `yaml:"duration"`
	SettleDuration time.Duration `yaml:"settle_duration"`
	TickInterval   time.Duration `yaml:"tick_interval"`
	InitialRate    float64       `yaml:"initial_rate"`
	FloorRate      float64       `yaml:"floor_rate"`
	ExtraSpinsMin  int           `yaml:"extra_spins_min"`
	ExtraSpinsMax  int           `yaml:"extra_spins_max"` // exclusive
	RetryAttempts  int           `yaml:"retry_attempts"`
}

// LoggingConfig configures the file logger.
type LoggingConfig struct {
	Level    string         `yaml:"level"`
	Format   string         `yaml:"format"` // json or console
	Output   string         `yaml:"output"` // directory
	Rotation RotationConfig `yaml:"rotation"`
}

// RotationConfig configures log file rotation.
type RotationConfig struct {
	MaxSize    int  `yaml:"max_size"` // MB
	MaxAge     int  `yaml:"max_age"`  // days
	MaxBackups int  `yaml:"max_backups"`
	Compress   bool `yaml:"compress"`
}

// StoreConfig locates the local outcome log.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// Default returns a Config with sensible defaults.
func Default() Config {
	return Config{
		API: APIConfig{
			BaseURL: "http://localhost:8080/api",
			Timeout: 10 * time.Second,
		},
		Spin:    DefaultSpin("cycle"),
		Display: DefaultDisplay(),
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Output: defaultStateDir("log"),
			Rotation: RotationConfig{
				MaxSize:    100,
				MaxAge:     30,
				MaxBackups: 10,
				Compress:   true,
			},
		},
	}
}

// DefaultSpin returns the spin defaults for a variant. Unknown variants get
// the cycle defaults.
func DefaultSpin(variant string) SpinConfig {
	sc := SpinConfig{
		Variant:       "cycle",
		Duration:      3000 * time.Millisecond,
		TickInterval:  50 * time.Millisecond,
		InitialRate:   10,
		FloorRate:     2,
		ExtraSpinsMin: 5,
		ExtraSpinsMax: 8,
		RetryAttempts: 1,
	}
	if variant == "wheel" {
		sc.Variant = "wheel"
		sc.Duration = 2000 * time.Millisecond
		sc.SettleDuration = 3000 * time.Millisecond
	}
	return sc
}

// WithVariant switches s to variant, taking that variant's default
// durations. Rates, tick interval, extra spins and retries are kept.
// Unknown variants are set as given and rejected by Validate.
func (s SpinConfig) WithVariant(variant string) SpinConfig {
	if s.Variant == variant {
		return s
	}
	d := DefaultSpin(variant)
	s.Variant = variant
	s.Duration = d.Duration
	s.SettleDuration = d.SettleDuration
	return s
}

// Load reads the YAML file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg, err := loadFile(path)
	if err != nil {
		return Config{}, err
	}

	applyEnv(&cfg)

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// loadFile reads the YAML file at path on top of the defaults, without
// environment overrides.
func loadFile(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := decode(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse %s: %w", path, err)
			}
		case errors.Is(err, os.ErrNotExist):
		default:
			return Config{}, fmt.Errorf("read %s: %w", path, err)
		}
	}
	return cfg, nil
}

// decode unmarshals data into cfg. When the file picks a variant without
// spelling out its timings, the variant's defaults fill them in.
func decode(data []byte, cfg *Config) error {
	var head struct {
		Spin struct {
			Variant string `yaml:"variant"`
		} `yaml:"spin"`
	}
	if err := yaml.Unmarshal(data, &head); err != nil {
		return err
	}
	if head.Spin.Variant != "" {
		cfg.Spin = cfg.Spin.WithVariant(head.Spin.Variant)
	}
	return yaml.Unmarshal(data, cfg)
}

// applyEnv overrides config values from WTS_* environment variables.
func applyEnv(cfg *Config) {
	if v := os.Getenv("WTS_API_URL"); v != "" {
		cfg.API.BaseURL = v
	}
	if v := os.Getenv("WTS_TOKEN"); v != "" {
		cfg.API.Token = v
	}
	if v := os.Getenv("WTS_DB"); v != "" {
		cfg.Store.Path = v
	}
	if v := os.Getenv("WTS_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WTS_VARIANT"); v != "" {
		cfg.Spin = cfg.Spin.WithVariant(v)
	}
	if v := os.Getenv("WTS_CANDIDATE_TERM"); v != "" {
		cfg.Display.CandidateTerm = v
	}
}

// Validate checks the config for values the client cannot run with.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("%w: api.base_url is required", ErrInvalid)
	}
	if c.API.Timeout <= 0 {
		return fmt.Errorf("%w: api.timeout must be positive", ErrInvalid)
	}

	s := c.Spin
	switch s.Variant {
	case "cycle", "wheel":
	default:
		return fmt.Errorf("%w: unknown spin.variant %q", ErrInvalid, s.Variant)
	}
	if s.Duration <= 0 {
		return fmt.Errorf("%w: spin.duration must be positive", ErrInvalid)
	}
	if s.SettleDuration < 0 {
		return fmt.Errorf("%w: spin.settle_duration must not be negative", ErrInvalid)
	}
	if s.TickInterval <= 0 {
		return fmt.Errorf("%w: spin.tick_interval must be positive", ErrInvalid)
	}
	if s.InitialRate <= 0 || s.FloorRate <= 0 || s.FloorRate > s.InitialRate {
		return fmt.Errorf("%w: spin rates must satisfy 0 < floor_rate <= initial_rate", ErrInvalid)
	}
	if s.ExtraSpinsMin < 1 || s.ExtraSpinsMax <= s.ExtraSpinsMin {
		return fmt.Errorf("%w: spin extra spins must satisfy 1 <= min < max", ErrInvalid)
	}
	if s.RetryAttempts < 1 {
		return fmt.Errorf("%w: spin.retry_attempts must be at least 1", ErrInvalid)
	}

	switch c.Logging.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w: unknown logging.format %q", ErrInvalid, c.Logging.Format)
	}

	return c.Display.validate()
}

// Marshal renders the config as YAML.
func (c Config) Marshal() ([]byte, error) {
	return yaml.Marshal(c)
}

// Save writes the display and spin sections of c to path as YAML, creating
// the parent directory. Every other section keeps what the file already
// holds, so environment overrides such as WTS_TOKEN never reach the disk.
// Display and spin values that only come from the environment are not
// written either.
func Save(path string, c Config) error {
	if err := c.Validate(); err != nil {
		return err
	}
	file, err := loadFile(path)
	if err != nil {
		return err
	}
	env := file
	applyEnv(&env)

	out := file
	out.Display = c.Display
	if c.Display.CandidateTerm == env.Display.CandidateTerm {
		out.Display.CandidateTerm = file.Display.CandidateTerm
	}
	if c.Spin != env.Spin {
		out.Spin = c.Spin
	}

	data, err := out.Marshal()
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	return os.Rename(tmp, path)
}

// DefaultPath resolves the config file path in priority order:
// 1. WTS_CONFIG environment variable
// 2. $XDG_CONFIG_HOME/wts/config.yaml
// 3. ~/.config/wts/config.yaml
func DefaultPath() string {
	if p := os.Getenv("WTS_CONFIG"); p != "" {
		return p
	}
	base := os.Getenv("XDG_CONFIG_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return ""
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, "wts", "config.yaml")
}

func defaultStateDir(sub string) string {
	base := os.Getenv("XDG_STATE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "wts", sub)
		}
		base = filepath.Join(home, ".local", "state")
	}
	return filepath.Join(base, "wts", sub)
}
