// Package config turns flags, environment and config file settings into the
// validated parameters of a probe run.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/viper"

	errs "httplatencies/internal/errors"
)

const (
	DefaultTaskCount    = 100
	DefaultProbeCount   = 10
	DefaultTimeout      = 30 * time.Second
	DefaultInterval     = time.Second
	DefaultJitterWindow = time.Second
	EnvPrefix           = "HTTPLATENCIES"
)

// Config holds everything the probing core consumes.
type Config struct {
	URLs        []string `mapstructure:"url" validate:"required,min=1,dive,http_url"`
	LocalAddrs  []string `mapstructure:"local-ip" validate:"dive,ip"`
	TaskCount   int      `mapstructure:"tasks" validate:"min=1"`
	ProbeCount  int      `mapstructure:"probes" validate:"min=1"`
	HeaderFiles []string `mapstructure:"header-file" validate:"dive,contains=:"`
	// Clients overrides the client pool size; 0 derives it from LocalAddrs.
	Clients int `mapstructure:"clients" validate:"min=0"`

	Timeout      time.Duration `mapstructure:"timeout" validate:"gt=0s"`
	Interval     time.Duration `mapstructure:"interval" validate:"gte=0s"`
	JitterWindow time.Duration `mapstructure:"jitter-window" validate:"gte=0s"`

	TUI         bool   `mapstructure:"tui"`
	Out         string `mapstructure:"out"`
	MetricsFile string `mapstructure:"metrics-file"`
	Save        bool   `mapstructure:"save"`
	HistoryDB   string `mapstructure:"history-db"`

	LogLevel  string `mapstructure:"log-level" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `mapstructure:"log-format" validate:"omitempty,oneof=text json"`
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// SetDefaults registers the defaults on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("tasks", DefaultTaskCount)
	v.SetDefault("probes", DefaultProbeCount)
	v.SetDefault("timeout", DefaultTimeout)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("jitter-window", DefaultJitterWindow)
	v.SetDefault("history-db", DefaultHistoryDB())
	v.SetDefault("log-level", "warn")
	v.SetDefault("log-format", "text")
}

// Keys lists every configuration key.
var Keys = []string{
	"url", "local-ip", "tasks", "probes", "header-file", "clients",
	"timeout", "interval", "jitter-window",
	"tui", "out", "metrics-file", "save", "history-db",
	"log-level", "log-format",
}

// SetupEnv makes every key readable from HTTPLATENCIES_<KEY> with dashes as
// underscores.
func SetupEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Unmarshal only sees keys viper already knows about.
	for _, key := range Keys {
		_ = v.BindEnv(key)
	}
}

// DefaultHistoryDB is $HOME/.httplatencies/history.db, or a relative path if
// the home directory is unknown.
func DefaultHistoryDB() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".httplatencies", "history.db")
	}

	return filepath.Join(home, ".httplatencies", "history.db")
}

// Load decodes and validates the run configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	cfg := &Config{}

	err := v.Unmarshal(cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
	)))
	if err != nil {
		return nil, errs.NewConfigurationError("", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks cfg against its struct tags.
func (c *Config) Validate() error {
	err := validate.Struct(c)
	if err == nil {
		return nil
	}

	if verrs, ok := err.(validator.ValidationErrors); ok && len(verrs) > 0 {
		fe := verrs[0]

		return errs.NewConfigurationError(fe.Namespace(),
			fmt.Errorf("failed %q validation (value %v)", fe.Tag(), fe.Value()))
	}

	return errs.NewConfigurationError("", err)
}

// ExpectedSamples is the number of probes a complete run issues.
func (c *Config) ExpectedSamples() int {
	return c.TaskCount * c.ProbeCount
}
