// Package config loads jsast settings from config.yaml, JSAST_* environment
// variables and command line flags, in increasing order of precedence.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/soyuz43/jsast-go/internal/jsparser"
)

const (
	appName   = "jsast"
	envPrefix = "JSAST"
)

// Config holds the complete application configuration.
type Config struct {
	Parser ParserConfig `mapstructure:"parser" yaml:"parser"`
	Log    LogConfig    `mapstructure:"log" yaml:"log"`
	UI     UIConfig     `mapstructure:"ui" yaml:"ui"`
	Serve  ServeConfig  `mapstructure:"serve" yaml:"serve"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-" yaml:"-"`
}

// ParserConfig selects the parser backend and its output.
type ParserConfig struct {
	Backend   string `mapstructure:"backend" yaml:"backend"`
	Locations bool   `mapstructure:"locations" yaml:"locations"`
	Ranges    bool   `mapstructure:"ranges" yaml:"ranges"`
}

// LogConfig controls logrus output.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
	File  string `mapstructure:"file" yaml:"file"`
}

// UIConfig holds terminal UI settings.
type UIConfig struct {
	ExampleOnStart bool `mapstructure:"example_on_start" yaml:"example_on_start"`
}

// ServeConfig holds settings for the HTTP endpoint.
type ServeConfig struct {
	Host              string        `mapstructure:"host" yaml:"host"`
	Port              int           `mapstructure:"port" yaml:"port"`
	InactivityTimeout time.Duration `mapstructure:"inactivity_timeout" yaml:"inactivity_timeout"`
}

// DefaultConfig returns a new configuration with default values.
func DefaultConfig() *Config {
	return &Config{
		Parser: ParserConfig{
			Backend: jsparser.AutoBackend,
		},
		Log: LogConfig{
			Level: "info",
		},
		UI: UIConfig{
			ExampleOnStart: true,
		},
		Serve: ServeConfig{
			Host:              "localhost",
			Port:              0,
			InactivityTimeout: 30 * time.Minute,
		},
	}
}

// FlagBindings maps config keys to the flag names that override them.
var FlagBindings = map[string]string{
	"parser.backend":   "backend",
	"parser.locations": "locations",
	"parser.ranges":    "ranges",
	"log.level":        "log-level",
	"log.file":         "log-file",

	"serve.host":               "host",
	"serve.port":               "port",
	"serve.inactivity_timeout": "inactivity-timeout",
}

// Load reads the configuration. An empty path searches the default locations
// and tolerates a missing file; an explicit path must exist. Flags that were
// set on the command line override file and environment values.
func Load(path string, flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if dir, err := Dir(); err == nil {
			v.AddConfigPath(dir)
		}
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	if flags != nil {
		for key, name := range FlagBindings {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag --%s", name)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	cfg.File = v.ConfigFileUsed()
	cfg.Parser.Backend = strings.ToLower(strings.TrimSpace(cfg.Parser.Backend))

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks values that would otherwise fail later and less clearly.
func (c *Config) Validate() error {
	known := false
	for _, name := range jsparser.BackendNames() {
		if c.Parser.Backend == name || c.Parser.Backend == "" {
			known = true
			break
		}
	}
	if !known {
		return errors.Errorf("invalid parser.backend %q (must be one of %s)",
			c.Parser.Backend, strings.Join(jsparser.BackendNames(), ", "))
	}
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return errors.Wrap(err, "invalid log.level")
	}
	if c.Serve.Port < 0 || c.Serve.Port > 65535 {
		return errors.Errorf("invalid serve.port %d", c.Serve.Port)
	}
	if c.Serve.InactivityTimeout < 0 {
		return errors.Errorf("invalid serve.inactivity_timeout %s", c.Serve.InactivityTimeout)
	}
	return nil
}

// ParserOptions converts the parser section to jsparser options.
func (c *Config) ParserOptions() jsparser.Options {
	return jsparser.Options{Locations: c.Parser.Locations, Ranges: c.Parser.Ranges}
}

// Dir returns the directory holding config.yaml and runtime state, honoring
// XDG_CONFIG_HOME.
func Dir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to locate user config directory")
	}
	return filepath.Join(base, appName), nil
}

func setDefaults(v *viper.Viper) {
	defaults := DefaultConfig()
	v.SetDefault("parser.backend", defaults.Parser.Backend)
	v.SetDefault("parser.locations", defaults.Parser.Locations)
	v.SetDefault("parser.ranges", defaults.Parser.Ranges)
	v.SetDefault("log.level", defaults.Log.Level)
	v.SetDefault("log.file", defaults.Log.File)
	v.SetDefault("ui.example_on_start", defaults.UI.ExampleOnStart)
	v.SetDefault("serve.host", defaults.Serve.Host)
	v.SetDefault("serve.port", defaults.Serve.Port)
	v.SetDefault("serve.inactivity_timeout", defaults.Serve.InactivityTimeout)
}
