package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"golang.org/x/term"
)

// Config holds CLI settings.
// Precedence (highest to lowest):
// 1. Flags set on the command line
// 2. INKWELL_* environment variables (INKWELL_COLUMNS, INKWELL_COLOR, INKWELL_DEBUG_LOG)
// 3. inkwell.yaml in the current directory, then $XDG_CONFIG_HOME/inkwell
// 4. Built-in defaults
type Config struct {
	Columns  int    `mapstructure:"columns"`
	Color    string `mapstructure:"color"`
	DebugLog string `mapstructure:"debug-log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

func loadConfig(flags *pflag.FlagSet, getenv func(string) string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	explicit := ""
	if flags != nil {
		explicit, _ = flags.GetString("config")
	}
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("reading config from %s: %w", explicit, err)
		}
	} else {
		v.SetConfigName("inkwell")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(userConfigDir(getenv))
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	v.SetEnvPrefix("INKWELL")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return Config{}, fmt.Errorf("binding flags: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()

	if cfg.Columns < 0 {
		return Config{}, fmt.Errorf("columns must not be negative, got %d", cfg.Columns)
	}
	return cfg, nil
}

// setDefaults configures default values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("columns", 0)
	v.SetDefault("color", "auto")
	v.SetDefault("debug-log", "")
}

// userConfigDir returns the XDG config directory for inkwell.
func userConfigDir(getenv func(string) string) string {
	if xdg := getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "inkwell")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".config", "inkwell")
	}
	return filepath.Join(home, ".config", "inkwell")
}

// columns returns the configured width, falling back to the width of the
// terminal on stdout and then to 80.
func (c Config) columns() int {
	if c.Columns > 0 {
		return c.Columns
	}
	if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil && w > 0 {
		return w
	}
	return 80
}
