// Package config loads command settings from an optional pbitheme.yaml
// file, PBITHEME_* environment variables and command-line flags.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/tsawler/pbitheme/theme"
)

// EnvPrefix is the prefix of environment variables read by Load.
const EnvPrefix = "PBITHEME"

// FileName is the base name of the config file searched for by Load.
const FileName = "pbitheme"

// Config holds the resolved settings.
type Config struct {
	Name        string   `mapstructure:"name"`
	DataColors  []string `mapstructure:"dataColors"`
	Background  string   `mapstructure:"background"`
	Foreground  string   `mapstructure:"foreground"`
	TableAccent string   `mapstructure:"tableAccent"`
	Output      string   `mapstructure:"output"`
	Color       string   `mapstructure:"color"`
	Log         Log      `mapstructure:"log"`

	// File is the config file that was read, if any.
	File string `mapstructure:"-"`
}

// Log holds logger settings.
type Log struct {
	Level string `mapstructure:"level"`
	File  string `mapstructure:"file"`
}

// Fields returns the general theme fields of the config.
func (c *Config) Fields() theme.GeneralFields {
	return theme.GeneralFields{
		Name:        c.Name,
		DataColors:  c.DataColors,
		Background:  c.Background,
		Foreground:  c.Foreground,
		TableAccent: c.TableAccent,
	}
}

// New returns a viper instance with defaults, environment binding and the
// config search path set up. Flags can be bound to it before Load.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("name", theme.DefaultName)
	v.SetDefault("dataColors", []string{})
	v.SetDefault("background", "")
	v.SetDefault("foreground", "")
	v.SetDefault("tableAccent", "")
	v.SetDefault("output", "")
	v.SetDefault("color", "auto")
	v.SetDefault("log.level", "")
	v.SetDefault("log.file", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigName(FileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", FileName))
	}
	return v
}

// BindFlags binds flags to config keys. keys maps a config key to a flag
// name; flags not present in fs are skipped.
func BindFlags(v *viper.Viper, fs *pflag.FlagSet, keys map[string]string) error {
	for key, name := range keys {
		f := fs.Lookup(name)
		if f == nil {
			continue
		}
		if err := v.BindPFlag(key, f); err != nil {
			return fmt.Errorf("binding flag %s: %w", name, err)
		}
	}
	return nil
}

// Load reads the config. An explicit path must exist; otherwise a missing
// config file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decoding config: %w", err)
	}
	cfg.File = v.ConfigFileUsed()
	cfg.DataColors = splitList(cfg.DataColors)

	switch cfg.Color {
	case "auto", "always", "never":
	default:
		return nil, fmt.Errorf("color: must be auto, always or never, got %q", cfg.Color)
	}
	return &cfg, nil
}

// splitList accepts both list values and a single comma separated string,
// as given by an environment variable.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			out = append(out, strings.TrimSpace(part))
		}
	}
	return out
}
