package config

import (
	"fmt"
	"strings"

	"github.com/loykin/sssd/internal/logger"
	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment variable read by Load.
const EnvPrefix = "SSSD"

// Config holds the ambient settings of a host application. Values come
// from the environment only; there is no configuration file.
type Config struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
	LogColor  bool   `mapstructure:"log_color"`
	// LogDir receives the detached instance's output, relative to the working directory.
	LogDir string `mapstructure:"log_dir"`
	// Listen is the address of the example host's HTTP workload.
	Listen string `mapstructure:"listen"`
}

// Defaults returns the configuration used when no variables are set.
func Defaults() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "text",
		LogDir:    "logs",
		Listen:    ":8080",
	}
}

// Load reads SSSD_LOG_LEVEL, SSSD_LOG_FORMAT, SSSD_LOG_COLOR, SSSD_LOG_DIR
// and SSSD_LISTEN over the defaults.
func Load() (Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	d := Defaults()
	v.SetDefault("log_level", d.LogLevel)
	v.SetDefault("log_format", d.LogFormat)
	v.SetDefault("log_color", d.LogColor)
	v.SetDefault("log_dir", d.LogDir)
	v.SetDefault("listen", d.Listen)

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("decode environment: %w", err)
	}
	if err := c.Logger().Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid %s_LOG_* setting: %w", EnvPrefix, err)
	}
	if strings.TrimSpace(c.LogDir) == "" {
		c.LogDir = d.LogDir
	}
	return c, nil
}

// Logger converts the log settings into a logger.Config.
func (c Config) Logger() logger.Config {
	return logger.Config{Level: c.LogLevel, Format: c.LogFormat, Color: c.LogColor}
}
