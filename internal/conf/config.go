// Package conf loads client settings from a YAML file and the environment.
package conf

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/AlbertoBoldrini/pfam-go/internal/errors"
)

// LogSettings controls the optional service log file.
type LogSettings struct {
	Enabled bool   // write a service log file
	Path    string // log file path
	Level   string // minimum level: debug, info, warn, error
}

// Settings holds the configuration of the pfam client.
type Settings struct {
	BaseURL   string        // Pfam server endpoint
	Timeout   time.Duration // per-request timeout
	UserAgent string        // User-Agent header value
	Debug     bool          // enable request/response debug logging
	Log       LogSettings
}

// Load reads settings from an optional pfam.yaml config file and PFAM_*
// environment variables, falling back to defaults for anything unset.
//
// Config file lookup order: the working directory, then $HOME/.config/pfam-go.
// A missing config file is not an error.
func Load() (*Settings, error) {
	v := viper.New()

	v.SetConfigName("pfam")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("$HOME/.config/pfam-go")

	v.SetEnvPrefix("pfam")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaultConfig(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found, defaults and environment apply
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("error unmarshaling config into struct: %w", err)
	}

	if err := ValidateSettings(settings); err != nil {
		return nil, fmt.Errorf("error validating settings: %w", err)
	}

	return settings, nil
}

// setDefaultConfig sets default values for each configuration parameter.
func setDefaultConfig(v *viper.Viper) {
	v.SetDefault("baseurl", "https://pfam.xfam.org")
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("useragent", "pfam-go")
	v.SetDefault("debug", false)
	v.SetDefault("log.enabled", false)
	v.SetDefault("log.path", "logs/pfam.log")
	v.SetDefault("log.level", "info")
}

// ValidateSettings checks the loaded settings for values the client cannot use.
func ValidateSettings(s *Settings) error {
	if s.BaseURL == "" {
		return fmt.Errorf("baseurl must not be empty")
	}
	if !strings.HasPrefix(s.BaseURL, "http://") && !strings.HasPrefix(s.BaseURL, "https://") {
		return fmt.Errorf("baseurl must be an http or https endpoint, got %q", s.BaseURL)
	}
	if s.Timeout < 0 {
		return fmt.Errorf("timeout must not be negative, got %s", s.Timeout)
	}
	switch s.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log.level must be one of debug, info, warn, error, got %q", s.Log.Level)
	}
	return nil
}
