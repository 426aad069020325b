package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Loader handles configuration loading from multiple sources.
// Precedence (highest to lowest): CLI flags bound via viper, OPSBOX_*
// environment variables, the config file, defaults.
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a loader over an existing viper instance so CLI flag
// bindings participate in precedence.
func NewLoader(v *viper.Viper) *Loader {
	if v == nil {
		v = viper.New()
	}
	return &Loader{v: v}
}

// WithConfigFile sets an explicit config file path.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load reads all sources and unmarshals the result. A missing config file
// is fine unless one was named explicitly.
func (l *Loader) Load() (*Config, error) {
	l.setDefaults()

	l.v.SetEnvPrefix("OPSBOX")
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", l.configFile, err)
		}
	} else {
		l.v.SetConfigName("opsbox")
		l.v.SetConfigType("yaml")
		l.v.AddConfigPath(".")
		l.v.AddConfigPath("/etc/opsbox")
		if err := l.v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("reading config: %w", err)
			}
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	return &cfg, nil
}

func (l *Loader) setDefaults() {
	l.v.SetDefault("log.level", "info")
	l.v.SetDefault("log.format", "auto")
	l.v.SetDefault("daemon.interval", "90s")
	l.v.SetDefault("daemon.on_change_only", false)
	l.v.SetDefault("serve.host", "0.0.0.0")
	l.v.SetDefault("serve.port", 8080)
	l.v.SetDefault("serve.root", ".")
}
