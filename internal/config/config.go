// Package config loads toolkit configuration from file, environment and
// CLI flags through viper.
package config

// Config holds all application configuration.
type Config struct {
	Log    LogConfig    `mapstructure:"log"`
	Daemon DaemonConfig `mapstructure:"daemon"`
	Serve  ServeConfig  `mapstructure:"serve"`
}

// LogConfig configures logging behavior.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// DaemonConfig configures the check daemon.
type DaemonConfig struct {
	Checks       []string `mapstructure:"checks"`
	Interval     string   `mapstructure:"interval"`
	OnChangeOnly bool     `mapstructure:"on_change_only"`
	LogFile      string   `mapstructure:"log_file"`
	LogsAddr     string   `mapstructure:"logs_addr"`
	HistoryDB    string   `mapstructure:"history_db"`
}

// ServeConfig configures the file server command.
type ServeConfig struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	Root string `mapstructure:"root"`
}
