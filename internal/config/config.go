// Package config loads and validates application configuration from
// environment variables and optional config files.
package config

// Config holds all application configuration.
// It organizes settings into logical groups for better maintainability.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"   validate:"required"`
	Database DatabaseConfig `mapstructure:"database" validate:"required"`
	Backup   BackupConfig   `mapstructure:"backup"   validate:"required"`
	Import   ImportConfig   `mapstructure:"import"   validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port"      validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// PageSize is the default number of cards per browse page.
	PageSize int `mapstructure:"page_size" validate:"required,gt=0"`
}

// DatabaseConfig contains all database-related configuration settings.
type DatabaseConfig struct {
	URL string `mapstructure:"url" validate:"required"`
}

// BackupConfig controls where backup snapshots are written before
// destructive import/restore operations.
type BackupConfig struct {
	Dir string `mapstructure:"dir" validate:"required"`
}

// ImportConfig bounds user-supplied import files.
type ImportConfig struct {
	// MaxFileBytes caps the size of an import payload. Larger files are
	// rejected before any parsing or store mutation.
	MaxFileBytes int64 `mapstructure:"max_file_bytes" validate:"required,gt=0"`
}
