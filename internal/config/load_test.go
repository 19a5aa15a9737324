package config_test

import (
	"testing"

	"github.com/lexcards/lexcards-api/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Run("applies defaults with only the database url set", func(t *testing.T) {
		t.Setenv("LEXCARDS_DATABASE_URL", "postgres://localhost:5432/lexcards")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 8080, cfg.Server.Port)
		assert.Equal(t, "info", cfg.Server.LogLevel)
		assert.Equal(t, 5, cfg.Server.PageSize)
		assert.Equal(t, "backup", cfg.Backup.Dir)
		assert.Equal(t, int64(2<<20), cfg.Import.MaxFileBytes)
		assert.Equal(t, "postgres://localhost:5432/lexcards", cfg.Database.URL)
	})

	t.Run("environment variables override defaults", func(t *testing.T) {
		t.Setenv("LEXCARDS_DATABASE_URL", "postgres://localhost:5432/lexcards")
		t.Setenv("LEXCARDS_SERVER_PORT", "9999")
		t.Setenv("LEXCARDS_SERVER_LOG_LEVEL", "debug")
		t.Setenv("LEXCARDS_SERVER_PAGE_SIZE", "10")
		t.Setenv("LEXCARDS_BACKUP_DIR", "/tmp/lexcards-backups")
		t.Setenv("LEXCARDS_IMPORT_MAX_FILE_BYTES", "1048576")

		cfg, err := config.Load()
		require.NoError(t, err)

		assert.Equal(t, 9999, cfg.Server.Port)
		assert.Equal(t, "debug", cfg.Server.LogLevel)
		assert.Equal(t, 10, cfg.Server.PageSize)
		assert.Equal(t, "/tmp/lexcards-backups", cfg.Backup.Dir)
		assert.Equal(t, int64(1048576), cfg.Import.MaxFileBytes)
	})

	t.Run("fails without a database url", func(t *testing.T) {
		t.Setenv("LEXCARDS_DATABASE_URL", "")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})

	t.Run("rejects an unknown log level", func(t *testing.T) {
		t.Setenv("LEXCARDS_DATABASE_URL", "postgres://localhost:5432/lexcards")
		t.Setenv("LEXCARDS_SERVER_LOG_LEVEL", "verbose")

		_, err := config.Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "invalid configuration")
	})
}
