package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/sutra/internal/entities"
)

// setupTestDB creates a fresh test database
func setupTestDB(t *testing.T) *Database {
	t.Helper()
	db, err := NewDatabase(filepath.Join(t.TempDir(), "test.db"), WithLogLevel("silent"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func TestNewDatabase_MigratesTables(t *testing.T) {
	db := setupTestDB(t)

	for _, model := range []any{
		&entities.Text{},
		&entities.Chapter{},
		&entities.Verse{},
		&entities.Bookmark{},
		&entities.Note{},
		&entities.Highlight{},
		&entities.ReadingHistory{},
		&entities.Setting{},
	} {
		assert.True(t, db.DB.Migrator().HasTable(model), "missing table for %T", model)
	}
}

func TestNewDatabase_ForeignKeysEnabled(t *testing.T) {
	db := setupTestDB(t)

	var enabled int
	require.NoError(t, db.DB.Raw("PRAGMA foreign_keys").Scan(&enabled).Error)
	assert.Equal(t, 1, enabled)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel(" info "))
	assert.Equal(t, logger.Warn, ParseLogLevel("warn"))
	assert.Equal(t, logger.Warn, ParseLogLevel("bogus"))
}

func TestDSN(t *testing.T) {
	assert.Equal(t, "a.db?_foreign_keys=on", dsn("a.db"))
	assert.Equal(t, "file::memory:?cache=shared&_foreign_keys=on", dsn("file::memory:?cache=shared"))
}
