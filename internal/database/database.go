package database

import (
	"context"
	"fmt"
	"log"
	"strings"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/mrlokans/sutra/internal/entities"
)

// Database owns the single gorm handle shared by every repository. It is
// passed explicitly to the repositories that need it.
type Database struct {
	DB *gorm.DB
}

type options struct {
	logLevel logger.LogLevel
}

// Option configures NewDatabase.
type Option func(*options)

// WithLogLevel sets the gorm SQL log level: silent, error, warn or info.
func WithLogLevel(level string) Option {
	return func(o *options) {
		o.logLevel = ParseLogLevel(level)
	}
}

// ParseLogLevel maps a config string to a gorm log level. Unknown values fall
// back to warn.
func ParseLogLevel(level string) logger.LogLevel {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}

func NewDatabase(dbPath string, opts ...Option) (*Database, error) {
	o := options{logLevel: logger.Warn}
	for _, opt := range opts {
		opt(&o)
	}

	db, err := gorm.Open(sqlite.Open(dsn(dbPath)), &gorm.Config{
		Logger: logger.Default.LogMode(o.logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	// Auto-migrate all entities
	err = db.AutoMigrate(
		&entities.Text{},
		&entities.Chapter{},
		&entities.Verse{},
		&entities.Bookmark{},
		&entities.Note{},
		&entities.Highlight{},
		&entities.ReadingHistory{},
		&entities.Setting{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	log.Printf("Database initialized successfully at %s", dbPath)

	return &Database{DB: db}, nil
}

// dsn enables foreign keys so chapter and verse rows cascade with their text.
func dsn(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&_foreign_keys=on"
	}
	return dbPath + "?_foreign_keys=on"
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// Ping checks that the underlying connection is usable.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}
