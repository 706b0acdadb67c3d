package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/pageza/recipebox/backend/config"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DB represents the database connection
type DB struct {
	Gorm *gorm.DB
	sql  *sql.DB
}

// New opens the configured database. PostgreSQL connections go through
// lib/pq and are wrapped by GORM; SQLite is opened directly by GORM.
func New(cfg *config.Config, log *zap.Logger) (*DB, error) {
	gormCfg := &gorm.Config{Logger: gormLogger(cfg)}

	switch cfg.DBDriver {
	case "postgres":
		return openPostgres(cfg, gormCfg, log)
	case "sqlite":
		log.Info("Opening sqlite database", zap.String("path", cfg.DBPath))
		gdb, err := gorm.Open(sqlite.Open(cfg.DBPath), gormCfg)
		if err != nil {
			return nil, fmt.Errorf("error opening database: %w", err)
		}
		sqlDB, err := gdb.DB()
		if err != nil {
			return nil, fmt.Errorf("error opening database: %w", err)
		}
		// sqlite allows a single writer
		sqlDB.SetMaxOpenConns(1)
		return &DB{Gorm: gdb, sql: sqlDB}, nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}
}

func openPostgres(cfg *config.Config, gormCfg *gorm.Config, log *zap.Logger) (*DB, error) {
	// Log connection target (without password)
	log.Info("Connecting to database",
		zap.String("host", cfg.DBHost),
		zap.String("port", cfg.DBPort),
		zap.String("user", cfg.DBUser),
	)

	sqlDB, err := sql.Open("postgres", PostgresDSN(cfg))
	if err != nil {
		return nil, fmt.Errorf("error opening database: %w", err)
	}

	// Set connection pool settings
	sqlDB.SetMaxOpenConns(cfg.DBMaxOpenConns)
	sqlDB.SetMaxIdleConns(cfg.DBMaxOpenConns)
	sqlDB.SetConnMaxLifetime(5 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error connecting to the database: %w", err)
	}

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), gormCfg)
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("error initializing gorm: %w", err)
	}

	log.Info("Successfully connected to database")
	return &DB{Gorm: gdb, sql: sqlDB}, nil
}

// Wrap adapts an already opened GORM handle
func Wrap(gdb *gorm.DB) (*DB, error) {
	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, fmt.Errorf("error unwrapping database: %w", err)
	}
	return &DB{Gorm: gdb, sql: sqlDB}, nil
}

// PostgresDSN builds a lib/pq connection string from the configuration
func PostgresDSN(cfg *config.Config) string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBSSLMode,
	)
}

func gormLogger(cfg *config.Config) logger.Interface {
	switch cfg.Env {
	case config.Development:
		return logger.Default.LogMode(logger.Warn)
	case config.Test, config.CI:
		return logger.Default.LogMode(logger.Silent)
	default:
		return logger.Default.LogMode(logger.Error)
	}
}

// HealthCheck checks if the database is accessible
func (db *DB) HealthCheck(ctx context.Context) error {
	return db.sql.PingContext(ctx)
}

// SQL exposes the connection pool, for instrumentation
func (db *DB) SQL() *sql.DB {
	return db.sql
}

// Close releases the underlying connection pool
func (db *DB) Close() error {
	return db.sql.Close()
}
