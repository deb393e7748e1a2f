package database

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/hugohenrick/erp-multinegocio/internal/config"
)

// OpenGorm abre a conexão gorm no dialeto configurado (sqlite ou postgres)
func OpenGorm(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.Storage.GormDialect {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseURL())
	default:
		if err := os.MkdirAll(filepath.Dir(cfg.Storage.SQLitePath), 0o755); err != nil {
			return nil, fmt.Errorf("erro ao criar diretório do banco: %w", err)
		}
		dialector = sqlite.Open(cfg.Storage.SQLitePath)
	}

	logLevel := gormlogger.Silent
	if cfg.Log.Level == "debug" {
		logLevel = gormlogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(logLevel),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao abrir banco: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter conexão: %w", err)
	}

	if cfg.Storage.GormDialect == "postgres" {
		sqlDB.SetMaxOpenConns(int(cfg.Database.MaxConnections))
		sqlDB.SetConnMaxLifetime(cfg.Database.MaxConnLifetime)
		return db, nil
	}

	// SQLite aceita um único escritor por vez
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)
	_, _ = sqlDB.Exec("PRAGMA journal_mode = WAL;")
	_, _ = sqlDB.Exec("PRAGMA synchronous = NORMAL;")
	_, _ = sqlDB.Exec("PRAGMA busy_timeout = 5000;")
	return db, nil
}
