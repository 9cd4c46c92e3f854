// internal/database/sqlite.go
package database

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/glebarez/sqlite" // Driver SQLite pure-Go (tanpa cgo)
	"github.com/privguard/progress-engine-be/internal/models"
	zlog "github.com/rs/zerolog/log"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// File ini menginisialisasi LOCAL STORE: database SQLite embedded yang
// menjadi satu-satunya sumber kebenaran untuk seluruh aturan bisnis engine.
// Semua mutasi commit ke sini secara sinkron sebelum mirror remote disentuh.

// NewLocalDB membuka (atau membuat) database SQLite lokal pada path yang
// diberikan, menyetel pragma performa, dan menjalankan auto-migration untuk
// seluruh tabel state engine.
func NewLocalDB(dbPath string) (*gorm.DB, error) {
	if dir := filepath.Dir(dbPath); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("unable to create local store directory: %w", err)
		}
	}

	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("unable to open local store: %w", err)
	}

	// WAL supaya query read tidak memblokir writer tunggal engine.
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA temp_store=MEMORY",
	}
	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return nil, fmt.Errorf("unable to apply %s: %w", pragma, err)
		}
	}

	if err := db.AutoMigrate(
		&models.UserProgress{},
		&models.AchievementUnlock{},
		&models.Challenge{},
		&models.DailyTask{},
		&models.PointTransaction{},
	); err != nil {
		return nil, fmt.Errorf("unable to migrate local store schema: %w", err)
	}

	zlog.Info().Str("path", dbPath).Msg("Local store initialized")
	return db, nil
}
