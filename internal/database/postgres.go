// internal/database/postgres.go
package database

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	zlog "github.com/rs/zerolog/log"
)

// File ini menginisialisasi koneksi ke database PostgreSQL yang berperan
// sebagai MIRROR REMOTE untuk state engine. Mirror ini bukan sumber
// kebenaran kedua: local store tetap otoritatif, dan kegagalan koneksi di
// sini tidak boleh menghentikan aplikasi (caller yang memutuskan degradasi).

// NewRemotePool membuat connection pool ke database mirror remote.
//  1. Membaca konfigurasi koneksi dari environment variables (DB_*).
//  2. Mem-parsing DSN dan menyetel parameter pool.
//  3. Membuat pool dan melakukan ping verifikasi awal.
func NewRemotePool() (*pgxpool.Pool, error) {
	zlog.Info().Msg("Initializing remote mirror connection pool...")

	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPassword := os.Getenv("DB_PASSWORD") // Jangan pernah di-log.
	dbName := os.Getenv("DB_NAME")
	dbSSLMode := os.Getenv("DB_SSLMODE")

	if dbHost == "" || dbPort == "" || dbUser == "" || dbName == "" {
		zlog.Error().Msg("One or more required database environment variables (DB_HOST, DB_PORT, DB_USER, DB_NAME) are not set.")
		return nil, fmt.Errorf("missing required database configuration environment variables")
	}
	if dbSSLMode == "" {
		dbSSLMode = "disable"
		zlog.Warn().Msg("DB_SSLMODE environment variable not set, defaulting to 'disable'. Consider setting it explicitly for production.")
	}

	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbPassword, dbName, dbSSLMode)
	dsnLoggable := fmt.Sprintf("host=%s port=%s user=%s dbname=%s sslmode=%s",
		dbHost, dbPort, dbUser, dbName, dbSSLMode)
	zlog.Debug().Str("dsn_loggable", dsnLoggable).Msg("Constructed remote mirror DSN")

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		zlog.Error().Err(err).Str("dsn_loggable", dsnLoggable).Msg("Failed to parse database DSN")
		return nil, fmt.Errorf("unable to parse database configuration: %w", err)
	}

	// Mirror hanya menerima upsert background dari satu worker, jadi pool
	// kecil sudah cukup.
	config.MaxConns = 4
	config.MinConns = 1
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute
	config.HealthCheckPeriod = time.Minute
	config.ConnConfig.ConnectTimeout = 5 * time.Second

	pool, err := pgxpool.NewWithConfig(context.Background(), config)
	if err != nil {
		zlog.Error().Err(err).Msg("Failed to create remote mirror connection pool")
		return nil, fmt.Errorf("unable to create database connection pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err = pool.Ping(pingCtx); err != nil {
		zlog.Error().Err(err).Msg("Remote mirror ping failed. Closing unusable pool.")
		pool.Close()
		return nil, fmt.Errorf("unable to ping database after pool creation: %w", err)
	}

	zlog.Info().Msg("Successfully connected to the remote mirror database.")
	return pool, nil
}
