// configs/config.go
package configs

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	zlog "github.com/rs/zerolog/log"
)

// File ini bertanggung jawab memuat konfigurasi aplikasi dari environment
// variables: memuat file .env (jika ada) lalu memvalidasi variabel wajib.
//
// Variabel DB_* (mirror remote) sengaja TIDAK wajib: engine harus tetap bisa
// jalan sepenuhnya offline dengan local store saja; tanpa konfigurasi remote,
// sinkronisasi dinonaktifkan.

// LoadConfig dipanggil di awal main untuk memuat konfigurasi.
//  1. Mencoba memuat variabel dari file .env di direktori kerja. Jika tidak
//     ditemukan, lanjut tanpa error (variabel bisa datang dari OS/container).
//  2. Memvalidasi keberadaan variabel wajib; jika ada yang hilang, aplikasi
//     dihentikan dengan pesan error yang jelas.
func LoadConfig() {
	fmt.Fprintln(os.Stderr, "[INFO] Loading application configuration...")

	// Variabel yang sudah ada di environment TIDAK ditimpa oleh nilai .env.
	if err := godotenv.Load(); err != nil {
		// Bukan kondisi fatal; gunakan fmt karena logger utama belum siap.
		fmt.Fprintln(os.Stderr, "[WARN] No .env file found or error loading it. Reading environment variables directly.")
	} else {
		fmt.Fprintln(os.Stderr, "[INFO] Loaded environment variables from .env file (if found).")
	}

	requiredVars := []string{
		"APP_PORT",
		"LOCAL_DB_PATH", // Path file SQLite untuk local store yang otoritatif.
	}

	missingVars := []string{}
	for _, varName := range requiredVars {
		if os.Getenv(varName) == "" {
			missingVars = append(missingVars, varName)
			fmt.Fprintf(os.Stderr, "[ERROR] Required environment variable '%s' is not set.\n", varName)
		}
	}

	if len(missingVars) > 0 {
		zlog.Fatal().Strs("missing_variables", missingVars).Msg("Missing required environment variables. Application cannot start.")
	}

	zlog.Info().Msg("All required environment variables are set. Configuration loaded successfully.")
}

// RemoteMirrorConfigured melaporkan apakah konfigurasi database mirror remote
// tersedia. Jika false, SyncCoordinator berjalan dalam mode nonaktif dan
// seluruh state hanya hidup di local store.
func RemoteMirrorConfigured() bool {
	return os.Getenv("DB_HOST") != "" &&
		os.Getenv("DB_PORT") != "" &&
		os.Getenv("DB_USER") != "" &&
		os.Getenv("DB_NAME") != ""
}
