package config

import (
	"database/sql"
	"log"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	_ "modernc.org/sqlite"
)

// Config holds the process-wide configuration and the open database handle.
type Config struct {
	DB         *sql.DB
	Listen     string
	DBPath     string
	StaticDir  string
	ImageDir   string
	JWTSecret  string
	CookieName string
}

var AppConfig *Config

// Load reads the environment (optionally from a .env file) and fills in
// defaults matching the on-disk layout of a fresh checkout.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment defaults")
	}

	staticDir := getenv("SRS_STATIC_DIR", "./static")
	cfg := &Config{
		Listen:     getenv("SRS_LISTEN", "127.0.0.1:5100"),
		DBPath:     getenv("SRS_DB_PATH", "./db/system.db"),
		StaticDir:  staticDir,
		ImageDir:   filepath.Join(staticDir, "img"),
		JWTSecret:  getenv("SRS_SESSION_SECRET", "srs-dev-session-secret"),
		CookieName: "srs_session",
	}
	AppConfig = cfg
	return cfg
}

// DSN builds the connection string for a database file. The driver only
// honors pragmas passed in _pragma=name(value) form; the mattn-style
// _journal_mode=... parameters are silently dropped.
func DSN(path string) string {
	return path + "?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)"
}

// InitDB opens the SQLite database and verifies the connection. Foreign keys
// are enforced by the store; cascades remain explicit in application code.
func InitDB() {
	if AppConfig == nil {
		Load()
	}

	if dir := filepath.Dir(AppConfig.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Fatal("Failed to create database directory:", err)
		}
	}

	db, err := sql.Open("sqlite", DSN(AppConfig.DBPath))
	if err != nil {
		log.Fatal("Failed to open database:", err)
	}

	// A single writer keeps SQLite happy under the assumed low-concurrency
	// administrative workload.
	db.SetMaxOpenConns(1)

	if err = db.Ping(); err != nil {
		log.Fatal("Cannot establish database connection:", err)
	}

	AppConfig.DB = db
	log.Println("Database connected successfully")
}

func GetDB() *sql.DB {
	return AppConfig.DB
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
