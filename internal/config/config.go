package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

var (
	// DatabaseURL selects postgres when set; empty means local sqlite.
	DatabaseURL string
	// SQLitePath is the fallback database file for local runs.
	SQLitePath string
	Port       string
	CORSOrigin string
)

// Load reads .env if present and resolves all settings from the
// environment. Call it once before anything touches the variables above.
func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	DatabaseURL = os.Getenv("DATABASE_URL")
	SQLitePath = getenv("SQLITE_PATH", "students.db")
	Port = getenv("PORT", "8080")
	CORSOrigin = getenv("CORS_ORIGIN", "http://localhost:3000")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
