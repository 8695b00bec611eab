// Package config loads application configuration from environment
// variables. Every knob has a default so the binary starts with no
// environment at all; the only generated value is the session secret,
// which is randomized per process when not provided (existing sessions
// stop resolving after a restart in that mode).
package config

import (
	"crypto/rand"
	"log"
	"os"
	"strconv"
	"time"

	"golang.org/x/crypto/bcrypt"
)

// Config holds all runtime configuration values.
type Config struct {
	Env           string        // application environment (e.g. "dev", "prod")
	Port          string        // HTTP port to listen on
	DBPath        string        // SQLite database file path
	SessionSecret []byte        // HMAC key signing session cookies
	SessionTTL    time.Duration // lifetime of a login session
	BcryptCost    int           // bcrypt cost for password hashing
	MapsAPIKey    string        // map-provider key for the detail-page embed; empty hides the map
}

// Load reads configuration from environment variables, applying
// defaults for anything unset.
func Load() Config {
	return Config{
		Env:           getenv("APP_ENV", "dev"),
		Port:          getenv("APP_PORT", "8080"),
		DBPath:        getenv("DB_PATH", "cafes.db"),
		SessionSecret: secretFromEnv("SESSION_SECRET"),
		SessionTTL:    getdur("SESSION_TTL", 72*time.Hour),
		BcryptCost:    getint("BCRYPT_COST", bcrypt.DefaultCost),
		MapsAPIKey:    os.Getenv("MAPS_API_KEY"),
	}
}

// secretFromEnv returns the configured secret, or 32 random bytes when
// the variable is unset.
func secretFromEnv(key string) []byte {
	if v := os.Getenv(key); v != "" {
		return []byte(v)
	}
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		log.Fatalf("generate session secret: %v", err)
	}
	return buf
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getint(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, v)
	}
	return n
}

func getdur(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, v)
	}
	return d
}
