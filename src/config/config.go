package config

import (
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
)

var (
	// ErrMissingHost is returned when a database prefix has no HOST set.
	ErrMissingHost = errors.New("missing database host")
	// ErrBadCredentials is returned when APP_CREDENTIALS is not a JSON object.
	ErrBadCredentials = errors.New("APP_CREDENTIALS must be a valid JSON object")
)

type Config struct {
	Port          string
	Credentials   map[string]string
	ReadOnly      bool
	ActionLogPath string
	DecryptKey    []byte
}

func Load() Config {
	// Load .env file if present
	_ = godotenv.Load()

	creds, err := ParseCredentials(getEnv("APP_CREDENTIALS", "{}"))
	if err != nil {
		log.Fatalf("invalid APP_CREDENTIALS: %v", err)
	}

	cfg := Config{
		Port:          getEnv("PORT", "8080"),
		Credentials:   creds,
		ReadOnly:      getEnv("READ_ONLY", "") == "true",
		ActionLogPath: getEnv("ACTION_LOG_PATH", ""),
		DecryptKey:    []byte(getEnv("DECRYPT_KEY", "")),
	}

	if os.Getenv("JWT_SECRET") == "" {
		log.Fatal("JWT_SECRET is required")
	}
	if n := len(cfg.DecryptKey); n != 0 && n != 16 && n != 24 && n != 32 {
		log.Fatalf("DECRYPT_KEY must be 16, 24 or 32 bytes, got %d", n)
	}

	return cfg
}

// ParseCredentials parses a JSON object of username -> password pairs.
// Password values may be plaintext or bcrypt hashes.
func ParseCredentials(raw string) (map[string]string, error) {
	creds := map[string]string{}
	if err := json.Unmarshal([]byte(raw), &creds); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadCredentials, err)
	}
	return creds, nil
}

// CheckPassword compares a supplied password against the stored value.
// Stored values starting with "$2" are treated as bcrypt hashes.
func CheckPassword(stored, supplied string) bool {
	if strings.HasPrefix(stored, "$2") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(supplied)) == nil
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(supplied)) == 1
}

// ConnString builds a pgx keyword/value connection string from the env vars
// under the given prefix: HOST (required), PORT, NAME, USER, PASSWORD.
func ConnString(prefix string) (string, error) {
	host := os.Getenv(prefix + "_HOST")
	if host == "" {
		return "", fmt.Errorf("%w: %s_HOST is not set", ErrMissingHost, prefix)
	}

	parts := []string{"host=" + host, "connect_timeout=5"}
	if v := os.Getenv(prefix + "_PORT"); v != "" {
		parts = append(parts, "port="+v)
	}
	if v := os.Getenv(prefix + "_NAME"); v != "" {
		parts = append(parts, "dbname="+v)
	}
	if v := os.Getenv(prefix + "_USER"); v != "" {
		parts = append(parts, "user="+v)
	}
	if v := os.Getenv(prefix + "_PASSWORD"); v != "" {
		parts = append(parts, "password="+v)
	}
	return strings.Join(parts, " "), nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}
