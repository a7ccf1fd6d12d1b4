package main

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/robalobadob/fingerspell/internal/httpserver"
)

// config is everything main reads from the environment (.env included).
type config struct {
	Port         string
	LogLevel     string
	WordsFile    string
	WordsDB      string
	KafkaBrokers []string
	KafkaTopic   string
	Server       httpserver.Config
}

func loadConfig() config {
	return config{
		Port:         getEnv("PORT", "5175"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		WordsFile:    os.Getenv("WORDS_FILE"),
		WordsDB:      os.Getenv("WORDS_DB"),
		KafkaBrokers: splitList(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:   getEnv("KAFKA_TOPIC", "fingerspell-events"),
		Server: httpserver.Config{
			ClientOrigin: getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
			JWTSecret:    getEnv("JWT_SECRET", "dev_secret_change_me"),
			SessionTTL:   time.Duration(envInt("SESSION_TTL_HOURS", 12)) * time.Hour,
			CookieName:   getEnv("COOKIE_NAME", "fingerspell_session"),
			SecureCookie: os.Getenv("APP_ENV") == "production",
			DailySalt:    getEnv("DAILY_SALT", "local_dev_salt"),
			AssetsBase:   getEnv("ASSETS_BASE", "assets/imagens/abc"),
		},
	}
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// envInt parses k as an int, falling back to def when unset or malformed.
func envInt(k string, def int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// splitList splits a comma-separated list, dropping empty items.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
