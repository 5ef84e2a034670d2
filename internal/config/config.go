package config

import (
	"os"
	"strings"
	"time"
)

type Config struct {
	HTTPAddr string

	DBDriver string
	DBDSN    string

	// Question bank service (authoritative quiz/question definitions).
	QuizBankURL     string
	QuizBankTimeout time.Duration

	// Leaderboard notifier: "log" appends to the local event_log table,
	// "http" posts to LeaderboardURL, "off" disables it.
	NotifierDriver string
	LeaderboardURL string

	// Dev-mode local login; production deployments run behind the gateway
	// and leave this off.
	EnableLocalAuth bool
	AuthHMACSecret  string

	CORSOrigins []string
}

func FromEnv() Config {
	addr := os.Getenv("HTTP_ADDR")
	if addr == "" {
		addr = ":8083"
	}
	return Config{
		HTTPAddr:        addr,
		DBDriver:        envOr("DB_DRIVER", "sqlite"),
		DBDSN:           envOr("DB_DSN", ""),
		QuizBankURL:     envOr("QUIZ_BANK_URL", "http://localhost:8082"),
		QuizBankTimeout: envDuration("QUIZ_BANK_TIMEOUT", 5*time.Second),
		NotifierDriver:  envOr("NOTIFIER_DRIVER", "log"),
		LeaderboardURL:  envOr("LEADERBOARD_URL", ""),
		EnableLocalAuth: envBool("ENABLE_LOCAL_AUTH", true),
		AuthHMACSecret:  envOr("AUTH_HMAC_SECRET", "supersecret-dev-key"),
		CORSOrigins:     csvOr("CORS_ORIGINS", "http://localhost:3000,http://localhost:5173"),
	}
}

func envOr(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func envBool(k string, def bool) bool {
	switch os.Getenv(k) {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return def
	}
}

func envDuration(k string, def time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}

func csvOr(k, def string) []string {
	v := envOr(k, def)
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if s := strings.TrimSpace(p); s != "" {
			out = append(out, s)
		}
	}
	return out
}
