package config

import (
	"log"
	"os"
	"time"
)

type Config struct {
	Port      string
	DBDSN     string
	LogFile   string
	JWTSecret string
	TokenTTL  time.Duration
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "stockroom.db" // sqlite file in project root
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./stockroom.log"
	}
	secret := os.Getenv("JWT_SECRET")
	if secret == "" {
		secret = "dev-secret-change-me"
		log.Println("[config] JWT_SECRET not set; using insecure development default")
	}
	ttl := 30 * 24 * time.Hour
	if s := os.Getenv("TOKEN_TTL"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d > 0 {
			ttl = d
		} else {
			log.Printf("[config] ignoring invalid TOKEN_TTL=%q", s)
		}
	}

	cfg := Config{Port: port, DBDSN: dsn, LogFile: logFile, JWTSecret: secret, TokenTTL: ttl}
	log.Printf("[config] PORT=%s DB_DSN=%s LOG_FILE=%s TOKEN_TTL=%s", cfg.Port, cfg.DBDSN, cfg.LogFile, cfg.TokenTTL)
	return cfg
}
