package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port         string
	DBDSN        string
	LogFile      string
	AppEnv       string
	SheetID      string
	SheetsAPIKey string
	SheetRange   string // data rows only, header excluded
	AdminKeyHash string // bcrypt hash of the admin bearer token
	ListTTL      time.Duration
	ProductTTL   time.Duration
	FetchTimeout time.Duration
	SyncInterval time.Duration // 0 = manual sync only
}

func Load() Config {
	if err := godotenv.Load(); err == nil {
		log.Println("[config] loaded .env")
	}

	appEnv := getenv("APP_ENV", "development")

	// Bias toward freshness in production: sheet edits should show up fast.
	listTTL := 120
	if appEnv == "production" {
		listTTL = 30
	}

	cfg := Config{
		Port:         getenv("PORT", "8080"),
		DBDSN:        getenv("DB_DSN", "sheetshop.db"),
		LogFile:      getenv("LOG_FILE", "./sheetshop.log"),
		AppEnv:       appEnv,
		SheetID:      os.Getenv("SHEET_ID"),
		SheetsAPIKey: os.Getenv("SHEETS_API_KEY"),
		SheetRange:   getenv("SHEET_RANGE", "A2:V1000"),
		AdminKeyHash: os.Getenv("ADMIN_KEY_HASH"),
		ListTTL:      time.Duration(getint("CACHE_TTL_SECONDS", listTTL)) * time.Second,
		ProductTTL:   time.Duration(getint("PRODUCT_CACHE_TTL_SECONDS", 300)) * time.Second,
		FetchTimeout: time.Duration(getint("FETCH_TIMEOUT_SECONDS", 10)) * time.Second,
		SyncInterval: time.Duration(getint("SYNC_INTERVAL_SECONDS", 0)) * time.Second,
	}
	log.Printf("[config] PORT=%s APP_ENV=%s DB_DSN=%s SHEET_RANGE=%s CACHE_TTL=%s",
		cfg.Port, cfg.AppEnv, cfg.DBDSN, cfg.SheetRange, cfg.ListTTL)
	return cfg
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
	if err != nil || n < 0 {
		log.Printf("[config] ignoring invalid %s=%q", key, v)
		return def
	}
	return n
}
