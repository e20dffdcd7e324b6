package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort               = "8080"
	defaultDBPath             = "ads.db"
	defaultSyncInterval       = "60"
	defaultEfficiencyDivisor  = "100"
	defaultApifyActorID       = "CfCwPWpfjpxQhOboS" // Meta Ads Scraper actor
)

// Config carries everything read from the environment at process start.
type Config struct {
	Port                   string
	DatabaseDSN            string
	ApifyToken             string
	ApifyActorID           string
	SyncInterval           time.Duration
	AutoSyncEnabled        bool
	ScoreEfficiencyDivisor float64
}

// Load reads the process configuration from the environment. Missing values
// fall back to local-development defaults; malformed numeric values fall
// back with a log line rather than failing startup.
func Load() *Config {
	cfg := &Config{
		Port:            getEnv("PORT", defaultPort),
		ApifyToken:      os.Getenv("APIFY_API_TOKEN"),
		ApifyActorID:    getEnv("APIFY_ACTOR_ID", defaultApifyActorID),
		AutoSyncEnabled: os.Getenv("ENABLE_AUTO_SYNC") == "true",
	}

	// DATABASE_URL (postgres) wins over DB_PATH (sqlite file).
	cfg.DatabaseDSN = os.Getenv("DATABASE_URL")
	if cfg.DatabaseDSN == "" {
		cfg.DatabaseDSN = getEnv("DB_PATH", defaultDBPath)
	}

	minutes, err := strconv.Atoi(getEnv("SYNC_INTERVAL", defaultSyncInterval))
	if err != nil || minutes <= 0 {
		log.Printf("config: invalid SYNC_INTERVAL %q, using %s minutes", os.Getenv("SYNC_INTERVAL"), defaultSyncInterval)
		minutes, _ = strconv.Atoi(defaultSyncInterval)
	}
	cfg.SyncInterval = time.Duration(minutes) * time.Minute

	divisor, err := strconv.ParseFloat(getEnv("SCORE_EFFICIENCY_DIVISOR", defaultEfficiencyDivisor), 64)
	if err != nil || divisor <= 0 {
		log.Printf("config: invalid SCORE_EFFICIENCY_DIVISOR %q, using %s", os.Getenv("SCORE_EFFICIENCY_DIVISOR"), defaultEfficiencyDivisor)
		divisor, _ = strconv.ParseFloat(defaultEfficiencyDivisor, 64)
	}
	cfg.ScoreEfficiencyDivisor = divisor

	return cfg
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
