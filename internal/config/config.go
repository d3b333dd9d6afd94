package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppPort string

	PostgresDSN string
	RedisAddr   string

	CronSpec    string
	OutletsPath string

	SimilarityThreshold float64
	MinSources          int
	CacheMaxAge         time.Duration

	GNewsAPIKey    string
	NewsDataAPIKey string
	NewsRatePerMin int

	ExtractorURL string

	BasicAuthUser string
	BasicAuthPass string
	WebRoot       string
}

func Load() *Config {
	cfg := &Config{
		AppPort:     getEnv("APP_PORT", "9000"),
		PostgresDSN: getEnv("POSTGRES_DSN", "host=localhost user=ainews password=ainews dbname=ainews port=5432 sslmode=disable TimeZone=UTC"),
		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),

		CronSpec:    getEnv("CRON_SPEC", "0 * * * *"),
		OutletsPath: getEnv("OUTLETS_PATH", "configs/outlets.yaml"),

		SimilarityThreshold: getEnvFloat("SIMILARITY_THRESHOLD", 0.35),
		MinSources:          getEnvInt("MIN_SOURCES", 2),
		CacheMaxAge:         getEnvDuration("CACHE_MAX_AGE", time.Hour),

		GNewsAPIKey:    getEnv("GNEWS_API_KEY", ""),
		NewsDataAPIKey: getEnv("NEWSDATA_API_KEY", ""),
		NewsRatePerMin: getEnvInt("NEWS_RATE_PER_MIN", 30),

		ExtractorURL: getEnv("EXTRACTOR_URL", ""),

		BasicAuthUser: getEnv("APP_BASIC_USER", ""),
		BasicAuthPass: getEnv("APP_BASIC_PASS", ""),
		WebRoot:       getEnv("WEB_ROOT", ""),
	}

	log.Printf("config loaded: port=%s cron=%s threshold=%.2f minSources=%d cacheMaxAge=%s",
		cfg.AppPort, cfg.CronSpec, cfg.SimilarityThreshold, cfg.MinSources, cfg.CacheMaxAge)
	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %d", key, v, def)
		return def
	}
	return n
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %g", key, v, def)
		return def
	}
	return f
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("config: invalid %s=%q, using %s", key, v, def)
		return def
	}
	return d
}
