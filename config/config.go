package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Geographic centroid of Brazil, used when a filter leaves no schools
const (
	defaultCenterLat = -14.235
	defaultCenterLon = -51.9253
)

// Config holds the runtime settings
type Config struct {
	DataFile      string
	HTTPAddr      string
	Palette       string
	DefaultLat    float64
	DefaultLon    float64
	RedisAddr     string // Empty disables the marker cache
	RedisPassword string
	RedisDB       int
	CacheTTL      time.Duration
	GinMode       string
}

// Load reads .env when present and then the process environment
func Load() (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{
		DataFile:      getenv("DATA_FILE", "Escolas_Estaduais_Total.xlsx"),
		HTTPAddr:      getenv("HTTP_ADDR", ":8080"),
		Palette:       getenv("PALETTE", "split"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		GinMode:       os.Getenv("GIN_MODE"),
	}

	var err error
	if cfg.DefaultLat, err = getFloat("DEFAULT_CENTER_LAT", defaultCenterLat); err != nil {
		return nil, err
	}
	if cfg.DefaultLon, err = getFloat("DEFAULT_CENTER_LON", defaultCenterLon); err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = getInt("REDIS_DB", 8); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = getDuration("CACHE_TTL", 10*time.Minute); err != nil {
		return nil, err
	}
	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getFloat(key string, def float64) (float64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return f, nil
}

func getInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return n, nil
}

func getDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
