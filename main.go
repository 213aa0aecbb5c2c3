package main

import (
	"context"
	"os"
	"time"

	"escolas-map/colorize"
	"escolas-map/config"
	"escolas-map/db"
	"escolas-map/handlers"
	"escolas-map/logger"

	"github.com/gin-gonic/gin"
)

func main() {
	l := logger.Setup()

	cfg, err := config.Load()
	if err != nil {
		l.Error("load config", "err", err)
		os.Exit(1)
	}
	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	palette, err := colorize.ParsePalette(cfg.Palette)
	if err != nil {
		l.Error("select palette", "err", err)
		os.Exit(1)
	}

	// The dashboard has nothing to show without data
	snap, err := db.LoadSchoolsFromFile(cfg.DataFile)
	if err != nil {
		l.Error("load schools", "file", cfg.DataFile, "err", err)
		os.Exit(1)
	}
	store := db.NewStore(snap)

	apiHandler := handlers.NewAPIHandler(store, markerCache(cfg), palette, cfg.DefaultLat, cfg.DefaultLon)
	router := handlers.NewRouter(apiHandler, l)

	l.Info("starting server", "addr", cfg.HTTPAddr, "palette", palette.Name())
	if err := router.Run(cfg.HTTPAddr); err != nil {
		l.Error("run server", "err", err)
		os.Exit(1)
	}
}

// markerCache connects to Redis when configured; without it markers are rendered on every request
func markerCache(cfg *config.Config) db.MarkerCache {
	if cfg.RedisAddr == "" {
		return db.NoopCache{}
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := db.InitializeRedisClient(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		logger.L().Warn("marker cache disabled", "err", err)
		return db.NoopCache{}
	}
	return db.NewRedisCache(client, cfg.CacheTTL)
}
