package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"adscope/internal/apify"
	"adscope/internal/config"
	"adscope/internal/database"
	"adscope/internal/domain/ads"
	"adscope/internal/domain/ingest"
	"adscope/internal/middleware"
)

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	cfg := config.Load()

	db, err := database.Connect(cfg.DatabaseDSN)
	if err != nil {
		log.Fatal(err)
	}
	if err := db.AutoMigrate(&ads.Ad{}); err != nil {
		log.Fatal("migrate ads table: ", err)
	}

	adRepo := ads.NewRepository(db)
	adsHandler := ads.NewHandler(adRepo)

	source := apify.NewClient(cfg.ApifyToken, cfg.ApifyActorID)
	scorer := &ingest.Scorer{EfficiencyDivisor: cfg.ScoreEfficiencyDivisor}
	ingestService := ingest.NewService(source, adRepo, scorer)
	ingestHandler := ingest.NewHandler(ingestService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	api := r.Group("/api")
	{
		adsHandler.RegisterRoutes(api)
		ingestHandler.RegisterRoutes(api)

		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"status":    "ok",
				"timestamp": time.Now().UTC().Format(time.RFC3339),
			})
		})
	}

	if cfg.AutoSyncEnabled {
		ingestService.StartScheduler(context.Background(), cfg.SyncInterval)
	} else {
		log.Println("Automatic sync disabled. Set ENABLE_AUTO_SYNC=true to enable.")
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
