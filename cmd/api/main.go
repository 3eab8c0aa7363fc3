package main

import (
	"log"
	"log/slog"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"github.com/jmlester/the-ai-brief/db"
	"github.com/jmlester/the-ai-brief/internal/brief"
	"github.com/jmlester/the-ai-brief/internal/config"
	"github.com/jmlester/the-ai-brief/internal/handler"
	"github.com/jmlester/the-ai-brief/internal/repository"
	"github.com/jmlester/the-ai-brief/pkg/feed"
)

func main() {

	godotenv.Load()

	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stdout, nil)))

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("error loading config: %v", err)
	}

	err = db.Connect(cfg.Database.URL)
	if err != nil {
		log.Fatalf("error connecting to DB: %v", err)
	}
	defer db.Close()

	err = db.ConnectRedis(cfg.Redis.URL)
	if err != nil {
		log.Fatalf("error connecting to Redis: %v", err)
	}
	defer db.CloseRedis()

	briefRepo := repository.NewBriefRepository(db.DB)
	healthRepo := repository.NewHealthRepository(db.DB)
	cache := db.NewCache(db.Redis)

	aggregator := feed.NewService(nil)
	pipeline := brief.NewPipeline(aggregator, briefRepo, slog.Default())

	briefHandler := handler.NewBriefHandler(pipeline, briefRepo, healthRepo, cache, cfg)
	newsHandler := handler.NewNewsHandler(aggregator, cfg)

	r := gin.Default()

	allowedOrigins := []string{"http://localhost:3000"}

	if cfg.Server.FrontendURL != "" {
		allowedOrigins = append(allowedOrigins, cfg.Server.FrontendURL)
	}

	slog.Info("AllowOrigins URL:", "urls", allowedOrigins)

	r.Use(cors.New(cors.Config{
		AllowOrigins: allowedOrigins,
		AllowMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Origin", "Content-Type"},
	}))

	r.POST("/briefs", briefHandler.GenerateBrief)
	r.GET("/briefs/latest", briefHandler.GetLatestBrief)
	r.GET("/briefs/archive", briefHandler.GetArchive)
	r.DELETE("/briefs/archive/:id", briefHandler.DeleteArchived)
	r.POST("/news", newsHandler.FetchNews)
	r.GET("/sources", newsHandler.GetSources)
	r.POST("/sources/check", newsHandler.CheckSources)
	r.GET("/sources/:id/health", briefHandler.GetSourceHealth)
	r.GET("/health", briefHandler.GetHealth)

	err = r.Run(":" + cfg.Server.Port)
	if err != nil {
		log.Fatalf("error starting server: %v", err)
	}
}
