package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"paper-swipe/config"
	"paper-swipe/providers"
	"paper-swipe/routes"
	"paper-swipe/services"
	"paper-swipe/storage"
)

func main() {
	logging, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("can't initialize zap logger: %v", err)
	}
	defer logging.Sync()

	cfg, err := config.Load()
	if err != nil {
		logging.Fatal("Config load error", zap.Error(err))
	}

	// Setup Database
	db, err := storage.OpenDatabase(cfg)
	if err != nil {
		logging.Fatal("Failed to connect to database", zap.Error(err), zap.String("driver", cfg.DBDriver))
	}
	logging.Info("Successfully connected to database.", zap.String("driver", cfg.DBDriver))

	logging.Info("Running database auto-migration...")
	if err := storage.AutoMigrate(db); err != nil {
		logging.Fatal("Auto-migration failed", zap.Error(err))
	}
	repo := storage.NewRepository(db)

	// Setup Provider
	client, err := providers.NewArxiv(context.Background(), cfg, logging)
	if err != nil {
		logging.Fatal("ArXiv client creation failed", zap.Error(err))
	}

	vocab, err := services.LoadVocabulary(cfg.VocabularyFile)
	if err != nil {
		logging.Fatal("Vocabulary load error", zap.Error(err), zap.String("file", cfg.VocabularyFile))
	}
	logging.Info("Keyword vocabulary loaded", zap.Int("terms", len(vocab.Terms)))

	// Setup Services
	importService := services.NewImportService(client, repo, vocab, logging)
	recommendationService := services.NewRecommendationService(repo, cfg.RecommendationHistory, logging)
	swipeService := services.NewSwipeService(repo, importService, logging)
	userService := services.NewUserService(repo, logging)
	collaborationService := services.NewCollaborationService(repo, logging)
	syncService := services.NewSyncService(importService, cfg.SyncCategories, cfg.SyncMaxResults, logging)

	// Setup Router
	router := gin.Default()
	router.Use(gin.Recovery())
	routes.Setup(router, routes.Deps{
		Importer:       importService,
		Recommender:    recommendationService,
		Swiper:         swipeService,
		Users:          userService,
		Collaborations: collaborationService,
		Store:          repo,
		APISecretKey:   cfg.APISecretKey,
		Logger:         logging,
	})

	// Setup Cron
	if cfg.SyncSchedule != "" {
		cronScheduler := cron.New()
		_, err := cronScheduler.AddFunc(cfg.SyncSchedule, func() {
			logging.Info("Running scheduled sync job...", zap.Strings("categories", cfg.SyncCategories))
			res, err := syncService.Run(context.Background())
			if err != nil {
				logging.Error("Sync job finished with errors", zap.Error(err))
			}
			logging.Info("Sync job completed", zap.Int("imported", res.Imported), zap.Int("skipped", res.Skipped))
		})
		if err != nil {
			logging.Fatal("Invalid SYNC_SCHEDULE", zap.Error(err), zap.String("schedule", cfg.SyncSchedule))
		}
		cronScheduler.Start()
		defer cronScheduler.Stop()
	}

	logging.Info("Starting server", zap.String("port", cfg.HTTPPort))
	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadTimeout:       30 * time.Second,
		ReadHeaderTimeout: 15 * time.Second,
		WriteTimeout:      cfg.ArxivTimeout + 30*time.Second,
		IdleTimeout:       120 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logging.Fatal("Failed to run server", zap.Error(err))
	}
}
